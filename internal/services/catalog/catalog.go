// Package services содержит бизнес-логику справочников клуба: тарифные
// планы, категории занятий и расписание, с кешированием и статическими
// дефолтами при пустом хранилище.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yousrr/FitZone/internal/lib/sl"
	"github.com/yousrr/FitZone/internal/models"
	"github.com/yousrr/FitZone/internal/storage/repository"
)

const (
	plansCacheKey      = "catalog:plans"
	categosiesCacheKey = "catalog:categories"
	cacheTTL           = 5 * time.Minute
)

// CatalogRepository определяет методы для чтения справочных данных.
type CatalogRepository interface {
	// ListPlans возвращает все тарифные планы.
	ListPlans(ctx context.Context) ([]models.Plan, error)
	// GetPlan возвращает тарифный план по ID.
	GetPlan(ctx context.Context, id string) (*models.Plan, error)
	// ListCategories возвращает все категории занятий.
	ListCategories(ctx context.Context) ([]models.Category, error)
	// ListSessions возвращает занятия, удовлетворяющие фильтру.
	ListSessions(ctx context.Context, filter models.ScheduleFilter) ([]models.Session, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService реализует доступ к справочникам, включая кеширование.
type CatalogService struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo CatalogRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Plans возвращает тарифные планы: из кеша, из хранилища, либо дефолтные,
// если хранилище пусто. Ошибки кеша не фатальны.
func (s *CatalogService) Plans(ctx context.Context) ([]models.Plan, error) {
	var cached []models.Plan
	if found, err := s.cache.Get(plansCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		plans = DefaultPlans
	}

	if err := s.cache.Set(plansCacheKey, plans, cacheTTL); err != nil {
		s.log.Warn("failed to cache plans", sl.Err(err))
	}
	return plans, nil
}

// Plan возвращает тарифный план по ID: из хранилища либо из дефолтного
// набора. Отсутствующий план — nil без ошибки.
func (s *CatalogService) Plan(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := s.repo.GetPlan(ctx, id)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	for _, p := range DefaultPlans {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

// Categories возвращает категории занятий с тем же каскадом, что и Plans.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if found, err := s.cache.Get(categosiesCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		categories = DefaultCategories
	}

	if err := s.cache.Set(categosiesCacheKey, categories, cacheTTL); err != nil {
		s.log.Warn("failed to cache categories", sl.Err(err))
	}
	return categories, nil
}

// Schedule возвращает занятия по фильтру. Если выборка из хранилища пуста,
// тем же фильтром отбираются занятия из статического расписания.
func (s *CatalogService) Schedule(ctx context.Context, filter models.ScheduleFilter) ([]models.Session, error) {
	sessions, err := s.repo.ListSessions(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 0 {
		return sessions, nil
	}

	var result []models.Session
	for _, session := range DefaultSchedule {
		if filter.Matches(session) {
			result = append(result, session)
		}
	}
	return result, nil
}
