// Package services содержит бизнес-логику приёма заявок на пробное посещение.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yousrr/FitZone/internal/models"
)

// VisitRepository описывает контракт для сохранения заявок.
type VisitRepository interface {
	CreateVisitRequest(ctx context.Context, visit models.VisitRequest) error
}

// VisitService принимает заявки на пробное посещение.
type VisitService struct {
	repo VisitRepository
}

// NewVisitService создает новый экземпляр VisitService.
func NewVisitService(repo VisitRepository) *VisitService {
	return &VisitService{repo: repo}
}

// Create сохраняет заявку, присваивая ей идентификатор и момент создания.
// Отсутствующее сообщение сохраняется пустой строкой.
func (s *VisitService) Create(ctx context.Context, req models.DummyVisit) error {
	visit := models.VisitRequest{
		ID:            uuid.NewString(),
		FullName:      req.FullName,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Message:       req.Message,
		CreatedAt:     time.Now().UTC(),
	}
	return s.repo.CreateVisitRequest(ctx, visit)
}
