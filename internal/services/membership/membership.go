// Package services содержит бизнес-логику членства: проверку контрактных
// кодов, регистрацию с атомарным погашением кода, вход с проверкой статуса
// подписки и сборку профиля участника.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yousrr/FitZone/internal/identity"
	"github.com/yousrr/FitZone/internal/lib/sl"
	"github.com/yousrr/FitZone/internal/models"
	"github.com/yousrr/FitZone/internal/storage/repository"
)

// Ошибки уровня бизнес-логики. Обработчики транслируют их в HTTP-статусы.
var (
	// ErrCodeNotFound код отсутствует в хранилище.
	ErrCodeNotFound = errors.New("contract code not found")
	// ErrCodeNotActive статус кода отличен от ACTIVE (в том числе уже погашен).
	ErrCodeNotActive = errors.New("contract code is not active")
	// ErrCodeExpired срок действия кода истёк.
	ErrCodeExpired = errors.New("contract code expired")
	// ErrPasswordMismatch подтверждение пароля не совпало; проверяется
	// до любых записей.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailInUse email уже зарегистрирован; контрактный код не тронут.
	ErrEmailInUse = errors.New("email already in use")
	// ErrInvalidCredentials неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSubscriptionInactive учётные данные верны, но подписка не активна.
	ErrSubscriptionInactive = errors.New("subscription is not active")
	// ErrTokenIssue регистрация зафиксирована, но обмен пароля на токен не
	// удался. Откат не выполняется: участник, подписка и погашенный код
	// уже записаны, вход возможен отдельным запросом.
	ErrTokenIssue = errors.New("signup succeeded, but login failed")
)

// MembershipRepository определяет методы хранилища, нужные членству.
type MembershipRepository interface {
	// GetContractCode возвращает контрактный код по нормализованному идентификатору.
	GetContractCode(ctx context.Context, code string) (*models.ContractCode, error)
	// RedeemContractCode атомарно гасит код и создаёт участника с подпиской.
	RedeemContractCode(ctx context.Context, code string, member models.Member, sub models.Subscription) error
	// GetMember возвращает профиль участника по UID.
	GetMember(ctx context.Context, uid string) (*models.Member, error)
	// GetSubscription возвращает подписку участника по UID.
	GetSubscription(ctx context.Context, uid string) (*models.Subscription, error)
}

// IdentityClient описывает обмен с identity-сервисом.
type IdentityClient interface {
	// SignUp создает учётную запись и возвращает её UID.
	SignUp(ctx context.Context, email, password, displayName string) (string, error)
	// SignIn обменивает email и пароль на bearer-токен.
	SignIn(ctx context.Context, email, password string) (string, error)
	// Lookup проверяет токен и возвращает данные учётной записи.
	Lookup(ctx context.Context, token string) (*identity.TokenInfo, error)
}

// PlanGetter возвращает тарифный план по ID для сборки профиля.
type PlanGetter interface {
	Plan(ctx context.Context, id string) (*models.Plan, error)
}

// Profile денормализованное представление участника для личного кабинета.
// Это проекция для чтения, авторитетным остаётся хранилище.
type Profile struct {
	User         any                  `json:"user"`
	Subscription *models.Subscription `json:"subscription"`
	Plan         *models.Plan         `json:"plan"`
}

// MembershipService реализует регистрацию, вход и чтение профиля.
type MembershipService struct {
	repo     MembershipRepository
	identity IdentityClient
	plans    PlanGetter
	log      *slog.Logger
}

// NewMembershipService создает новый экземпляр MembershipService.
func NewMembershipService(repo MembershipRepository, identityClient IdentityClient, plans PlanGetter, log *slog.Logger) *MembershipService {
	return &MembershipService{
		repo:     repo,
		identity: identityClient,
		plans:    plans,
		log:      log,
	}
}

// ValidateCode нормализует код и проверяет его пригодность к погашению.
//
// Единственная точка правил по кодам: и эндпоинт валидации, и регистрация
// проходят через неё, поэтому их вердикты всегда совпадают. Статус
// проверяется раньше срока действия.
func (s *MembershipService) ValidateCode(ctx context.Context, raw string) (*models.ContractCode, error) {
	code, err := s.repo.GetContractCode(ctx, models.NormalizeCode(raw))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	if code.Status != models.CodeStatusActive {
		return nil, ErrCodeNotActive
	}
	if code.ExpiresAt != nil && code.ExpiresAt.Before(time.Now()) {
		return nil, ErrCodeExpired
	}
	return code, nil
}

// Signup проводит регистрацию: проверка кода, создание учётной записи,
// атомарное погашение кода с созданием участника и подписки, затем обмен
// пароля на токен.
//
// Неудача обмена не откатывает уже зафиксированную запись: возвращается
// ErrTokenIssue, участник входит отдельным запросом.
func (s *MembershipService) Signup(ctx context.Context, req models.DummySignup) (string, error) {
	if req.ConfirmPassword != "" && req.ConfirmPassword != req.Password {
		return "", ErrPasswordMismatch
	}

	code, err := s.ValidateCode(ctx, req.ContractCode)
	if err != nil {
		return "", err
	}

	displayName := fmt.Sprintf("%s %s", req.FirstName, req.LastName)
	uid, err := s.identity.SignUp(ctx, req.Email, req.Password, displayName)
	if err != nil {
		if errors.Is(err, identity.ErrEmailInUse) {
			return "", ErrEmailInUse
		}
		return "", fmt.Errorf("create account: %w", err)
	}

	now := time.Now().UTC()
	member := models.Member{
		UID:               uid,
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		DateOfBirth:       req.DateOfBirth,
		TrainingFrequency: req.TrainingFrequency,
		CreatedAt:         now,
	}
	sub := models.Subscription{
		ID:        uid,
		UserUID:   uid,
		PlanID:    code.PlanID,
		Status:    models.SubscriptionStatusActive,
		StartDate: now,
		// Ровно один календарный год; перенос даты — по правилам time.AddDate.
		EndDate: now.AddDate(1, 0, 0),
	}

	if err := s.repo.RedeemContractCode(ctx, code.Code, member, sub); err != nil {
		if errors.Is(err, repository.ErrCodeConflict) {
			// Код погашен конкурентной регистрацией между проверкой и записью.
			return "", ErrCodeNotActive
		}
		return "", fmt.Errorf("redeem contract code: %w", err)
	}

	token, err := s.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.log.Error("signup committed but token exchange failed", sl.Err(err))
		return "", ErrTokenIssue
	}
	return token, nil
}

// Login обменивает учётные данные на токен и проверяет статус подписки.
//
// Успешная аутентификация не означает допуск: существующая неактивная
// подписка запрещает вход в личный кабинет.
func (s *MembershipService) Login(ctx context.Context, email, password string) (string, error) {
	token, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		// Сообщение identity-сервиса остаётся в цепочке для показа пользователю.
		return "", fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	info, err := s.identity.Lookup(ctx, token)
	if err != nil {
		return "", fmt.Errorf("lookup token: %w", err)
	}

	sub, err := s.repo.GetSubscription(ctx, info.UID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("load subscription: %w", err)
	}
	if sub != nil && sub.Status != models.SubscriptionStatusActive {
		return "", ErrSubscriptionInactive
	}
	return token, nil
}

// Profile собирает денормализованное представление для /api/auth/me.
//
// Отсутствующий профиль деградирует до пары id/email из токена;
// отсутствующие подписка и план отдаются как null.
func (s *MembershipService) Profile(ctx context.Context, uid, email string) (*Profile, error) {
	profile := &Profile{}

	member, err := s.repo.GetMember(ctx, uid)
	switch {
	case err == nil:
		profile.User = member
	case errors.Is(err, repository.ErrNotFound):
		profile.User = map[string]string{"id": uid, "email": email}
	default:
		return nil, fmt.Errorf("load member: %w", err)
	}

	sub, err := s.repo.GetSubscription(ctx, uid)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("load subscription: %w", err)
		}
		return profile, nil
	}
	profile.Subscription = sub

	if sub.PlanID != nil {
		plan, err := s.plans.Plan(ctx, *sub.PlanID)
		if err != nil {
			s.log.Warn("failed to load plan for profile", sl.Err(err))
			return profile, nil
		}
		profile.Plan = plan
	}
	return profile, nil
}
