// Package services содержит бизнес-логику identity-сервиса: создание
// учётных записей, вход по паролю и проверку выданных токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yousrr/FitZone/internal/lib/jwt"
	"github.com/yousrr/FitZone/internal/lib/password"
	"github.com/yousrr/FitZone/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Несуществующий email и неверный пароль не различаются.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountRepository описывает контракт для работы с учётными записями.
type AccountRepository interface {
	// CreateAccount сохраняет новую учётную запись.
	CreateAccount(ctx context.Context, account models.Account) error
	// GetAccountByEmail возвращает учётную запись по email.
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	// GetAccount возвращает учётную запись по UID.
	GetAccount(ctx context.Context, uid string) (*models.Account, error)
}

// AuthService отвечает за учётные записи и выдачу bearer-токенов.
type AuthService struct {
	accounts AccountRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(accounts AccountRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		accounts: accounts,
		jwtMaker: jwtMaker,
	}
}

// SignUp создает учётную запись с хэшированием пароля и возвращает её UID.
func (s *AuthService) SignUp(ctx context.Context, email, rawPassword, displayName string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	account := models.Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
		DisplayName:  displayName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		return "", err
	}
	return account.UID, nil
}

// SignIn проверяет пароль и генерирует bearer-токен.
func (s *AuthService) SignIn(ctx context.Context, email, rawPassword string) (string, error) {
	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(account.UID, account.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Lookup проверяет токен и возвращает учётную запись его владельца.
func (s *AuthService) Lookup(ctx context.Context, token string) (*models.Account, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return s.accounts.GetAccount(ctx, claims.UID)
}
