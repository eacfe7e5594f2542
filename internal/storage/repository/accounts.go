package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yousrr/FitZone/internal/models"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

// CreateAccount сохраняет новую учётную запись identity-сервиса.
//
// Занятый email отличается от прочих ошибок: нарушение уникального
// ограничения транслируется в ErrEmailTaken.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) error {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO accounts (uid, email, password_hash, display_name, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query,
		account.UID, account.Email, account.PasswordHash, account.DisplayName, account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetAccountByEmail возвращает учётную запись по email.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, display_name, created_at
			  FROM accounts
			  WHERE email = $1`
	a := &models.Account{}
	row := s.DB.QueryRowContext(ctx, query, email)

	if err := row.Scan(&a.UID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// GetAccount возвращает учётную запись по её UID.
func (s *Storage) GetAccount(ctx context.Context, uid string) (*models.Account, error) {
	const op = "storage.GetAccount"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, password_hash, display_name, created_at
			  FROM accounts
			  WHERE uid = $1`
	a := &models.Account{}
	row := s.DB.QueryRowContext(ctx, query, uid)

	if err := row.Scan(&a.UID, &a.Email, &a.PasswordHash, &a.DisplayName, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
