package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yousrr/FitZone/internal/models"
)

// GetContractCode возвращает контрактный код по нормализованному идентификатору.
func (s *Storage) GetContractCode(ctx context.Context, code string) (*models.ContractCode, error) {
	const op = "storage.GetContractCode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT code, status, expires_at, plan_id, used_by, used_at
			  FROM contract_codes
			  WHERE code = $1`
	row := s.DB.QueryRowContext(ctx, query, code)

	var result models.ContractCode
	var expiresAt, usedAt sql.NullTime
	var planID, usedBy sql.NullString
	if err := row.Scan(&result.Code, &result.Status, &expiresAt, &planID, &usedBy, &usedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if expiresAt.Valid {
		result.ExpiresAt = &expiresAt.Time
	}
	if planID.Valid {
		result.PlanID = &planID.String
	}
	if usedBy.Valid {
		result.UsedBy = &usedBy.String
	}
	if usedAt.Valid {
		result.UsedAt = &usedAt.Time
	}
	return &result, nil
}

// RedeemContractCode выполняет единственную критичную к конкурентности запись
// системы: в одной транзакции переводит код из ACTIVE в USED, создаёт профиль
// участника и подписку. Всё или ничего: частичное состояние (погашенный код
// без подписки) невозможно.
//
// Перевод статуса — условный UPDATE по status = 'ACTIVE'; если строк не
// затронуто, код уже погашен конкурентной регистрацией и транзакция
// откатывается с ErrCodeConflict. Из двух гонящихся регистраций по одному
// коду зафиксируется ровно одна.
func (s *Storage) RedeemContractCode(ctx context.Context, code string, member models.Member, sub models.Subscription) error {
	const op = "storage.RedeemContractCode"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		`UPDATE contract_codes
		 SET status = $1, used_by = $2, used_at = $3
		 WHERE code = $4 AND status = $5`,
		models.CodeStatusUsed, member.UID, time.Now().UTC(), code, models.CodeStatusActive)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrCodeConflict)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO members (uid, email, first_name, last_name, date_of_birth, training_frequency, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		member.UID, member.Email, member.FirstName, member.LastName,
		member.DateOfBirth, member.TrainingFrequency, member.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO subscriptions (user_uid, plan_id, status, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5)`,
		sub.UserUID, sub.PlanID, sub.Status, sub.StartDate, sub.EndDate)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
