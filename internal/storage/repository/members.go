package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yousrr/FitZone/internal/models"
)

// GetMember возвращает профиль участника по его UID.
func (s *Storage) GetMember(ctx context.Context, uid string) (*models.Member, error) {
	const op = "storage.GetMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, first_name, last_name, date_of_birth, training_frequency, created_at
			  FROM members
			  WHERE uid = $1`
	m := &models.Member{}
	row := s.DB.QueryRowContext(ctx, query, uid)

	if err := row.Scan(&m.UID, &m.Email, &m.FirstName, &m.LastName,
		&m.DateOfBirth, &m.TrainingFrequency, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// GetSubscription возвращает подписку участника по его UID.
func (s *Storage) GetSubscription(ctx context.Context, uid string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, plan_id, status, start_date, end_date
			  FROM subscriptions
			  WHERE user_uid = $1`
	sub := &models.Subscription{}
	row := s.DB.QueryRowContext(ctx, query, uid)

	var planID sql.NullString
	if err := row.Scan(&sub.UserUID, &planID, &sub.Status, &sub.StartDate, &sub.EndDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if planID.Valid {
		sub.PlanID = &planID.String
	}
	sub.ID = sub.UserUID
	return sub, nil
}
