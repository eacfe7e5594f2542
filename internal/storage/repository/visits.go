package repository

import (
	"context"
	"fmt"

	"github.com/yousrr/FitZone/internal/models"
)

// CreateVisitRequest сохраняет заявку на пробное посещение.
func (s *Storage) CreateVisitRequest(ctx context.Context, visit models.VisitRequest) error {
	const op = "storage.CreateVisitRequest"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO visits (id, full_name, phone, preferred_date, preferred_time, message, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		visit.ID, visit.FullName, visit.Phone, visit.PreferredDate,
		visit.PreferredTime, visit.Message, visit.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
