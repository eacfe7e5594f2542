package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yousrr/FitZone/internal/models"
)

// ListSessions возвращает занятия, удовлетворяющие фильтру. Пустой фильтр
// возвращает всё расписание. Пустой результат означает, что вызывающая
// сторона подставляет статическое расписание.
func (s *Storage) ListSessions(ctx context.Context, filter models.ScheduleFilter) ([]models.Session, error) {
	const op = "storage.ListSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, day_of_week, start_time, end_time, category, room, coach_name, coach_specialties
			  FROM schedule
			  WHERE ($1 = '' OR day_of_week = $1)
			    AND ($2 = '' OR category = $2)
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, filter.DayOfWeek, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Session
	for rows.Next() {
		var item models.Session
		var specialties []byte
		if err := rows.Scan(&item.ID, &item.Title, &item.DayOfWeek, &item.StartTime,
			&item.EndTime, &item.Category, &item.Room, &item.Coach.Name, &specialties); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(specialties, &item.Coach.Specialties); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
