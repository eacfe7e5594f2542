// Package list реализует HTTP-обработчик расписания занятий участника.
//
// Handler принимает необязательные query-параметры dayOfWeek и category
// и возвращает отфильтрованное расписание. Пустая выборка из хранилища
// заменяется встроенным расписанием с тем же фильтром.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yousrr/FitZone/internal/http/response"
	"github.com/yousrr/FitZone/internal/lib/sl"
	"github.com/yousrr/FitZone/internal/models"
)

// Handler управляет HTTP-запросами расписания занятий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания.
type Service interface {
	Schedule(ctx context.Context, filter models.ScheduleFilter) ([]models.Session, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Расписание занятий
// @Description Возвращает расписание занятий с необязательной фильтрацией по дню недели и категории.
// @Tags Schedule
// @Produce  json
// @Security BearerAuth
// @Param dayOfWeek query string false "День недели"
// @Param category query string false "Категория тренировки"
// @Success 200 {array} models.Session "Расписание занятий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при загрузке расписания"
// @Router /api/member/schedule [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter := models.ScheduleFilter{
		DayOfWeek: r.URL.Query().Get("dayOfWeek"),
		Category:  r.URL.Query().Get("category"),
	}

	sessions, err := h.service.Schedule(r.Context(), filter)
	if err != nil {
		log.Error("failed to list schedule", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to load schedule"))
		return
	}

	log.Info("schedule listed", slog.Int("count", len(sessions)))
	render.JSON(w, r, sessions)
}
