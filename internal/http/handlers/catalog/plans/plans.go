// Package plans реализует HTTP-обработчик публичного каталога планов.
package plans

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

// Handler управляет HTTP-запросами каталога планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога планов.
type Service interface {
	Plans(ctx context.Context) ([]models.Plan, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список планов абонементов
// @Description Возвращает публичный каталог планов. При пустом хранилище отдается встроенный набор.
// @Tags Catalog
// @Produce  json
// @Success 200 {array} models.Plan "Каталог планов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при загрузке каталога"
// @Router /api/public/plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.plans"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.Plans(r.Context())
	if err != nil {
		log.Error("failed to list plans", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to load plans"))
		return
	}

	log.Info("plans listed", slog.Int("count", len(result)))
	render.JSON(w, r, result)
}
