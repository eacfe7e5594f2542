// Package categories реализует HTTP-обработчик публичного каталога
// категорий тренировок.
package categories

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

// Handler управляет HTTP-запросами каталога категорий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога категорий.
type Service interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список категорий тренировок
// @Description Возвращает публичный каталог категорий. При пустом хранилище отдается встроенный набор.
// @Tags Catalog
// @Produce  json
// @Success 200 {array} models.Category "Каталог категорий"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при загрузке каталога"
// @Router /api/public/categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.categories"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.Categories(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to load categories"))
		return
	}

	log.Info("categories listed", slog.Int("count", len(result)))
	render.JSON(w, r, result)
}
