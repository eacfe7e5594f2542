// Package create реализует HTTP-обработчик заявок на пробное посещение.
//
// Handler принимает JSON-заявку с контактными данными, валидирует
// обязательные поля и сохраняет заявку. Аутентификация не требуется.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/yousrr/FitZone/internal/http/response"
	"github.com/yousrr/FitZone/internal/lib/sl"
	"github.com/yousrr/FitZone/internal/models"
)

// Handler управляет HTTP-запросами на создание заявок на посещение.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики заявок на посещение.
type Service interface {
	Create(ctx context.Context, req models.DummyVisit) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оставить заявку на пробное посещение
// @Description Сохраняет контактные данные и желаемое время визита.
// @Tags Visits
// @Accept  json
// @Produce  json
// @Param request body models.DummyVisit true "Заявка на посещение"
// @Success 201 {object} map[string]any "Заявка принята"
// @Failure 400 {object} response.ErrorResponse "Отсутствуют обязательные поля"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при сохранении заявки"
// @Router /api/visits [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.visit.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyVisit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("full_name", req.FullName))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Missing required fields"))
		return
	}
	log.Info("all fields are validated")

	if err := h.service.Create(r.Context(), req); err != nil {
		log.Error("failed to create visit request", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to save visit request"))
		return
	}

	log.Info("visit request created")
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"ok": true,
	})
}
