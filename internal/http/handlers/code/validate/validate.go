// Package validate реализует HTTP-обработчик предварительной проверки
// контрактного кода.
//
// Отказ кода не является ошибкой HTTP: ответ всегда 200 с флагом valid
// и причиной отказа. Статус 400 возвращается только при пустом коде.
// Проверка применяет те же правила, что и регистрация, поэтому успешная
// проверка и последующая регистрация согласованы.
package validate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yousrr/FitZone/internal/http/response"
	"github.com/yousrr/FitZone/internal/lib/sl"
	"github.com/yousrr/FitZone/internal/models"
	services "github.com/yousrr/FitZone/internal/services/membership"
)

// Request — входные данные для проверки кода
type Request struct {
	ContractCode string `json:"contractCode"`
}

// Handler управляет HTTP-запросами проверки контрактных кодов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки кода.
type Service interface {
	ValidateCode(ctx context.Context, raw string) (*models.ContractCode, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить контрактный код
// @Description Проверяет код перед регистрацией. Отказ возвращается как valid:false с причиной.
// @Tags ContractCodes
// @Accept  json
// @Produce  json
// @Param request body Request true "Контрактный код"
// @Success 200 {object} map[string]any "Результат проверки"
// @Failure 400 {object} map[string]any "Код не передан"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при проверке"
// @Router /api/contract-codes/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.code.validate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if req.ContractCode == "" {
		log.Error("contract code missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, map[string]any{
			"valid":  false,
			"reason": "Contract code is required",
		})
		return
	}
	log.Info("request body decoded", slog.String("contract_code", req.ContractCode))

	_, err := h.service.ValidateCode(r.Context(), req.ContractCode)
	if err != nil {
		var reason string
		switch {
		case errors.Is(err, services.ErrCodeNotFound):
			reason = "Contract code not found"
		case errors.Is(err, services.ErrCodeNotActive):
			reason = "Contract code is not active"
		case errors.Is(err, services.ErrCodeExpired):
			reason = "Contract code expired"
		default:
			log.Error("failed to validate contract code", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to validate contract code"))
			return
		}
		log.Info("contract code rejected", slog.String("reason", reason))
		render.JSON(w, r, map[string]any{
			"valid":  false,
			"reason": reason,
		})
		return
	}

	log.Info("contract code is valid")
	render.JSON(w, r, map[string]any{
		"valid": true,
	})
}
