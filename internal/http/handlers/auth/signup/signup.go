// Package signup реализует HTTP-обработчик регистрации по контрактному коду.
//
// Handler принимает JSON-запрос с анкетой и контрактным кодом, валидирует его,
// вызывает оркестрацию регистрации и возвращает токен сессии. Каждая причина
// отказа кода отдается своим сообщением, а не общей ошибкой.
package signup

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/yousrr/FitZone/internal/http/response"
	"github.com/yousrr/FitZone/internal/lib/sl"
	"github.com/yousrr/FitZone/internal/models"
	services "github.com/yousrr/FitZone/internal/services/membership"
)

// Handler управляет HTTP-запросами на регистрацию новых участников.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Signup(ctx context.Context, req models.DummySignup) (string, error)
}

func hasMissingField(errs validator.ValidationErrors) bool {
	for _, err := range errs {
		if err.ActualTag() == "required" {
			return true
		}
	}
	return false
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
// @Summary Зарегистрировать участника по контрактному коду
// @Description Создает учетную запись, участника и подписку, погашая контрактный код. Возвращает токен сессии.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummySignup true "Анкета регистрации"
// @Success 201 {object} map[string]any "Токен сессии"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или контрактный код"
// @Failure 409 {object} response.ErrorResponse "Email уже занят"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при регистрации"
// @Router /api/auth/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySignup
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		validateErrs := err.(validator.ValidationErrors)
		if hasMissingField(validateErrs) {
			render.JSON(w, r, response.Error("Missing required fields"))
		} else {
			render.JSON(w, r, response.ValidationError(validateErrs))
		}
		return
	}
	log.Info("all fields are validated")

	token, err := h.service.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordMismatch):
			log.Error("passwords do not match")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Passwords do not match"))
		case errors.Is(err, services.ErrCodeNotFound):
			log.Error("contract code not found")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid contract code"))
		case errors.Is(err, services.ErrCodeNotActive):
			log.Error("contract code is not active")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Contract code is not active"))
		case errors.Is(err, services.ErrCodeExpired):
			log.Error("contract code expired")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("Contract code expired"))
		case errors.Is(err, services.ErrEmailInUse):
			log.Error("email already in use")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("Email already in use"))
		case errors.Is(err, services.ErrTokenIssue):
			// Участник и подписка уже записаны, откат не выполняется.
			log.Error("signup committed, token exchange failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Signup succeeded, but login failed"))
		default:
			log.Error("failed to create user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to create user"))
		}
		return
	}

	log.Info("member registered")
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"token": token,
	})
}
