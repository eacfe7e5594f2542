// Package login реализует HTTP-обработчик входа участника.
//
// Handler обменивает email и пароль на токен сессии. Корректный пароль
// не гарантирует допуск: при неактивной подписке вход запрещается.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yousrr/FitZone/internal/http/response"
	"github.com/yousrr/FitZone/internal/identity"
	"github.com/yousrr/FitZone/internal/lib/sl"
	services "github.com/yousrr/FitZone/internal/services/membership"
)

// Request — входные данные для входа
type Request struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler управляет HTTP-запросами на вход участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Войти в личный кабинет
// @Description Обменивает учетные данные на токен сессии и проверяет статус подписки.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} map[string]any "Токен сессии"
// @Failure 400 {object} response.ErrorResponse "Отсутствуют email или пароль"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Подписка не активна"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при входе"
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
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

	if req.Email == "" || req.Password == "" {
		log.Error("email or password missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("Email and password are required"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Error("invalid credentials", sl.Err(err))
			// Сообщение identity-сервиса показывается пользователю, если оно есть.
			msg := "Invalid credentials"
			var upstreamErr *identity.UpstreamError
			if errors.As(err, &upstreamErr) && upstreamErr.Message != "" {
				msg = upstreamErr.Message
			}
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(msg))
		case errors.Is(err, services.ErrSubscriptionInactive):
			log.Error("subscription is not active")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("Your subscription is not active. Please contact support."))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Login failed"))
		}
		return
	}

	log.Info("member logged in")
	render.JSON(w, r, map[string]any{
		"token": token,
	})
}
