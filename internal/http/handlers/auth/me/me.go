// Package me реализует HTTP-обработчик профиля текущего участника.
//
// Handler собирает денормализованный ответ: анкета участника, подписка и план.
// Отсутствующие подписка и план отдаются как null, а не как ошибка.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yousrr/FitZone/internal/http/middlewarectx"
	"github.com/yousrr/FitZone/internal/http/response"
	"github.com/yousrr/FitZone/internal/lib/sl"
	services "github.com/yousrr/FitZone/internal/services/membership"
)

// Handler управляет HTTP-запросами профиля участника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	Profile(ctx context.Context, uid, email string) (*services.Profile, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить профиль текущего участника
// @Description Возвращает анкету участника, подписку и план. Отсутствующие подписка и план отдаются как null.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Профиль участника"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при загрузке профиля"
// @Router /api/auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || uid == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("Missing user"))
		return
	}
	email, _ := r.Context().Value(middlewarectx.UserEmail).(string)

	profile, err := h.service.Profile(r.Context(), uid, email)
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to load profile"))
		return
	}

	log.Info("profile loaded", slog.String("uid", uid))
	render.JSON(w, r, map[string]any{
		"user":         profile.User,
		"subscription": profile.Subscription,
		"plan":         profile.Plan,
	})
}
