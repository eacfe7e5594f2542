// Package middlewarectx содержит HTTP middleware для проверки токена сессии.
//
// AuthMiddleware проверяет наличие Bearer-токена в заголовке Authorization,
// валидирует его через identity-сервис и в случае успеха добавляет в контекст
// uid и email пользователя для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/yousrr/FitZone/internal/http/response"
	"github.com/yousrr/FitZone/internal/identity"
	"github.com/yousrr/FitZone/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для uid пользователя в контексте
	UserUID Key = "user_uid"
	// UserEmail — ключ для email пользователя в контексте
	UserEmail Key = "user_email"
)

// Service описывает интерфейс сервиса для валидации токена сессии.
type Service interface {
	Lookup(ctx context.Context, token string) (*identity.TokenInfo, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет Bearer-токен
// в заголовке Authorization.
//
// Если токен валиден, добавляет uid и email пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(authClient Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Missing auth token"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			info, err := authClient.Lookup(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("Invalid auth token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, info.UID)
			ctx = context.WithValue(ctx, UserEmail, info.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
