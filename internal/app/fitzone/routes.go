// Package fitzone предоставляет маршруты и сборку основного приложения.
package fitzone

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/yousrr/FitZone/internal/http/handlers/auth/login"
	"github.com/yousrr/FitZone/internal/http/handlers/auth/me"
	"github.com/yousrr/FitZone/internal/http/handlers/auth/signup"
	"github.com/yousrr/FitZone/internal/http/handlers/catalog/categories"
	"github.com/yousrr/FitZone/internal/http/handlers/catalog/plans"
	codevalidate "github.com/yousrr/FitZone/internal/http/handlers/code/validate"
	"github.com/yousrr/FitZone/internal/http/handlers/health"
	schedulelist "github.com/yousrr/FitZone/internal/http/handlers/schedule/list"
	visitcreate "github.com/yousrr/FitZone/internal/http/handlers/visit/create"
	"github.com/yousrr/FitZone/internal/http/middlewarectx"
	"github.com/yousrr/FitZone/internal/identity"
	catalogservice "github.com/yousrr/FitZone/internal/services/catalog"
	membershipservice "github.com/yousrr/FitZone/internal/services/membership"
	visitservice "github.com/yousrr/FitZone/internal/services/visit"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, membershipService *membershipservice.MembershipService, catalogService *catalogservice.CatalogService, visitService *visitservice.VisitService, identityClient *identity.Client) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/health", health.New(logger).ServeHTTP)
		r.Get("/public/plans", plans.New(logger, catalogService).ServeHTTP)
		r.Get("/public/categories", categories.New(logger, catalogService).ServeHTTP)
		r.Post("/visits", visitcreate.New(logger, visitService).ServeHTTP)
		r.Post("/contract-codes/validate", codevalidate.New(logger, membershipService).ServeHTTP)
		r.Post("/auth/signup", signup.New(logger, membershipService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, membershipService).ServeHTTP)

		// Группа с проверкой токена сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(identityClient, logger))
			r.Get("/auth/me", me.New(logger, membershipService).ServeHTTP)
			r.Get("/member/schedule", schedulelist.New(logger, catalogService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
