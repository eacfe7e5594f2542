package fitzone

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/yousrr/FitZone/internal/cache"
	"github.com/yousrr/FitZone/internal/config"
	"github.com/yousrr/FitZone/internal/identity"
	"github.com/yousrr/FitZone/internal/migrations"
	catalogservice "github.com/yousrr/FitZone/internal/services/catalog"
	membershipservice "github.com/yousrr/FitZone/internal/services/membership"
	visitservice "github.com/yousrr/FitZone/internal/services/visit"
	"github.com/yousrr/FitZone/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	identityClient := identity.New(cfg.IdentityProvider)

	catalogService := catalogservice.NewCatalogService(db, cacheRedis, logger)
	membershipService := membershipservice.NewMembershipService(db, identityClient, catalogService, logger)
	visitService := visitservice.NewVisitService(db)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, membershipService, catalogService, visitService, identityClient)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
