// Package identity предоставляет сборку HTTP-приложения identity-сервиса.
package identity

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yousrr/FitZone/internal/config"
	"github.com/yousrr/FitZone/internal/identityserver"
	"github.com/yousrr/FitZone/internal/lib/jwt"
	"github.com/yousrr/FitZone/internal/migrations"
	authservices "github.com/yousrr/FitZone/internal/services/identity"
	"github.com/yousrr/FitZone/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservices.NewAuthService(db, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.AddressIdentity,
		Handler:      identityserver.New(authService, cfg.APIKey, logger).Routes(),
		ReadTimeout:  cfg.TimeoutIdentity,
		WriteTimeout: cfg.TimeoutIdentity,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("identity HTTP server starting on", slog.String("address", a.server.Addr))
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
		a.logger.Info("shutting down identity HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
