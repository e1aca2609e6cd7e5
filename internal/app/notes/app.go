// Package notes собирает сервис заметок: хранилище, кеш, сервисы и HTTP-сервер.
package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/notes-service/internal/cache"
	"github.com/magabrotheeeer/notes-service/internal/config"
	"github.com/magabrotheeeer/notes-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-service/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	"github.com/magabrotheeeer/notes-service/internal/migrations"
	authservice "github.com/magabrotheeeer/notes-service/internal/services/auth"
	noteservice "github.com/magabrotheeeer/notes-service/internal/services/note"
	"github.com/magabrotheeeer/notes-service/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App владеет HTTP-сервером и внешними соединениями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New подключается к PostgreSQL, применяет миграции, подключается к Redis
// и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.notes.New"

	db, err := storage.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = db.CheckDatabaseReady(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(db, jwtMaker, cacheRedis, logger, authservice.Options{
		ProfileTTL: cfg.ProfileTTL,
	})
	noteService := noteservice.NewNoteService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:    authService,
		Notes:   noteService,
		Tokens:  jwtMaker,
		Metrics: middlewarectx.NewMetrics(prometheus.DefaultRegisterer),
	})

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

// Run обслуживает запросы до отмены ctx, затем останавливает сервер
// и закрывает соединения.
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
}
