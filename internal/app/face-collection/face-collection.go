// Package facecollection собирает приложение: хранилище, реестр сессий,
// публикацию событий, сервисы и HTTP-сервер.
package facecollection

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/face-collection/internal/config"
	tokens "github.com/magabrotheeeer/face-collection/internal/lib/jwt"
	"github.com/magabrotheeeer/face-collection/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/face-collection/internal/migrations"
	authservice "github.com/magabrotheeeer/face-collection/internal/services/auth"
	prefservice "github.com/magabrotheeeer/face-collection/internal/services/preferences"
	"github.com/magabrotheeeer/face-collection/internal/sessions"
	"github.com/magabrotheeeer/face-collection/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние подключения приложения.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *sessions.Manager
	events   *rabbitmq.Publisher
}

// New создает приложение: подключается к PostgreSQL, Redis и RabbitMQ,
// применяет миграции и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	maker := tokens.NewMaker(cfg.SecretKey, cfg.SessionTTL)
	sessionManager, err := sessions.New(ctx, cfg.RedisConnection, maker, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 2*time.Second)
	if err != nil {
		return nil, err
	}
	events, err := rabbitmq.NewPublisher(conn)
	if err != nil {
		return nil, err
	}

	authService := authservice.NewAuthService(db, sessionManager, events, cfg.MinPasswordLen, logger)
	preferencesService := prefservice.NewPreferencesService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, preferencesService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessionManager,
		events:   events,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
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
		_ = a.events.Close()
		_ = a.sessions.Close()
		_ = a.db.DB.Close()
		return err
	}
}
