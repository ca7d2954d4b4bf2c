// Package facecollection предоставляет маршруты для основного приложения.
package facecollection

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/face-collection/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/face-collection/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/face-collection/internal/http/handlers/auth/register"
	facesadd "github.com/magabrotheeeer/face-collection/internal/http/handlers/faces/add"
	faceslist "github.com/magabrotheeeer/face-collection/internal/http/handlers/faces/list"
	facesremove "github.com/magabrotheeeer/face-collection/internal/http/handlers/faces/remove"
	"github.com/magabrotheeeer/face-collection/internal/http/handlers/health"
	"github.com/magabrotheeeer/face-collection/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/face-collection/internal/services/auth"
	prefservice "github.com/magabrotheeeer/face-collection/internal/services/preferences"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, preferencesService *prefservice.PreferencesService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		// logout не за middleware сессии: он успешен и без активной сессии
		r.Post("/logout", logout.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа за проверкой сессии
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/faces", faceslist.New(logger, preferencesService).ServeHTTP)
			r.Post("/faces", facesadd.New(logger, preferencesService).ServeHTTP)
			r.Delete("/faces", facesremove.New(logger, preferencesService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
