// Package middlewarectx содержит HTTP middleware для проверки сессий.
//
// SessionMiddleware — единственная точка контроля "must be logged in":
// проверяет токен из заголовка Authorization через реестр сессий и в
// случае успеха кладет имя пользователя в контекст запроса.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized, не вызывая
// защищенный обработчик.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/face-collection/internal/http/response"
	"github.com/magabrotheeeer/face-collection/internal/lib/sl"
	"github.com/magabrotheeeer/face-collection/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для имени пользователя в контексте
const User Key = "username"

// Service описывает интерфейс разрешения токена сессии в имя пользователя.
type Service interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// SessionMiddleware возвращает HTTP middleware, который проверяет токен
// сессии в заголовке Authorization.
//
// Если сессия действует, добавляет имя пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func SessionMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.SessionMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthenticated"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			username, err := auth.Authenticate(r.Context(), tokenStr)
			if err != nil {
				// недоступный реестр сессий — не отказ в аутентификации,
				// запрос можно повторить позже
				if errors.Is(err, models.ErrStoreUnavailable) {
					log.Error("session store unavailable", sl.Err(err))
					render.Status(r, http.StatusServiceUnavailable)
					render.JSON(w, r, response.Error("store unavailable, try again later"))
					return
				}
				log.Error("invalid or expired session", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthenticated"))
				return
			}
			ctx := context.WithValue(r.Context(), User, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
