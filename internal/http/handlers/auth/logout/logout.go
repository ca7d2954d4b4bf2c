// Package logout реализует HTTP-обработчик выхода из системы.
//
// Выход всегда "успешен": отзыв отсутствующей или уже отозванной сессии —
// no-op. Маршрут сознательно не стоит за middleware сессии.
package logout

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/face-collection/internal/http/response"
	"github.com/magabrotheeeer/face-collection/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log  *slog.Logger
	auth Service
}

// Service описывает интерфейс отзыва сессии.
type Service interface {
	Logout(ctx context.Context, token string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, auth Service) *Handler {
	return &Handler{
		log:  log,
		auth: auth,
	}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Отзывает сессию предъявленного токена. Всегда возвращает 200.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Выход выполнен"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if err := h.auth.Logout(r.Context(), token); err != nil {
			// выход остается успешным для клиента
			log.Error("failed to invalidate session", sl.Err(err))
		}
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "logged out",
	}))
}
