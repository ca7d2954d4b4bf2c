// Package list реализует HTTP-обработчик просмотра коллекции смайликов.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/face-collection/internal/http/middlewarectx"
	"github.com/magabrotheeeer/face-collection/internal/http/response"
	"github.com/magabrotheeeer/face-collection/internal/lib/sl"
	"github.com/magabrotheeeer/face-collection/internal/models"
)

// Handler обрабатывает HTTP-запросы просмотра коллекции.
type Handler struct {
	log   *slog.Logger
	faces Service
}

// Service описывает интерфейс бизнес-логики коллекции смайликов.
type Service interface {
	List(ctx context.Context, username string) (models.Preferences, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, faces Service) *Handler {
	return &Handler{
		log:   log,
		faces: faces,
	}
}

// ServeHTTP godoc
// @Summary Просмотр коллекции смайликов
// @Description Возвращает всю коллекцию пользователя. У нового пользователя коллекция пуста.
// @Tags Faces
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Коллекция пользователя"
// @Failure 401 {object} response.ErrorResponse "Сессия не действует"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /faces [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.faces.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username is missing from request context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthenticated"))
		return
	}

	prefs, err := h.faces.List(r.Context(), username)
	if err != nil {
		log.Error("failed to list faces", sl.Err(err))
		if errors.Is(err, models.ErrStoreUnavailable) {
			w.WriteHeader(http.StatusServiceUnavailable)
			render.JSON(w, r, response.Error("store unavailable, try again later"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"preferences": prefs,
	}))
}
