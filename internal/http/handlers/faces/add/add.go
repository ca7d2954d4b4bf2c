// Package add реализует HTTP-обработчик добавления смайлика в категорию.
//
// Имя владельца коллекции берется из контекста запроса, куда его кладет
// middleware сессии: параметра "чужого" пользователя в запросе нет.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/face-collection/internal/http/middlewarectx"
	"github.com/magabrotheeeer/face-collection/internal/http/response"
	"github.com/magabrotheeeer/face-collection/internal/lib/sl"
	"github.com/magabrotheeeer/face-collection/internal/models"
)

// Request — входные данные для добавления смайлика.
type Request struct {
	Category string `json:"category" validate:"required"`
	Face     string `json:"face" validate:"required"`
}

// Handler обрабатывает HTTP-запросы добавления смайлика.
type Handler struct {
	log      *slog.Logger
	faces    Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики коллекции смайликов.
type Service interface {
	Add(ctx context.Context, username, category, face string) (models.Preferences, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, faces Service) *Handler {
	return &Handler{
		log:      log,
		faces:    faces,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавление смайлика
// @Description Добавляет смайлик в категорию. Повторное добавление — no-op. Возвращает коллекцию после обновления.
// @Tags Faces
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body Request true "Категория и смайлик"
// @Success 200 {object} map[string]any "Коллекция после обновления"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или пустые значения"
// @Failure 401 {object} response.ErrorResponse "Сессия не действует"
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /faces [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.faces.add"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	prefs, err := h.faces.Add(r.Context(), username, req.Category, req.Face)
	if err != nil {
		log.Error("failed to add face", sl.Err(err))
		writeServiceError(w, r, err)
		return
	}

	log.Info("face added", slog.String("username", username), slog.String("category", req.Category))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"preferences": prefs,
	}))
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("category and face must be non-empty"))
	case errors.Is(err, models.ErrUserNotFound):
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthenticated"))
	case errors.Is(err, models.ErrStoreUnavailable):
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("store unavailable, try again later"))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
	}
}
