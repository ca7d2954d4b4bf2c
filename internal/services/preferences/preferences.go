// Package preferences содержит логику бизнес-уровня для работы с коллекцией
// смайликов пользователя: добавление, удаление и просмотр.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/face-collection/internal/models"
)

// FaceRepository описывает контракт хранилища коллекций смайликов.
// Операции атомарны на уровне хранилища: конкурентные добавления
// не теряют обновлений и не создают дубликатов.
type FaceRepository interface {
	AddFace(ctx context.Context, username, category, face string) (models.Preferences, error)
	RemoveFace(ctx context.Context, username, category, face string) (models.Preferences, error)
	ListFaces(ctx context.Context, username string) (models.Preferences, error)
}

// PreferencesService реализует операции над коллекцией смайликов.
// Операции всегда выполняются от имени владельца коллекции: username
// приходит из разрешенной сессии, не из параметров запроса.
type PreferencesService struct {
	repo FaceRepository
	log  *slog.Logger
}

// NewPreferencesService создает новый экземпляр PreferencesService.
func NewPreferencesService(repo FaceRepository, log *slog.Logger) *PreferencesService {
	return &PreferencesService{repo: repo, log: log}
}

// validate обрезает пробелы и отклоняет пустые значения. Других ограничений
// нет: юникод и пунктуация — легальное содержимое смайлика.
func validate(category, face string) (string, string, error) {
	category = strings.TrimSpace(category)
	face = strings.TrimSpace(face)
	if category == "" {
		return "", "", fmt.Errorf("%w: empty category", models.ErrInvalidInput)
	}
	if face == "" {
		return "", "", fmt.Errorf("%w: empty face", models.ErrInvalidInput)
	}
	return category, face, nil
}

// Add добавляет смайлик в категорию и возвращает коллекцию после обновления.
// Идемпотентен: повторное добавление не меняет коллекцию.
func (s *PreferencesService) Add(ctx context.Context, username, category, face string) (models.Preferences, error) {
	const op = "services.preferences.Add"

	category, face, err := validate(category, face)
	if err != nil {
		return nil, err
	}

	prefs, err := s.repo.AddFace(ctx, username, category, face)
	if err != nil {
		return nil, wrapStoreErr(op, err)
	}
	return prefs, nil
}

// Remove удаляет смайлик из категории и возвращает коллекцию после обновления.
// Удаление отсутствующего смайлика — no-op.
func (s *PreferencesService) Remove(ctx context.Context, username, category, face string) (models.Preferences, error) {
	const op = "services.preferences.Remove"

	category, face, err := validate(category, face)
	if err != nil {
		return nil, err
	}

	prefs, err := s.repo.RemoveFace(ctx, username, category, face)
	if err != nil {
		return nil, wrapStoreErr(op, err)
	}
	return prefs, nil
}

// List возвращает всю коллекцию смайликов пользователя.
func (s *PreferencesService) List(ctx context.Context, username string) (models.Preferences, error) {
	const op = "services.preferences.List"

	prefs, err := s.repo.ListFaces(ctx, username)
	if err != nil {
		return nil, wrapStoreErr(op, err)
	}
	return prefs, nil
}

// wrapStoreErr сохраняет первопричину рядом с сентинелом: вызывающий
// различает исход по errors.Is, лог видит исходную ошибку хранилища.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, models.ErrUserNotFound) {
		return models.ErrUserNotFound
	}
	return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
}
