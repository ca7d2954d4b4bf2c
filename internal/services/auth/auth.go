// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и управления сессиями пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/face-collection/internal/lib/password"
	"github.com/magabrotheeeer/face-collection/internal/lib/sl"
	"github.com/magabrotheeeer/face-collection/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	// Занятое имя дает models.ErrUsernameTaken.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени
	// или models.ErrUserNotFound, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionManager описывает контракт реестра сессий.
type SessionManager interface {
	// Establish создает новую сессию и возвращает ее токен.
	Establish(ctx context.Context, username string) (string, error)

	// Resolve возвращает username действующей сессии
	// или models.ErrUnauthenticated.
	Resolve(ctx context.Context, token string) (string, error)

	// Invalidate отзывает сессию токена, идемпотентен.
	Invalidate(ctx context.Context, token string) error
}

// EventPublisher описывает публикацию событий о пользователях.
type EventPublisher interface {
	UserRegistered(username string) error
}

// AuthService отвечает за регистрацию, вход, выход и проверку сессий.
type AuthService struct {
	users          UserRepository
	sessions       SessionManager
	events         EventPublisher
	minPasswordLen int
	log            *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionManager, events EventPublisher, minPasswordLen int, log *slog.Logger) *AuthService {
	return &AuthService{
		users:          users,
		sessions:       sessions,
		events:         events,
		minPasswordLen: minPasswordLen,
		log:            log,
	}
}

// Register создает нового пользователя с хэшированием пароля и сразу
// открывает для него сессию. Возвращает токен сессии.
//
// Неуспешная регистрация не оставляет частичной записи: пользователь
// создается одним INSERT.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Register"

	username = strings.TrimSpace(username)
	if username == "" {
		return "", fmt.Errorf("%w: empty username", models.ErrInvalidInput)
	}
	if rawPassword == "" {
		return "", fmt.Errorf("%w: empty password", models.ErrInvalidInput)
	}
	if len(rawPassword) < s.minPasswordLen {
		return "", fmt.Errorf("%w: password shorter than %d characters", models.ErrInvalidInput, s.minPasswordLen)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hashed,
	}
	if _, err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, models.ErrUsernameTaken) {
			return "", models.ErrUsernameTaken
		}
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}

	if s.events != nil {
		if err := s.events.UserRegistered(username); err != nil {
			// событие — побочный канал, регистрацию не откатываем
			s.log.Error("failed to publish user.registered", sl.Err(err))
		}
	}

	return s.sessions.Establish(ctx, username)
}

// Login проверяет пароль пользователя и открывает сессию. Возвращает токен.
//
// Отсутствие пользователя и неверный пароль неразличимы для вызывающего:
// оба случая дают models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	username = strings.TrimSpace(username)
	if username == "" || rawPassword == "" {
		return "", models.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", models.ErrInvalidCredentials
	}

	return s.sessions.Establish(ctx, user.Username)
}

// Logout отзывает сессию токена. Всегда "успешен": отзыв уже отозванной
// или несуществующей сессии — no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

// Authenticate возвращает username действующей сессии по токену.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	return s.sessions.Resolve(ctx, token)
}
