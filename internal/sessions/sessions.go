// Package sessions реализует реестр сессий на основе Redis.
//
// Сессия создается при входе или регистрации, живет до logout либо
// до истечения TTL. Токен сессии — подписанный JWT с идентификатором
// записи в Redis: отзыв сессии (DEL) делает токен недействительным
// немедленно, независимо от срока подписи.
package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/face-collection/internal/config"
	tokens "github.com/magabrotheeeer/face-collection/internal/lib/jwt"
	"github.com/magabrotheeeer/face-collection/internal/models"
)

// Session — запись реестра, хранимая в Redis в формате JSON.
type Session struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager выпускает, проверяет и отзывает сессии.
type Manager struct {
	db     *redis.Client
	tokens tokens.Maker
	ttl    time.Duration
}

// New подключается к Redis и возвращает готовый Manager.
func New(ctx context.Context, cfg config.RedisConnection, maker tokens.Maker, ttl time.Duration) (*Manager, error) {
	const op = "sessions.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Manager{db: db, tokens: maker, ttl: ttl}, nil
}

func sessionKey(id string) string {
	return "session:" + id
}

// Establish создает новую сессию для username и возвращает ее токен.
// Каждый вызов выпускает независимую сессию: у одного пользователя
// их может быть несколько одновременно.
func (m *Manager) Establish(ctx context.Context, username string) (string, error) {
	const op = "sessions.Establish"

	session := Session{
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sessionID := uuid.NewString()
	if err := m.db.Set(ctx, sessionKey(sessionID), data, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}

	token, err := m.tokens.GenerateToken(username, sessionID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Resolve возвращает username действующей сессии по токену.
//
// Поддельный, истекший или отозванный токен дает models.ErrUnauthenticated,
// недоступность Redis — models.ErrStoreUnavailable. Resolve никогда не паникует.
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	const op = "sessions.Resolve"

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, models.ErrUnauthenticated)
	}

	val, err := m.db.Get(ctx, sessionKey(claims.SessionID)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("%s: %w", op, models.ErrUnauthenticated)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if session.Username != claims.Username {
		return "", fmt.Errorf("%s: %w", op, models.ErrUnauthenticated)
	}
	return session.Username, nil
}

// Invalidate отзывает сессию токена. Идемпотентен: повторный отзыв
// и отзыв мусорного токена — no-op без ошибки.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	const op = "sessions.Invalidate"

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := m.db.Del(ctx, sessionKey(claims.SessionID)).Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, models.ErrStoreUnavailable, err)
	}
	return nil
}

// Close закрывает подключение к Redis.
func (m *Manager) Close() error {
	return m.db.Close()
}
