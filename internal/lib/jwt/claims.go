// Package jwt реализует кодек токена сессии на основе JWT.
//
// Токен несёт имя пользователя и уникальный идентификатор сессии;
// подпись HS256 гарантирует, что токен выпущен этим сервером.
// Сам по себе токен сессию не подтверждает: её запись должна
// существовать в реестре сессий.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга токенов сессии.
type Maker interface {
	// GenerateToken создает токен для username с указанным идентификатором сессии.
	GenerateToken(username, sessionID string) (string, error)
	// ParseToken возвращает *SessionClaims, если токен подписан нами и не истек.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
