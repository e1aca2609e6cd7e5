// Package jwt выпускает и проверяет токены доступа сервиса заметок.
//
// Токен подписывается HS256 и несёт снимок пользователя (models.Identity),
// поэтому проверка не требует обращения к базе данных.
package jwt

import (
	"errors"
	"time"

	"github.com/magabrotheeeer/notes-service/internal/models"
)

var (
	// ErrInvalidToken — токен повреждён или подпись не совпадает.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpired — срок действия токена истёк.
	ErrExpired = errors.New("token expired")
)

// Maker описывает генерацию и разбор токенов доступа.
type Maker interface {
	GenerateToken(user models.Identity) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с секретным ключом и временем жизни токена.
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}
