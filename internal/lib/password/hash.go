// Package password хеширует пароли пользователей через bcrypt.
// В базе лежит только bcrypt-хеш.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength — предел длины пароля в байтах, который принимает bcrypt.
const MaxLength = 72

var (
	// ErrMismatch возвращается, если пароль не соответствует хешу.
	ErrMismatch = errors.New("password does not match")
	// ErrTooLong возвращается, если пароль длиннее MaxLength байт.
	ErrTooLong = errors.New("password is too long")
)

// Hash возвращает bcrypt‑хеш пароля с заданной стоимостью.
// Стоимость вне допустимого диапазона заменяется на bcrypt.DefaultCost.
func Hash(plain string, cost int) (string, error) {
	const op = "password.Hash"
	if len(plain) > MaxLength {
		return "", fmt.Errorf("%s: %w", op, ErrTooLong)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сверяет пароль с хешем.
//
// Несовпадение возвращает ErrMismatch, повреждённый хеш — обёрнутую ошибку bcrypt.
func Compare(hash, plain string) error {
	const op = "password.Compare"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
