// Package models содержит доменные структуры сервиса заметок:
// пользователя, его публичный профиль, снимок личности из токена и заметку.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    // Уникальный идентификатор пользователя (uuid)
	FullName     string    // Полное имя
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хеш пароля
	CreatedOn    time.Time // Дата регистрации
}

// Profile — публичное представление пользователя без пароля.
type Profile struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

// Profile возвращает профиль пользователя без хеша пароля.
func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		CreatedOn: u.CreatedOn,
	}
}

// Identity — снимок пользователя, зашитый в токен доступа.
//
// Снимок фиксируется в момент выдачи токена и может устареть
// относительно хранилища, это ожидаемое поведение.
type Identity struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullname"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

// Identity возвращает снимок пользователя для токена.
func (u User) Identity() Identity {
	return Identity(u.Profile())
}
