// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и коллекцию ASCII-смайликов.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя, никогда не логируется
	CreatedAt    time.Time // Дата регистрации
}

// Preferences — коллекция смайликов пользователя: категория -> множество смайликов.
// Внутри категории смайлики уникальны, категория без смайликов в карте отсутствует.
type Preferences map[string][]string
