package models

import "errors"

// Ошибки доменного уровня. Сервисы возвращают их как типизированные исходы,
// HTTP-слой превращает в коды ответов.
var (
	// ErrInvalidCredentials — неверная пара логин/пароль. Не различает
	// "нет такого пользователя" и "неверный пароль".
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken — имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrUserNotFound — пользователь не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput — пустая категория или смайлик после обрезки пробелов.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated — запрос без действующей сессии.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrStoreUnavailable — хранилище недоступно, запрос можно повторить позже.
	ErrStoreUnavailable = errors.New("store unavailable")
)
