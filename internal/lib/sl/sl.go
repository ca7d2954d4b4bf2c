// Package sl дополняет slog атрибутами, общими для всего сервиса.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут лога с ключом "error".
// Текст ошибки уже содержит цепочку op-префиксов, отдельное поле
// для места возникновения не нужно.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
