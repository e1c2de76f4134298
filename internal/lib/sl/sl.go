// Package sl добавляет короткие помощники для атрибутов slog,
// чтобы ошибки во всех обработчиках логировались одним полем.
package sl

import "log/slog"

// Err формирует атрибут с ключом "error" из текста ошибки.
// Нулевая ошибка даёт значение "nil", вызов безопасен в ветках,
// где ошибка не обязательна:
//
//	log.Error("failed to remove subscription", sl.Err(err))
func Err(err error) slog.Attr {
	msg := "nil"
	if err != nil {
		msg = err.Error()
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(msg),
	}
}
