package handlers

import (
	"errors"

	"github.com/Freeeeeet/timetable/internal/service"
)

// Ошибки обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// errorMessage возвращает пользовательское сообщение для ошибки
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return "❌ Ваш Telegram не привязан к учителю.\n\nУзнать свой ID: /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	default:
		return "❌ Не удалось загрузить расписание."
	}
}
