package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "wrapped not found",
			err:  fmt.Errorf("teacher with telegram id 7: %w", service.ErrNotFound),
			want: "❌ Ваш Telegram не привязан к учителю.\n\nУзнать свой ID: /start",
		},
		{name: "no message", err: ErrNoMessage, want: "❌ Ошибка обработки сообщения"},
		{name: "invalid format", err: ErrInvalidFormat, want: "❌ Неверный формат данных"},
		{name: "storage failure", err: errors.New("connection refused"), want: "❌ Не удалось загрузить расписание."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.err))
		})
	}
}
