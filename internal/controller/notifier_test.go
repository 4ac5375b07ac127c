package controller

import (
	"context"
	"testing"

	"github.com/Freeeeeet/timetable/internal/controller/bottest"
	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNotifySlot(t *testing.T) {
	telegramID := int64(42)
	room := "204"
	slot := &model.ScheduleSlot{
		ID:        uuid.New(),
		Weekday:   model.Friday,
		StartTime: "10:00",
		EndTime:   "10:45",
		Room:      &room,
	}

	tests := []struct {
		name     string
		teacher  *model.Teacher
		wantSent bool
	}{
		{name: "no teacher", teacher: nil},
		{name: "not linked", teacher: &model.Teacher{ID: uuid.New(), IsActive: true}},
		{name: "inactive", teacher: &model.Teacher{ID: uuid.New(), TelegramID: &telegramID}},
		{
			name:     "linked active teacher",
			teacher:  &model.Teacher{ID: uuid.New(), TelegramID: &telegramID, IsActive: true},
			wantSent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, b := bottest.New(t)
			notifier := NewTelegramNotifier(b, zaptest.NewLogger(t))

			err := notifier.NotifySlot(context.Background(), service.SlotEvent{
				Kind:    service.SlotCreated,
				Slot:    slot,
				Teacher: tt.teacher,
			})
			require.NoError(t, err)

			calls := server.Calls()
			if !tt.wantSent {
				assert.Empty(t, calls)
				return
			}
			require.Len(t, calls, 1)
			assert.Equal(t, "sendMessage", calls[0].Method)
			assert.Equal(t, telegramID, calls[0].ChatID)
			assert.Contains(t, calls[0].Text, "Новый урок")
			assert.Contains(t, calls[0].Text, "каб. 204")
		})
	}
}

func TestNotifySlotSurvivesCanceledContext(t *testing.T) {
	server, b := bottest.New(t)
	notifier := NewTelegramNotifier(b, zaptest.NewLogger(t))
	telegramID := int64(42)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := notifier.NotifySlot(ctx, service.SlotEvent{
		Kind:    service.SlotDeleted,
		Slot:    &model.ScheduleSlot{Weekday: model.Monday, StartTime: "08:00", EndTime: "09:00"},
		Teacher: &model.Teacher{ID: uuid.New(), TelegramID: &telegramID, IsActive: true},
	})
	require.NoError(t, err)
	assert.Len(t, server.CallsTo("sendMessage"), 1)
}
