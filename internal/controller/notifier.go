package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/timetable/internal/controller/formatting"
	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const notifyTimeout = 5 * time.Second

// TelegramNotifier сообщает учителю об изменениях его расписания
type TelegramNotifier struct {
	bot    *bot.Bot
	logger *zap.Logger
}

var _ service.Notifier = (*TelegramNotifier)(nil)

func NewTelegramNotifier(botInstance *bot.Bot, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{bot: botInstance, logger: logger}
}

// NotifySlot отправляет сообщение, если учитель привязан к Telegram
func (n *TelegramNotifier) NotifySlot(ctx context.Context, event service.SlotEvent) error {
	if event.Teacher == nil || event.Teacher.TelegramID == nil || !event.Teacher.IsActive {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: *event.Teacher.TelegramID,
		Text:   formatting.FormatSlotEvent(string(event.Kind), event.Slot),
	})
	if err != nil {
		return fmt.Errorf("send slot notification: %w", err)
	}

	n.logger.Debug("Slot notification sent",
		zap.String("teacher_id", event.Teacher.ID.String()),
		zap.String("event", string(event.Kind)))
	return nil
}
