package handlers

import (
	"bytes"
	"context"
	"errors"

	"github.com/Freeeeeet/timetable/internal/controller/formatting"
	"github.com/Freeeeeet/timetable/internal/controller/keyboard"
	"github.com/Freeeeeet/timetable/internal/render"
	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMySchedule отправляет привязанному учителю его недельное расписание текстом и картинкой
func (h *Handlers) HandleMySchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	h.logger.Info("HandleMySchedule called", zap.Int64("telegram_id", telegramID))

	tt, err := h.scheduleService.TimetableByTelegramID(ctx, telegramID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.logger.Error("Failed to get teacher timetable",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
		}
		h.sendError(ctx, b, chatID, err)
		return
	}

	if tt.LessonCount() == 0 {
		h.sendText(ctx, b, chatID, formatting.FormatTimetable(tt))
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        formatting.FormatTimetable(tt),
		ReplyMarkup: keyboard.Weekdays(),
	})
	if err != nil {
		h.logger.Error("Failed to send timetable",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}

	imageData, err := render.Timetable(tt)
	if err != nil {
		h.logger.Error("Failed to render timetable",
			zap.String("teacher_id", tt.Teacher.ID.String()),
			zap.Error(err))
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: chatID,
		Photo:  &models.InputFileUpload{Filename: "timetable.png", Data: bytes.NewReader(imageData)},
	})
	if err != nil {
		h.logger.Error("Failed to send timetable image",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// HandleDayCallback показывает уроки выбранного дня по кнопке под расписанием
func (h *Handlers) HandleDayCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	h.answerCallback(ctx, b, callback.ID)

	msg := callback.Message.Message
	if msg == nil {
		h.sendError(ctx, b, callback.From.ID, ErrNoMessage)
		return
	}

	day, ok := keyboard.ParseDay(callback.Data)
	if !ok {
		h.logger.Warn("Unknown day callback", zap.String("data", callback.Data))
		h.sendError(ctx, b, msg.Chat.ID, ErrInvalidFormat)
		return
	}

	tt, err := h.scheduleService.TimetableByTelegramID(ctx, callback.From.ID)
	if err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.logger.Error("Failed to get teacher timetable",
				zap.Int64("telegram_id", callback.From.ID),
				zap.Error(err))
		}
		h.sendError(ctx, b, msg.Chat.ID, err)
		return
	}

	h.sendText(ctx, b, msg.Chat.ID, formatting.FormatDay(tt.Day(day)))
}
