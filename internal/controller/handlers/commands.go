package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleStart обрабатывает команду /start и показывает Telegram ID для привязки учителя
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From
	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот школьного расписания.\n\n"+
			"Ваш Telegram ID: %d\n"+
			"Передайте его администратору, чтобы привязать его к карточке учителя.\n\n"+
			"После привязки доступна команда /myschedule и уведомления об изменениях уроков.",
		user.FirstName,
		user.ID,
	)

	h.sendText(ctx, b, update.Message.Chat.ID, welcomeText)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Узнать свой Telegram ID для привязки\n" +
		"/myschedule - Моё недельное расписание\n" +
		"/help - Показать эту справку"

	h.sendText(ctx, b, update.Message.Chat.ID, helpText)
}
