package model

import (
	"time"

	"github.com/google/uuid"
)

type Teacher struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	TelegramID *int64    `json:"telegramId,omitempty"` // привязка к Telegram для бота и уведомлений
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
