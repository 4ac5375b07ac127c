// Package keyboard inline клавиатуры бота.
package keyboard

import (
	"strings"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/go-telegram/bot/models"
)

// DayPrefix префикс callback data кнопок дней недели
const DayPrefix = "day:"

var shortWeekdayNames = map[model.Weekday]string{
	model.Monday:    "Пн",
	model.Tuesday:   "Вт",
	model.Wednesday: "Ср",
	model.Thursday:  "Чт",
	model.Friday:    "Пт",
	model.Saturday:  "Сб",
}

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт новый builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// Weekdays клавиатура выбора дня: Пн-Ср в первом ряду, Чт-Сб во втором
func Weekdays() *models.InlineKeyboardMarkup {
	b := NewBuilder()
	row := make([]models.InlineKeyboardButton, 0, 3)
	for _, day := range model.Weekdays {
		row = append(row, Button(shortWeekdayNames[day], DayPrefix+string(day)))
		if len(row) == 3 {
			b.Row(row...)
			row = make([]models.InlineKeyboardButton, 0, 3)
		}
	}
	b.Row(row...)
	return b.Build()
}

// ParseDay достаёт день недели из callback data кнопки
func ParseDay(data string) (model.Weekday, bool) {
	raw, ok := strings.CutPrefix(data, DayPrefix)
	if !ok {
		return "", false
	}
	day, err := model.ParseWeekday(raw)
	if err != nil {
		return "", false
	}
	return day, true
}
