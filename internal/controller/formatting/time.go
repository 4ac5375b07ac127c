package formatting

import (
	"fmt"

	"github.com/Freeeeeet/timetable/internal/model"
)

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

var weekdayNames = map[model.Weekday]string{
	model.Monday:    "Понедельник",
	model.Tuesday:   "Вторник",
	model.Wednesday: "Среда",
	model.Thursday:  "Четверг",
	model.Friday:    "Пятница",
	model.Saturday:  "Суббота",
}

// WeekdayName возвращает название дня недели на русском
func WeekdayName(day model.Weekday) string {
	if name, ok := weekdayNames[day]; ok {
		return name
	}
	return "Неизвестно"
}

// FormatTimeRange форматирует интервал урока
func FormatTimeRange(start, end string) string {
	return start + "-" + end
}
