package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/schedule"
)

// FormatLesson одна строка урока: время, предмет, аудитория
func FormatLesson(lesson model.Lesson) string {
	var sb strings.Builder
	sb.WriteString(FormatTimeRange(lesson.StartTime, lesson.EndTime))
	if lesson.SubjectName != "" {
		sb.WriteString(" ")
		sb.WriteString(lesson.SubjectName)
	}
	if lesson.Room != nil {
		sb.WriteString(fmt.Sprintf(" (каб. %s)", *lesson.Room))
	}
	return sb.String()
}

// FormatTimetable текст недельного расписания; пустые дни пропускаются
func FormatTimetable(tt *model.Timetable) string {
	var sb strings.Builder

	total := tt.LessonCount()
	minutes := 0
	for _, day := range tt.Days {
		for _, lesson := range day.Lessons {
			if interval, err := schedule.SlotInterval(&lesson.ScheduleSlot); err == nil {
				minutes += interval.Minutes()
			}
		}
	}

	name := ""
	if tt.Teacher != nil {
		name = tt.Teacher.FullName
	}
	sb.WriteString(fmt.Sprintf("🗓 Расписание: %s\n", name))
	if total == 0 {
		sb.WriteString("\nУроков на неделе нет.")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%d %s, %s в неделю\n", total, PluralizeLessons(total), FormatDuration(minutes)))

	for _, day := range tt.Days {
		if len(day.Lessons) == 0 {
			continue
		}
		sb.WriteString("\n")
		writeDay(&sb, day)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatDay уроки одного дня
func FormatDay(day model.TimetableDay) string {
	if len(day.Lessons) == 0 {
		return fmt.Sprintf("%s: уроков нет.", WeekdayName(day.Weekday))
	}
	var sb strings.Builder
	writeDay(&sb, day)
	return strings.TrimRight(sb.String(), "\n")
}

func writeDay(sb *strings.Builder, day model.TimetableDay) {
	sb.WriteString(WeekdayName(day.Weekday))
	sb.WriteString(":\n")
	for _, lesson := range day.Lessons {
		sb.WriteString("  • ")
		sb.WriteString(FormatLesson(lesson))
		sb.WriteString("\n")
	}
}

var eventTitles = map[string]string{
	"created": "➕ Новый урок в расписании",
	"updated": "✏️ Урок изменён",
	"deleted": "🗑 Урок удалён",
}

// FormatSlotEvent текст уведомления об изменении слота
func FormatSlotEvent(kind string, slot *model.ScheduleSlot) string {
	title, ok := eventTitles[kind]
	if !ok {
		title = "Изменение расписания"
	}
	text := fmt.Sprintf("%s\n%s, %s", title, WeekdayName(slot.Weekday), FormatTimeRange(slot.StartTime, slot.EndTime))
	if slot.Room != nil {
		text += fmt.Sprintf(", каб. %s", *slot.Room)
	}
	return text
}
