package formatting

import (
	"testing"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPluralizeLessons(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{1, "урок"},
		{2, "урока"},
		{5, "уроков"},
		{11, "уроков"},
		{21, "урок"},
		{24, "урока"},
		{112, "уроков"},
	}
	for _, tt := range tests {
		if got := PluralizeLessons(tt.count); got != tt.want {
			t.Errorf("PluralizeLessons(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 мин", FormatDuration(45))
	assert.Equal(t, "2 ч", FormatDuration(120))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestFormatTimetable(t *testing.T) {
	room := "204"
	tt := &model.Timetable{
		Teacher: &model.Teacher{FullName: "Анна Петрова"},
		Days: []model.TimetableDay{
			{Weekday: model.Monday, Lessons: []model.Lesson{
				{ScheduleSlot: model.ScheduleSlot{Weekday: model.Monday, StartTime: "08:00", EndTime: "08:45", Room: &room}, SubjectName: "Математика"},
				{ScheduleSlot: model.ScheduleSlot{Weekday: model.Monday, StartTime: "09:00", EndTime: "09:45"}, SubjectName: "Физика"},
			}},
			{Weekday: model.Tuesday},
		},
	}

	want := "🗓 Расписание: Анна Петрова\n" +
		"2 урока, 1 ч 30 мин в неделю\n" +
		"\nПонедельник:\n" +
		"  • 08:00-08:45 Математика (каб. 204)\n" +
		"  • 09:00-09:45 Физика"
	assert.Equal(t, want, FormatTimetable(tt))

	empty := &model.Timetable{Teacher: tt.Teacher, Days: []model.TimetableDay{{Weekday: model.Monday}}}
	assert.Contains(t, FormatTimetable(empty), "Уроков на неделе нет.")
}

func TestFormatSlotEvent(t *testing.T) {
	slot := &model.ScheduleSlot{Weekday: model.Friday, StartTime: "10:00", EndTime: "11:00"}
	assert.Equal(t, "➕ Новый урок в расписании\nПятница, 10:00-11:00", FormatSlotEvent("created", slot))
	assert.Contains(t, FormatSlotEvent("unknown", slot), "Изменение расписания")
}

func TestFormatDay(t *testing.T) {
	day := model.TimetableDay{Weekday: model.Wednesday, Lessons: []model.Lesson{
		{ScheduleSlot: model.ScheduleSlot{Weekday: model.Wednesday, StartTime: "12:00", EndTime: "12:45"}, SubjectName: "История"},
	}}
	assert.Equal(t, "Среда:\n  • 12:00-12:45 История", FormatDay(day))
	assert.Equal(t, "Суббота: уроков нет.", FormatDay(model.TimetableDay{Weekday: model.Saturday}))
}
