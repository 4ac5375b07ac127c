package model

// Lesson слот расписания вместе с названием предмета
type Lesson struct {
	ScheduleSlot
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`
}

// TimetableDay уроки одного дня в порядке начала
type TimetableDay struct {
	Weekday Weekday  `json:"weekday"`
	Lessons []Lesson `json:"lessons"`
}

// Timetable недельное расписание учителя, все учебные дни по порядку
type Timetable struct {
	Teacher *Teacher       `json:"teacher"`
	Days    []TimetableDay `json:"days"`
}

// LessonCount общее количество уроков за неделю
func (t *Timetable) LessonCount() int {
	n := 0
	for _, day := range t.Days {
		n += len(day.Lessons)
	}
	return n
}

// Day уроки указанного дня; пустой день если его нет в расписании
func (t *Timetable) Day(weekday Weekday) TimetableDay {
	for _, day := range t.Days {
		if day.Weekday == weekday {
			return day
		}
	}
	return TimetableDay{Weekday: weekday}
}
