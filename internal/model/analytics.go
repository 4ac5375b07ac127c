package model

import "github.com/google/uuid"

// WeekdayLoad нагрузка учителя в один день
type WeekdayLoad struct {
	Weekday Weekday `json:"weekday"`
	Slots   int     `json:"slots"`
	Minutes int     `json:"minutes"`
}

// SubjectShare доля предмета в нагрузке учителя, Percentage в процентах с точностью до сотых
type SubjectShare struct {
	SubjectID  uuid.UUID `json:"subjectId"`
	Minutes    int       `json:"minutes"`
	Percentage float64   `json:"percentage"`
}

// TeacherWorkload недельная нагрузка учителя
type TeacherWorkload struct {
	TeacherID    uuid.UUID      `json:"teacherId"`
	SlotCount    int            `json:"slotCount"`
	TotalMinutes int            `json:"totalMinutes"`
	ByWeekday    []WeekdayLoad  `json:"byWeekday"`
	BySubject    []SubjectShare `json:"bySubject"`
}

// WeekdayShare доля слотов школы, приходящаяся на день
type WeekdayShare struct {
	Weekday    Weekday `json:"weekday"`
	Slots      int     `json:"slots"`
	Percentage float64 `json:"percentage"`
}

// Overview сводка по всей школе
type Overview struct {
	Teachers     int            `json:"teachers"`
	Subjects     int            `json:"subjects"`
	Slots        int            `json:"slots"`
	TotalMinutes int            `json:"totalMinutes"`
	ByWeekday    []WeekdayShare `json:"byWeekday"`
}
