package model

import (
	"fmt"
	"strings"
)

// Weekday день недели учебного расписания (воскресенья нет)
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
)

// Weekdays учебные дни в порядке недели
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// ParseWeekday разбирает название дня без учёта регистра
func ParseWeekday(s string) (Weekday, error) {
	day := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if !day.Valid() {
		return "", fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

// Valid проверяет что значение входит в перечисление
func (d Weekday) Valid() bool {
	return d.Index() >= 0
}

// Index возвращает порядковый номер дня (понедельник = 0), -1 для неизвестного
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}

func (d Weekday) String() string {
	return string(d)
}
