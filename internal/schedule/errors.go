// Package schedule проверяет еженедельные уроки учителя на пересечения.
//
// Пакет не делает I/O: вызывающий код передаёт снимок существующих слотов,
// а запись в хранилище сериализует сам.
package schedule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/timetable/internal/model"
)

var (
	// ErrMalformedTime время не в формате HH:mm
	ErrMalformedTime = errors.New("malformed time")
	// ErrInvalidRange конец интервала не позже начала
	ErrInvalidRange = errors.New("end time must be after start time")
	// ErrConflict слот пересекается с существующим слотом учителя
	ErrConflict = errors.New("schedule conflict")
)

// ConflictError содержит слоты, с которыми пересекается кандидат
type ConflictError struct {
	Conflicts []*model.ScheduleSlot
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, slot := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s %s-%s", slot.Weekday, slot.StartTime, slot.EndTime))
	}
	return fmt.Sprintf("%s: overlaps %s", ErrConflict, strings.Join(parts, ", "))
}

// Is позволяет errors.Is(err, ErrConflict)
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
