package schedule

import (
	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/google/uuid"
)

// Interval полуоткрытый интервал [Start, End) в минутах от полуночи
type Interval struct {
	Start int
	End   int
}

// Minutes длительность интервала
func (i Interval) Minutes() int {
	return i.End - i.Start
}

// Overlaps true если интервалы пересекаются. Касание концами пересечением не считается.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// Candidate предлагаемый слот учителя
type Candidate struct {
	TeacherID uuid.UUID
	Weekday   model.Weekday
	StartTime string
	EndTime   string
}

// SlotInterval разбирает время слота в интервал
func SlotInterval(slot *model.ScheduleSlot) (Interval, error) {
	start, err := ParseTime(slot.StartTime)
	if err != nil {
		return Interval{}, err
	}
	end, err := ParseTime(slot.EndTime)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// FindConflicts возвращает слоты того же учителя и дня, пересекающиеся с кандидатом,
// в исходном порядке. excludeSlotID исключает сам обновляемый слот.
// Кандидат с некорректным временем конфликтов не имеет: формат проверяет ValidateSlot.
func FindConflicts(candidate Candidate, excludeSlotID *uuid.UUID, existing []*model.ScheduleSlot) []*model.ScheduleSlot {
	start, err := ParseTime(candidate.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseTime(candidate.EndTime)
	if err != nil {
		return nil
	}
	want := Interval{Start: start, End: end}

	var conflicts []*model.ScheduleSlot
	for _, slot := range existing {
		if slot == nil || slot.TeacherID != candidate.TeacherID || slot.Weekday != candidate.Weekday {
			continue
		}
		if excludeSlotID != nil && slot.ID == *excludeSlotID {
			continue
		}
		// в хранилище лежат только нормализованные слоты, битые пропускаем
		have, err := SlotInterval(slot)
		if err != nil {
			continue
		}
		if Overlaps(want, have) {
			conflicts = append(conflicts, slot)
		}
	}
	return conflicts
}
