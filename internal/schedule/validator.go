package schedule

import (
	"errors"
	"fmt"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/google/uuid"
)

// Verdict итог проверки слота
type Verdict string

const (
	Accept Verdict = "accept"
	Reject Verdict = "reject"
)

// Reason причина отказа
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonInvalidRange Reason = "invalid_range"
	ReasonConflict     Reason = "conflict"
)

// Decision результат ValidateSlot
type Decision struct {
	Verdict   Verdict
	Reason    Reason
	Conflicts []*model.ScheduleSlot
	// Err причина отказа по формату: ErrMalformedTime или ErrInvalidRange
	Err error
}

// Accepted true если слот можно записывать
func (d Decision) Accepted() bool {
	return d.Verdict == Accept
}

// Error переводит отказ в ошибку, для Accept возвращает nil
func (d Decision) Error() error {
	switch d.Reason {
	case ReasonInvalidRange:
		if d.Err != nil {
			return d.Err
		}
		return ErrInvalidRange
	case ReasonConflict:
		return &ConflictError{Conflicts: d.Conflicts}
	default:
		return nil
	}
}

// ValidateSlot проверяет формат и длительность кандидата, затем пересечения.
// Чистая функция: один и тот же снимок даёт один и тот же ответ.
func ValidateSlot(candidate Candidate, excludeSlotID *uuid.UUID, existing []*model.ScheduleSlot) Decision {
	ok, err := IsValidRange(candidate.StartTime, candidate.EndTime)
	if err != nil {
		return Decision{Verdict: Reject, Reason: ReasonInvalidRange, Err: err}
	}
	if !ok {
		return Decision{
			Verdict: Reject,
			Reason:  ReasonInvalidRange,
			Err:     fmt.Errorf("%w: %s-%s", ErrInvalidRange, candidate.StartTime, candidate.EndTime),
		}
	}

	conflicts := FindConflicts(candidate, excludeSlotID, existing)
	if len(conflicts) > 0 {
		return Decision{Verdict: Reject, Reason: ReasonConflict, Conflicts: conflicts}
	}
	return Decision{Verdict: Accept}
}

// IsMalformed true если отказ вызван неверным форматом времени
func (d Decision) IsMalformed() bool {
	return errors.Is(d.Err, ErrMalformedTime)
}
