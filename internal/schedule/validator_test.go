package schedule

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/google/uuid"
)

func TestValidateSlot(t *testing.T) {
	teacher := uuid.New()
	existing := &model.ScheduleSlot{
		ID:        uuid.New(),
		TeacherID: teacher,
		Weekday:   model.Monday,
		StartTime: "08:00",
		EndTime:   "09:30",
	}
	slots := []*model.ScheduleSlot{existing}

	t.Run("scenario A: overlapping candidate is rejected with the conflict", func(t *testing.T) {
		d := ValidateSlot(Candidate{teacher, model.Monday, "09:00", "10:00"}, nil, slots)
		if d.Verdict != Reject || d.Reason != ReasonConflict {
			t.Fatalf("got %s/%s, want reject/conflict", d.Verdict, d.Reason)
		}
		if len(d.Conflicts) != 1 || d.Conflicts[0] != existing {
			t.Fatalf("got conflicts %v, want [existing]", d.Conflicts)
		}
		err := d.Error()
		if !errors.Is(err, ErrConflict) {
			t.Errorf("Decision.Error() = %v, want ErrConflict", err)
		}
		var ce *ConflictError
		if !errors.As(err, &ce) || len(ce.Conflicts) != 1 {
			t.Errorf("Decision.Error() is not a ConflictError with one slot: %v", err)
		}
	})

	t.Run("scenario B: abutting candidate is accepted", func(t *testing.T) {
		d := ValidateSlot(Candidate{teacher, model.Monday, "09:30", "10:30"}, nil, slots)
		if !d.Accepted() {
			t.Fatalf("got %s/%s, want accept", d.Verdict, d.Reason)
		}
		if d.Error() != nil {
			t.Errorf("Decision.Error() = %v, want nil", d.Error())
		}
	})

	t.Run("scenario C: end before start is an invalid range", func(t *testing.T) {
		for _, snapshot := range [][]*model.ScheduleSlot{nil, slots} {
			d := ValidateSlot(Candidate{teacher, model.Monday, "10:00", "09:00"}, nil, snapshot)
			if d.Verdict != Reject || d.Reason != ReasonInvalidRange {
				t.Fatalf("got %s/%s, want reject/invalid_range", d.Verdict, d.Reason)
			}
			if !errors.Is(d.Error(), ErrInvalidRange) {
				t.Errorf("Decision.Error() = %v, want ErrInvalidRange", d.Error())
			}
			if d.IsMalformed() {
				t.Error("well-formed times reported as malformed")
			}
		}
	})

	t.Run("zero length slot is an invalid range", func(t *testing.T) {
		d := ValidateSlot(Candidate{teacher, model.Monday, "11:00", "11:00"}, nil, nil)
		if d.Reason != ReasonInvalidRange {
			t.Fatalf("got reason %q, want invalid_range", d.Reason)
		}
	})

	t.Run("malformed time is rejected before conflicts", func(t *testing.T) {
		d := ValidateSlot(Candidate{teacher, model.Monday, "25:00", "26:00"}, nil, slots)
		if d.Reason != ReasonInvalidRange || !d.IsMalformed() {
			t.Fatalf("got %s malformed=%v, want invalid_range with malformed time", d.Reason, d.IsMalformed())
		}
		if !errors.Is(d.Error(), ErrMalformedTime) {
			t.Errorf("Decision.Error() = %v, want ErrMalformedTime", d.Error())
		}
		if len(d.Conflicts) != 0 {
			t.Errorf("malformed candidate reported conflicts")
		}
	})

	t.Run("self exclusion on update", func(t *testing.T) {
		d := ValidateSlot(Candidate{teacher, model.Monday, "08:00", "09:30"}, &existing.ID, slots)
		if !d.Accepted() {
			t.Fatalf("updating a slot to its own value got %s/%s", d.Verdict, d.Reason)
		}
	})

	t.Run("same time on another weekday is accepted", func(t *testing.T) {
		d := ValidateSlot(Candidate{teacher, model.Tuesday, "08:00", "09:30"}, nil, slots)
		if !d.Accepted() {
			t.Fatalf("got %s/%s, want accept", d.Verdict, d.Reason)
		}
	})

	t.Run("deterministic for the same snapshot", func(t *testing.T) {
		c := Candidate{teacher, model.Monday, "07:00", "12:00"}
		first := ValidateSlot(c, nil, slots)
		for i := 0; i < 10; i++ {
			again := ValidateSlot(c, nil, slots)
			if again.Verdict != first.Verdict || len(again.Conflicts) != len(first.Conflicts) {
				t.Fatalf("run %d differs from the first run", i)
			}
		}
	})
}
