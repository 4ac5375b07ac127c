package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db      *DB
	teacher *model.Teacher
	subject *model.Subject
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := Open()

	teacher := &model.Teacher{ID: uuid.New(), FullName: "Анна Петрова", Email: "anna@school.test", IsActive: true}
	require.NoError(t, db.Teachers().Create(ctx, teacher))

	subject := &model.Subject{ID: uuid.New(), Code: "MATH", Name: "Математика"}
	require.NoError(t, db.Subjects().Create(ctx, subject))

	return &fixture{db: db, teacher: teacher, subject: subject}
}

func (f *fixture) slot(day model.Weekday, start, end string) *model.ScheduleSlot {
	return &model.ScheduleSlot{
		ID:        uuid.New(),
		TeacherID: f.teacher.ID,
		SubjectID: f.subject.ID,
		Weekday:   day,
		StartTime: start,
		EndTime:   end,
	}
}

func accept(existing []*model.ScheduleSlot) error { return nil }

// validating отклоняет запись при пересечении, как это делает сервис
func validating(slot *model.ScheduleSlot, exclude *uuid.UUID) repository.CheckFunc {
	return func(existing []*model.ScheduleSlot) error {
		candidate := schedule.Candidate{
			TeacherID: slot.TeacherID,
			Weekday:   slot.Weekday,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
		return schedule.ValidateSlot(candidate, exclude, existing).Error()
	}
}

func TestSlotCreateCheckedPassesTeacherDaySnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slots := f.db.Slots()

	monday := f.slot(model.Monday, "08:00", "09:00")
	require.NoError(t, slots.CreateChecked(ctx, monday, accept))
	require.NoError(t, slots.CreateChecked(ctx, f.slot(model.Tuesday, "08:00", "09:00"), accept))

	var seen []*model.ScheduleSlot
	err := slots.CreateChecked(ctx, f.slot(model.Monday, "10:00", "11:00"), func(existing []*model.ScheduleSlot) error {
		seen = existing
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, monday.ID, seen[0].ID)
	assert.False(t, monday.CreatedAt.IsZero())
}

func TestSlotCreateCheckedVetoAbortsWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	veto := errors.New("veto")

	slot := f.slot(model.Monday, "08:00", "09:00")
	err := f.db.Slots().CreateChecked(ctx, slot, func([]*model.ScheduleSlot) error { return veto })
	assert.ErrorIs(t, err, veto)

	got, err := f.db.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSlotCreateCheckedMissingReference(t *testing.T) {
	f := newFixture(t)
	slot := f.slot(model.Monday, "08:00", "09:00")
	slot.SubjectID = uuid.New()

	err := f.db.Slots().CreateChecked(context.Background(), slot, accept)
	assert.ErrorIs(t, err, repository.ErrMissingReference)
}

func TestSlotConcurrentOverlappingCreatesAdmitOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const writers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			slot := f.slot(model.Wednesday, "10:00", "11:00")
			err := f.db.Slots().CreateChecked(ctx, slot, validating(slot, nil))
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, schedule.ErrConflict)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	day := model.Wednesday
	stored, err := f.db.Slots().List(ctx, repository.SlotFilter{Weekday: &day})
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestSlotUpdateCheckedMovesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slots := f.db.Slots()

	slot := f.slot(model.Monday, "08:00", "09:00")
	require.NoError(t, slots.CreateChecked(ctx, slot, accept))
	createdAt := slot.CreatedAt

	moved := *slot
	moved.Weekday = model.Friday
	moved.StartTime = "12:00"
	moved.EndTime = "13:30"
	ok, err := slots.UpdateChecked(ctx, &moved, validating(&moved, &moved.ID))
	require.NoError(t, err)
	require.True(t, ok)

	got, err := slots.GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Friday, got.Weekday)
	assert.Equal(t, "12:00", got.StartTime)
	assert.Equal(t, createdAt, got.CreatedAt)

	missing := f.slot(model.Monday, "08:00", "09:00")
	ok, err = slots.UpdateChecked(ctx, missing, accept)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlotListOrderAndPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slots := f.db.Slots()

	for _, s := range []*model.ScheduleSlot{
		f.slot(model.Friday, "08:00", "09:00"),
		f.slot(model.Monday, "11:00", "12:00"),
		f.slot(model.Monday, "08:00", "09:00"),
	} {
		require.NoError(t, slots.CreateChecked(ctx, s, accept))
	}

	all, err := slots.List(ctx, repository.SlotFilter{TeacherID: &f.teacher.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"MONDAY 08:00", "MONDAY 11:00", "FRIDAY 08:00"}, []string{
		all[0].Weekday.String() + " " + all[0].StartTime,
		all[1].Weekday.String() + " " + all[1].StartTime,
		all[2].Weekday.String() + " " + all[2].StartTime,
	})

	page, err := slots.List(ctx, repository.SlotFilter{Page: repository.Page{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, all[1].ID, page[0].ID)

	empty, err := slots.List(ctx, repository.SlotFilter{Page: repository.Page{Offset: 10}})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTeacherDeleteCascadesSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	slot := f.slot(model.Monday, "08:00", "09:00")
	require.NoError(t, f.db.Slots().CreateChecked(ctx, slot, accept))

	ok, err := f.db.Teachers().Delete(ctx, f.teacher.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := f.db.Slots().GetByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSubjectDeleteWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	slot := f.slot(model.Monday, "08:00", "09:00")
	require.NoError(t, f.db.Slots().CreateChecked(ctx, slot, accept))

	_, err := f.db.Subjects().Delete(ctx, f.subject.ID)
	assert.ErrorIs(t, err, repository.ErrReferenced)

	_, err = f.db.Slots().Delete(ctx, slot.ID)
	require.NoError(t, err)
	ok, err := f.db.Subjects().Delete(ctx, f.subject.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTeacherUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tg := int64(42)

	dup := &model.Teacher{ID: uuid.New(), FullName: "Другой", Email: f.teacher.Email}
	assert.ErrorIs(t, f.db.Teachers().Create(ctx, dup), repository.ErrDuplicate)

	other := &model.Teacher{ID: uuid.New(), FullName: "Борис", Email: "boris@school.test", TelegramID: &tg}
	require.NoError(t, f.db.Teachers().Create(ctx, other))

	f.teacher.TelegramID = &tg
	_, err := f.db.Teachers().Update(ctx, f.teacher)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := f.db.Teachers().GetByTelegramID(ctx, tg)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, other.ID, found.ID)
}

func TestSubjectCodeUnique(t *testing.T) {
	f := newFixture(t)
	dup := &model.Subject{ID: uuid.New(), Code: f.subject.Code, Name: "Алгебра"}
	assert.ErrorIs(t, f.db.Subjects().Create(context.Background(), dup), repository.ErrDuplicate)
}
