package memory

import (
	"context"
	"sort"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/google/uuid"
)

type SlotRepository struct {
	db *DB
}

func copySlot(s *model.ScheduleSlot) *model.ScheduleSlot {
	c := *s
	if s.Room != nil {
		room := *s.Room
		c.Room = &room
	}
	return &c
}

// sortSlots порядок как в Postgres: день недели, начало, id
func sortSlots(slots []*model.ScheduleSlot) {
	sort.Slice(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Weekday != b.Weekday {
			return a.Weekday.Index() < b.Weekday.Index()
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID.String() < b.ID.String()
	})
}

func (r *SlotRepository) selectSlots(filter repository.SlotFilter) []*model.ScheduleSlot {
	slots := make([]*model.ScheduleSlot, 0)
	for _, s := range r.db.slots {
		if filter.Matches(s) {
			slots = append(slots, copySlot(s))
		}
	}
	sortSlots(slots)
	return slots
}

// checkReferences проверяет что учитель и предмет слота существуют
func (r *SlotRepository) checkReferences(slot *model.ScheduleSlot) error {
	if _, ok := r.db.teachers[slot.TeacherID]; !ok {
		return repository.ErrMissingReference
	}
	if _, ok := r.db.subjects[slot.SubjectID]; !ok {
		return repository.ErrMissingReference
	}
	return nil
}

func (r *SlotRepository) GetByID(_ context.Context, id uuid.UUID) (*model.ScheduleSlot, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if s, ok := r.db.slots[id]; ok {
		return copySlot(s), nil
	}
	return nil, nil
}

func (r *SlotRepository) List(_ context.Context, filter repository.SlotFilter) ([]*model.ScheduleSlot, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return paginate(r.selectSlots(filter), filter.Limit, filter.Offset), nil
}

func (r *SlotRepository) ListByTeacherDay(_ context.Context, teacherID uuid.UUID, weekday model.Weekday) ([]*model.ScheduleSlot, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.selectSlots(repository.SlotFilter{TeacherID: &teacherID, Weekday: &weekday}), nil
}

// CreateChecked проверяет и вставляет слот под общей блокировкой
func (r *SlotRepository) CreateChecked(_ context.Context, slot *model.ScheduleSlot, check repository.CheckFunc) error {
	if _, err := schedule.SlotInterval(slot); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.slots[slot.ID]; ok {
		return repository.ErrDuplicate
	}
	if err := r.checkReferences(slot); err != nil {
		return err
	}
	existing := r.selectSlots(repository.SlotFilter{TeacherID: &slot.TeacherID, Weekday: &slot.Weekday})
	if err := check(existing); err != nil {
		return err
	}

	now := r.db.timestamp()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	r.db.slots[slot.ID] = copySlot(slot)
	return nil
}

// UpdateChecked проверяет и перезаписывает слот под общей блокировкой
func (r *SlotRepository) UpdateChecked(_ context.Context, slot *model.ScheduleSlot, check repository.CheckFunc) (bool, error) {
	if _, err := schedule.SlotInterval(slot); err != nil {
		return false, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.slots[slot.ID]
	if !ok {
		return false, nil
	}
	if err := r.checkReferences(slot); err != nil {
		return false, err
	}
	existing := r.selectSlots(repository.SlotFilter{TeacherID: &slot.TeacherID, Weekday: &slot.Weekday})
	if err := check(existing); err != nil {
		return false, err
	}

	slot.CreatedAt = current.CreatedAt
	slot.UpdatedAt = r.db.timestamp()
	r.db.slots[slot.ID] = copySlot(slot)
	return true, nil
}

func (r *SlotRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.slots[id]; !ok {
		return false, nil
	}
	delete(r.db.slots, id)
	return true, nil
}

func (r *SlotRepository) CountBySubject(_ context.Context, subjectID uuid.UUID) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	count := 0
	for _, s := range r.db.slots {
		if s.SubjectID == subjectID {
			count++
		}
	}
	return count, nil
}
