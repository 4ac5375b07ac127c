package memory

import (
	"context"
	"sort"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/google/uuid"
)

type TeacherRepository struct {
	db *DB
}

func copyTeacher(t *model.Teacher) *model.Teacher {
	c := *t
	if t.TelegramID != nil {
		id := *t.TelegramID
		c.TelegramID = &id
	}
	return &c
}

// uniqueTeacher проверяет email и telegram_id среди остальных учителей
func (r *TeacherRepository) uniqueTeacher(teacher *model.Teacher) error {
	for id, other := range r.db.teachers {
		if id == teacher.ID {
			continue
		}
		if other.Email == teacher.Email {
			return repository.ErrDuplicate
		}
		if teacher.TelegramID != nil && other.TelegramID != nil && *other.TelegramID == *teacher.TelegramID {
			return repository.ErrDuplicate
		}
	}
	return nil
}

func (r *TeacherRepository) Create(_ context.Context, teacher *model.Teacher) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.teachers[teacher.ID]; ok {
		return repository.ErrDuplicate
	}
	if err := r.uniqueTeacher(teacher); err != nil {
		return err
	}

	now := r.db.timestamp()
	teacher.CreatedAt = now
	teacher.UpdatedAt = now
	r.db.teachers[teacher.ID] = copyTeacher(teacher)
	return nil
}

func (r *TeacherRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if t, ok := r.db.teachers[id]; ok {
		return copyTeacher(t), nil
	}
	return nil, nil
}

func (r *TeacherRepository) GetByTelegramID(_ context.Context, telegramID int64) (*model.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, t := range r.db.teachers {
		if t.TelegramID != nil && *t.TelegramID == telegramID {
			return copyTeacher(t), nil
		}
	}
	return nil, nil
}

func (r *TeacherRepository) List(_ context.Context, filter repository.TeacherFilter) ([]*model.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	teachers := make([]*model.Teacher, 0, len(r.db.teachers))
	for _, t := range r.db.teachers {
		if filter.ActiveOnly && !t.IsActive {
			continue
		}
		teachers = append(teachers, copyTeacher(t))
	}
	sort.Slice(teachers, func(i, j int) bool {
		if teachers[i].FullName != teachers[j].FullName {
			return teachers[i].FullName < teachers[j].FullName
		}
		return teachers[i].ID.String() < teachers[j].ID.String()
	})
	return paginate(teachers, filter.Limit, filter.Offset), nil
}

func (r *TeacherRepository) Update(_ context.Context, teacher *model.Teacher) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.teachers[teacher.ID]
	if !ok {
		return false, nil
	}
	if err := r.uniqueTeacher(teacher); err != nil {
		return false, err
	}

	teacher.CreatedAt = current.CreatedAt
	teacher.UpdatedAt = r.db.timestamp()
	r.db.teachers[teacher.ID] = copyTeacher(teacher)
	return true, nil
}

// Delete удаляет учителя и все его слоты
func (r *TeacherRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.teachers[id]; !ok {
		return false, nil
	}
	delete(r.db.teachers, id)
	for slotID, slot := range r.db.slots {
		if slot.TeacherID == id {
			delete(r.db.slots, slotID)
		}
	}
	return true, nil
}

func (r *TeacherRepository) Count(_ context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.teachers), nil
}
