package memory

import (
	"context"
	"sort"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/google/uuid"
)

type SubjectRepository struct {
	db *DB
}

func (r *SubjectRepository) codeTaken(subject *model.Subject) bool {
	for id, other := range r.db.subjects {
		if id != subject.ID && other.Code == subject.Code {
			return true
		}
	}
	return false
}

func (r *SubjectRepository) Create(_ context.Context, subject *model.Subject) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.subjects[subject.ID]; ok || r.codeTaken(subject) {
		return repository.ErrDuplicate
	}

	now := r.db.timestamp()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	stored := *subject
	r.db.subjects[subject.ID] = &stored
	return nil
}

func (r *SubjectRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Subject, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	if s, ok := r.db.subjects[id]; ok {
		c := *s
		return &c, nil
	}
	return nil, nil
}

func (r *SubjectRepository) List(_ context.Context, page repository.Page) ([]*model.Subject, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	subjects := make([]*model.Subject, 0, len(r.db.subjects))
	for _, s := range r.db.subjects {
		c := *s
		subjects = append(subjects, &c)
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Name != subjects[j].Name {
			return subjects[i].Name < subjects[j].Name
		}
		return subjects[i].ID.String() < subjects[j].ID.String()
	})
	return paginate(subjects, page.Limit, page.Offset), nil
}

func (r *SubjectRepository) Update(_ context.Context, subject *model.Subject) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.subjects[subject.ID]
	if !ok {
		return false, nil
	}
	if r.codeTaken(subject) {
		return false, repository.ErrDuplicate
	}

	subject.CreatedAt = current.CreatedAt
	subject.UpdatedAt = r.db.timestamp()
	stored := *subject
	r.db.subjects[subject.ID] = &stored
	return true, nil
}

// Delete удаляет предмет; пока на него ссылаются слоты, возвращает ErrReferenced
func (r *SubjectRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.subjects[id]; !ok {
		return false, nil
	}
	for _, slot := range r.db.slots {
		if slot.SubjectID == id {
			return false, repository.ErrReferenced
		}
	}
	delete(r.db.subjects, id)
	return true, nil
}

func (r *SubjectRepository) Count(_ context.Context) (int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.subjects), nil
}
