package repository

import (
	"errors"

	"github.com/Freeeeeet/timetable/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var (
	// ErrDuplicate нарушено ограничение уникальности
	ErrDuplicate = errors.New("duplicate record")
	// ErrMissingReference запись ссылается на несуществующего учителя или предмет
	ErrMissingReference = errors.New("referenced record does not exist")
	// ErrReferenced на запись ещё ссылаются другие записи
	ErrReferenced = errors.New("record is still referenced")
)

// CheckFunc вызывается внутри записи слота со снимком слотов учителя на этот день.
// Ненулевая ошибка отменяет запись и возвращается вызывающему как есть.
type CheckFunc func(existing []*model.ScheduleSlot) error

// Page ограничение выборки; нулевой Limit означает без ограничения
type Page struct {
	Limit  int
	Offset int
}

func (p Page) apply(q sq.SelectBuilder) sq.SelectBuilder {
	if p.Limit > 0 {
		q = q.Limit(uint64(p.Limit))
	}
	if p.Offset > 0 {
		q = q.Offset(uint64(p.Offset))
	}
	return q
}

// SlotFilter условия выборки слотов; nil-поле не фильтрует
type SlotFilter struct {
	TeacherID *uuid.UUID
	SubjectID *uuid.UUID
	Weekday   *model.Weekday
	Page
}

// Matches проверяет слот на соответствие фильтру (без учёта страницы)
func (f SlotFilter) Matches(slot *model.ScheduleSlot) bool {
	if f.TeacherID != nil && slot.TeacherID != *f.TeacherID {
		return false
	}
	if f.SubjectID != nil && slot.SubjectID != *f.SubjectID {
		return false
	}
	if f.Weekday != nil && slot.Weekday != *f.Weekday {
		return false
	}
	return true
}

// where переводит фильтр в условия squirrel
func (f SlotFilter) where(q sq.SelectBuilder) sq.SelectBuilder {
	if f.TeacherID != nil {
		q = q.Where(sq.Eq{"teacher_id": *f.TeacherID})
	}
	if f.SubjectID != nil {
		q = q.Where(sq.Eq{"subject_id": *f.SubjectID})
	}
	if f.Weekday != nil {
		q = q.Where(sq.Eq{"weekday": f.Weekday.Index()})
	}
	return f.Page.apply(q)
}

// TeacherFilter условия выборки учителей
type TeacherFilter struct {
	ActiveOnly bool
	Page
}

func (f TeacherFilter) where(q sq.SelectBuilder) sq.SelectBuilder {
	if f.ActiveOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}
	return f.Page.apply(q)
}
