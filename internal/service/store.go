package service

import (
	"context"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/google/uuid"
)

// TeacherStore хранилище учителей. GetBy* возвращают (nil, nil) если записи нет.
type TeacherStore interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error)
	List(ctx context.Context, filter repository.TeacherFilter) ([]*model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SubjectStore хранилище предметов
type SubjectStore interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error)
	List(ctx context.Context, page repository.Page) ([]*model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}

// SlotStore хранилище слотов. CreateChecked и UpdateChecked сериализуют
// запись для пары учитель+день и вызывают check со снимком её слотов.
type SlotStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleSlot, error)
	List(ctx context.Context, filter repository.SlotFilter) ([]*model.ScheduleSlot, error)
	ListByTeacherDay(ctx context.Context, teacherID uuid.UUID, weekday model.Weekday) ([]*model.ScheduleSlot, error)
	CreateChecked(ctx context.Context, slot *model.ScheduleSlot, check repository.CheckFunc) error
	UpdateChecked(ctx context.Context, slot *model.ScheduleSlot, check repository.CheckFunc) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountBySubject(ctx context.Context, subjectID uuid.UUID) (int, error)
}

var (
	_ TeacherStore = (*repository.TeacherRepository)(nil)
	_ SubjectStore = (*repository.SubjectRepository)(nil)
	_ SlotStore    = (*repository.SlotRepository)(nil)
)

// DecisionRecorder учитывает решения валидатора (метрики)
type DecisionRecorder interface {
	RecordDecision(d schedule.Decision)
}

// CacheInvalidator сбрасывает кешированную аналитику после записи
type CacheInvalidator interface {
	InvalidateTeacher(teacherID uuid.UUID)
	InvalidateOverview()
}

type nopRecorder struct{}

func (nopRecorder) RecordDecision(schedule.Decision) {}

type nopInvalidator struct{}

func (nopInvalidator) InvalidateTeacher(uuid.UUID) {}
func (nopInvalidator) InvalidateOverview()         {}
