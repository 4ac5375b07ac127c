package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/timetable/internal/cache"
	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository/memory"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	_ TeacherStore = (*memory.TeacherRepository)(nil)
	_ SubjectStore = (*memory.SubjectRepository)(nil)
	_ SlotStore    = (*memory.SlotRepository)(nil)
)

type recordedDecisions struct {
	mu        sync.Mutex
	decisions []schedule.Decision
}

func (r *recordedDecisions) RecordDecision(d schedule.Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, d)
}

func (r *recordedDecisions) reasons() []schedule.Reason {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]schedule.Reason, 0, len(r.decisions))
	for _, d := range r.decisions {
		out = append(out, d.Reason)
	}
	return out
}

type recordedEvents struct {
	mu     sync.Mutex
	events []SlotEvent
	err    error
}

func (n *recordedEvents) NotifySlot(_ context.Context, event SlotEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordedEvents) kinds() []SlotEventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SlotEventKind, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Kind)
	}
	return out
}

type env struct {
	db        *memory.DB
	schedule  *ScheduleService
	teachers  *TeacherService
	subjects  *SubjectService
	analytics *AnalyticsService
	recorder  *recordedDecisions
	notifier  *recordedEvents
	teacher   *model.Teacher
	subject   *model.Subject
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := zaptest.NewLogger(t)
	db := memory.Open()

	analytics := NewAnalyticsService(
		db.Slots(), db.Teachers(), db.Subjects(),
		cache.New[string, any](time.Minute, 64),
		logger,
	)
	recorder := &recordedDecisions{}
	notifier := &recordedEvents{}

	e := &env{
		db: db,
		schedule: NewScheduleService(db.Slots(), db.Teachers(), db.Subjects(), logger,
			WithDecisionRecorder(recorder),
			WithNotifier(notifier),
			WithCacheInvalidator(analytics),
		),
		teachers:  NewTeacherService(db.Teachers(), analytics, logger),
		subjects:  NewSubjectService(db.Subjects(), db.Slots(), analytics, logger),
		analytics: analytics,
		recorder:  recorder,
		notifier:  notifier,
	}

	ctx := context.Background()
	teacher, err := e.teachers.Create(ctx, TeacherInput{FullName: "Анна Петрова", Email: "anna@school.test"})
	require.NoError(t, err)
	subject, err := e.subjects.Create(ctx, SubjectInput{Code: "math", Name: "Математика"})
	require.NoError(t, err)
	e.teacher, e.subject = teacher, subject
	return e
}

func (e *env) slotInput(day model.Weekday, start, end string) CreateSlotInput {
	return CreateSlotInput{
		TeacherID: e.teacher.ID.String(),
		SubjectID: e.subject.ID.String(),
		Weekday:   string(day),
		StartTime: start,
		EndTime:   end,
	}
}

func (e *env) mustCreate(t *testing.T, day model.Weekday, start, end string) *model.ScheduleSlot {
	t.Helper()
	slot, err := e.schedule.CreateSlot(context.Background(), e.slotInput(day, start, end))
	require.NoError(t, err)
	return slot
}

func (e *env) otherTeacher(t *testing.T) *model.Teacher {
	t.Helper()
	teacher, err := e.teachers.Create(context.Background(), TeacherInput{
		FullName: "Борис Иванов",
		Email:    uuid.NewString() + "@school.test",
	})
	require.NoError(t, err)
	return teacher
}

func strPtr(s string) *string { return &s }
