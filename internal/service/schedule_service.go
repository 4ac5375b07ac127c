package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSlotInput тело запроса на создание слота
type CreateSlotInput struct {
	TeacherID string  `json:"teacherId"`
	SubjectID string  `json:"subjectId"`
	Weekday   string  `json:"weekday"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Room      *string `json:"room"`
}

// UpdateSlotInput частичное обновление слота; nil поле не меняется, пустой room убирает аудиторию
type UpdateSlotInput struct {
	TeacherID *string `json:"teacherId"`
	SubjectID *string `json:"subjectId"`
	Weekday   *string `json:"weekday"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Room      *string `json:"room"`
}

// SlotQuery параметры выборки слотов из строки запроса
type SlotQuery struct {
	TeacherID string
	SubjectID string
	Weekday   string
	Limit     string
	Offset    string
}

// ConflictQuery параметры пробной проверки пересечений
type ConflictQuery struct {
	TeacherID     string
	Weekday       string
	StartTime     string
	EndTime       string
	ExcludeSlotID string
}

// ConflictReport результат пробной проверки
type ConflictReport struct {
	HasConflicts bool                  `json:"hasConflicts"`
	Conflicts    []*model.ScheduleSlot `json:"conflicts"`
}

type ScheduleService struct {
	slots       SlotStore
	teachers    TeacherStore
	subjects    SubjectStore
	recorder    DecisionRecorder
	notifier    Notifier
	invalidator CacheInvalidator
	logger      *zap.Logger
}

// ScheduleOption подключает необязательных соавторов ScheduleService
type ScheduleOption func(*ScheduleService)

func WithDecisionRecorder(r DecisionRecorder) ScheduleOption {
	return func(s *ScheduleService) { s.recorder = r }
}

func WithNotifier(n Notifier) ScheduleOption {
	return func(s *ScheduleService) { s.notifier = n }
}

func WithCacheInvalidator(i CacheInvalidator) ScheduleOption {
	return func(s *ScheduleService) { s.invalidator = i }
}

func NewScheduleService(
	slots SlotStore,
	teachers TeacherStore,
	subjects SubjectStore,
	logger *zap.Logger,
	opts ...ScheduleOption,
) *ScheduleService {
	s := &ScheduleService{
		slots:       slots,
		teachers:    teachers,
		subjects:    subjects,
		recorder:    nopRecorder{},
		notifier:    nopNotifier{},
		invalidator: nopInvalidator{},
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// precheck проверяет формат и длительность до обращения к хранилищу
func (s *ScheduleService) precheck(candidate schedule.Candidate) error {
	d := schedule.ValidateSlot(candidate, nil, nil)
	if d.Accepted() {
		return nil
	}
	s.recorder.RecordDecision(d)
	return d.Error()
}

// check возвращает проверку, которую хранилище вызывает под блокировкой
func (s *ScheduleService) check(candidate schedule.Candidate, excludeSlotID *uuid.UUID) repository.CheckFunc {
	return func(existing []*model.ScheduleSlot) error {
		d := schedule.ValidateSlot(candidate, excludeSlotID, existing)
		s.recorder.RecordDecision(d)
		return d.Error()
	}
}

// resolveReferences проверяет что учитель и предмет существуют
func (s *ScheduleService) resolveReferences(ctx context.Context, teacherID, subjectID uuid.UUID) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher", teacherID)
	}

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if subject == nil {
		return nil, notFound("subject", subjectID)
	}
	return teacher, nil
}

func (s *ScheduleService) notify(ctx context.Context, kind SlotEventKind, slot *model.ScheduleSlot, teacher *model.Teacher) {
	if teacher == nil {
		return
	}
	if err := s.notifier.NotifySlot(ctx, SlotEvent{Kind: kind, Slot: slot, Teacher: teacher}); err != nil {
		s.logger.Warn("Failed to notify teacher",
			zap.String("teacher_id", teacher.ID.String()),
			zap.String("slot_id", slot.ID.String()),
			zap.String("event", string(kind)),
			zap.Error(err))
	}
}

// CreateSlot создаёт слот, если он не пересекается с уроками учителя в этот день
func (s *ScheduleService) CreateSlot(ctx context.Context, in CreateSlotInput) (*model.ScheduleSlot, error) {
	var errs fieldErrors
	teacherID, fe := parseUUIDField("teacherId", in.TeacherID)
	errs.add(fe)
	subjectID, fe := parseUUIDField("subjectId", in.SubjectID)
	errs.add(fe)
	weekday, fe := parseWeekdayField("weekday", in.Weekday)
	errs.add(fe)
	errs.add(requireField("startTime", in.StartTime))
	errs.add(requireField("endTime", in.EndTime))
	errs.add(roomField("room", in.Room))
	if err := errs.err(); err != nil {
		return nil, err
	}

	candidate := schedule.Candidate{TeacherID: teacherID, Weekday: weekday, StartTime: in.StartTime, EndTime: in.EndTime}
	if err := s.precheck(candidate); err != nil {
		s.logger.Info("Slot rejected",
			zap.String("teacher_id", teacherID.String()),
			zap.String("weekday", weekday.String()),
			zap.String("start_time", in.StartTime),
			zap.String("end_time", in.EndTime),
			zap.Error(err))
		return nil, err
	}

	teacher, err := s.resolveReferences(ctx, teacherID, subjectID)
	if err != nil {
		return nil, err
	}

	// после precheck время заведомо разбирается
	start, _ := schedule.NormalizeTime(in.StartTime)
	end, _ := schedule.NormalizeTime(in.EndTime)
	candidate.StartTime, candidate.EndTime = start, end

	slot := &model.ScheduleSlot{
		ID:        uuid.New(),
		TeacherID: teacherID,
		SubjectID: subjectID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		Room:      normalizeRoom(in.Room),
	}

	if err := s.slots.CreateChecked(ctx, slot, s.check(candidate, nil)); err != nil {
		if errors.Is(err, schedule.ErrConflict) {
			s.logger.Info("Slot conflicts with existing lessons",
				zap.String("teacher_id", teacherID.String()),
				zap.String("weekday", weekday.String()),
				zap.String("start_time", start),
				zap.String("end_time", end),
				zap.Error(err))
			return nil, err
		}
		s.logger.Error("Failed to create slot",
			zap.String("teacher_id", teacherID.String()),
			zap.Error(err))
		return nil, storeError("create slot", err)
	}

	s.logger.Info("Slot created",
		zap.String("slot_id", slot.ID.String()),
		zap.String("teacher_id", teacherID.String()),
		zap.String("weekday", weekday.String()),
		zap.String("start_time", start),
		zap.String("end_time", end))

	s.invalidator.InvalidateTeacher(teacherID)
	s.notify(ctx, SlotCreated, slot, teacher)
	return slot, nil
}

// UpdateSlot применяет частичное обновление; сам слот исключается из проверки пересечений
func (s *ScheduleService) UpdateSlot(ctx context.Context, id uuid.UUID, in UpdateSlotInput) (*model.ScheduleSlot, error) {
	current, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if current == nil {
		return nil, notFound("slot", id)
	}

	updated := *current
	var errs fieldErrors
	var fe *FieldError
	if in.TeacherID != nil {
		updated.TeacherID, fe = parseUUIDField("teacherId", *in.TeacherID)
		errs.add(fe)
	}
	if in.SubjectID != nil {
		updated.SubjectID, fe = parseUUIDField("subjectId", *in.SubjectID)
		errs.add(fe)
	}
	if in.Weekday != nil {
		updated.Weekday, fe = parseWeekdayField("weekday", *in.Weekday)
		errs.add(fe)
	}
	if in.StartTime != nil {
		errs.add(requireField("startTime", *in.StartTime))
		updated.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		errs.add(requireField("endTime", *in.EndTime))
		updated.EndTime = *in.EndTime
	}
	if in.Room != nil {
		errs.add(roomField("room", in.Room))
		updated.Room = normalizeRoom(in.Room)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	candidate := schedule.Candidate{
		TeacherID: updated.TeacherID,
		Weekday:   updated.Weekday,
		StartTime: updated.StartTime,
		EndTime:   updated.EndTime,
	}
	if err := s.precheck(candidate); err != nil {
		s.logger.Info("Slot update rejected",
			zap.String("slot_id", id.String()),
			zap.Error(err))
		return nil, err
	}

	teacher, err := s.resolveReferences(ctx, updated.TeacherID, updated.SubjectID)
	if err != nil {
		return nil, err
	}

	updated.StartTime, _ = schedule.NormalizeTime(updated.StartTime)
	updated.EndTime, _ = schedule.NormalizeTime(updated.EndTime)
	candidate.StartTime, candidate.EndTime = updated.StartTime, updated.EndTime

	ok, err := s.slots.UpdateChecked(ctx, &updated, s.check(candidate, &id))
	if err != nil {
		if errors.Is(err, schedule.ErrConflict) {
			s.logger.Info("Slot update conflicts with existing lessons",
				zap.String("slot_id", id.String()),
				zap.Error(err))
			return nil, err
		}
		s.logger.Error("Failed to update slot",
			zap.String("slot_id", id.String()),
			zap.Error(err))
		return nil, storeError("update slot", err)
	}
	if !ok {
		return nil, notFound("slot", id)
	}

	s.logger.Info("Slot updated",
		zap.String("slot_id", id.String()),
		zap.String("teacher_id", updated.TeacherID.String()),
		zap.String("weekday", updated.Weekday.String()),
		zap.String("start_time", updated.StartTime),
		zap.String("end_time", updated.EndTime))

	s.invalidator.InvalidateTeacher(current.TeacherID)
	if updated.TeacherID != current.TeacherID {
		s.invalidator.InvalidateTeacher(updated.TeacherID)
	}
	s.notify(ctx, SlotUpdated, &updated, teacher)
	return &updated, nil
}

// DeleteSlot удаляет слот
func (s *ScheduleService) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return notFound("slot", id)
	}

	ok, err := s.slots.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete slot",
			zap.String("slot_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("delete slot: %w", err)
	}
	if !ok {
		return notFound("slot", id)
	}

	s.logger.Info("Slot deleted",
		zap.String("slot_id", id.String()),
		zap.String("teacher_id", slot.TeacherID.String()))

	s.invalidator.InvalidateTeacher(slot.TeacherID)

	teacher, err := s.teachers.GetByID(ctx, slot.TeacherID)
	if err != nil {
		s.logger.Warn("Failed to load teacher for notification",
			zap.String("teacher_id", slot.TeacherID.String()),
			zap.Error(err))
		return nil
	}
	s.notify(ctx, SlotDeleted, slot, teacher)
	return nil
}

// GetSlot получает слот по ID
func (s *ScheduleService) GetSlot(ctx context.Context, id uuid.UUID) (*model.ScheduleSlot, error) {
	slot, err := s.slots.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, notFound("slot", id)
	}
	return slot, nil
}

// ListSlots получает слоты по фильтру в порядке дня недели и начала
func (s *ScheduleService) ListSlots(ctx context.Context, q SlotQuery) ([]*model.ScheduleSlot, error) {
	limit, offset, errs := parsePageFields(q.Limit, q.Offset)
	filter := repository.SlotFilter{Page: repository.Page{Limit: limit, Offset: offset}}

	if q.TeacherID != "" {
		id, fe := parseUUIDField("teacherId", q.TeacherID)
		errs.add(fe)
		filter.TeacherID = &id
	}
	if q.SubjectID != "" {
		id, fe := parseUUIDField("subjectId", q.SubjectID)
		errs.add(fe)
		filter.SubjectID = &id
	}
	if q.Weekday != "" {
		day, fe := parseWeekdayField("weekday", q.Weekday)
		errs.add(fe)
		filter.Weekday = &day
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	slots, err := s.slots.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}

// CheckConflicts проверяет предполагаемый слот без записи
func (s *ScheduleService) CheckConflicts(ctx context.Context, q ConflictQuery) (*ConflictReport, error) {
	var errs fieldErrors
	teacherID, fe := parseUUIDField("teacherId", q.TeacherID)
	errs.add(fe)
	weekday, fe := parseWeekdayField("weekday", q.Weekday)
	errs.add(fe)
	errs.add(requireField("startTime", q.StartTime))
	errs.add(requireField("endTime", q.EndTime))

	var exclude *uuid.UUID
	if q.ExcludeSlotID != "" {
		id, fe := parseUUIDField("excludeSlotId", q.ExcludeSlotID)
		errs.add(fe)
		exclude = &id
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	candidate := schedule.Candidate{TeacherID: teacherID, Weekday: weekday, StartTime: q.StartTime, EndTime: q.EndTime}
	if err := s.precheck(candidate); err != nil {
		return nil, err
	}

	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher", teacherID)
	}

	existing, err := s.slots.ListByTeacherDay(ctx, teacherID, weekday)
	if err != nil {
		return nil, fmt.Errorf("list teacher day slots: %w", err)
	}

	d := schedule.ValidateSlot(candidate, exclude, existing)
	s.recorder.RecordDecision(d)

	report := &ConflictReport{Conflicts: []*model.ScheduleSlot{}}
	if d.Reason == schedule.ReasonConflict {
		report.HasConflicts = true
		report.Conflicts = d.Conflicts
	}
	return report, nil
}

// TeacherTimetable собирает недельное расписание учителя по дням
func (s *ScheduleService) TeacherTimetable(ctx context.Context, teacherID uuid.UUID) (*model.Timetable, error) {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher", teacherID)
	}
	return s.timetable(ctx, teacher)
}

// TimetableByTelegramID расписание учителя, привязанного к Telegram
func (s *ScheduleService) TimetableByTelegramID(ctx context.Context, telegramID int64) (*model.Timetable, error) {
	teacher, err := s.teachers.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get teacher by telegram id: %w", err)
	}
	if teacher == nil {
		return nil, fmt.Errorf("teacher with telegram id %d: %w", telegramID, ErrNotFound)
	}
	return s.timetable(ctx, teacher)
}

func (s *ScheduleService) timetable(ctx context.Context, teacher *model.Teacher) (*model.Timetable, error) {
	slots, err := s.slots.List(ctx, repository.SlotFilter{TeacherID: &teacher.ID})
	if err != nil {
		return nil, fmt.Errorf("list teacher slots: %w", err)
	}

	subjects, err := s.subjects.List(ctx, repository.Page{})
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Subject, len(subjects))
	for _, subject := range subjects {
		byID[subject.ID] = subject
	}

	days := make([]model.TimetableDay, len(model.Weekdays))
	for i, day := range model.Weekdays {
		days[i] = model.TimetableDay{Weekday: day, Lessons: []model.Lesson{}}
	}
	for _, slot := range slots {
		idx := slot.Weekday.Index()
		if idx < 0 {
			continue
		}
		lesson := model.Lesson{ScheduleSlot: *slot}
		if subject, ok := byID[slot.SubjectID]; ok {
			lesson.SubjectCode = subject.Code
			lesson.SubjectName = subject.Name
		}
		days[idx].Lessons = append(days[idx].Lessons, lesson)
	}

	return &model.Timetable{Teacher: teacher, Days: days}, nil
}

func normalizeRoom(room *string) *string {
	if room == nil || *room == "" {
		return nil
	}
	r := *room
	return &r
}
