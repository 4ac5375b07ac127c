package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Freeeeeet/timetable/internal/cache"
	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const overviewKey = "overview"

func workloadKey(teacherID uuid.UUID) string {
	return "workload:" + teacherID.String()
}

// AnalyticsService считает нагрузку по расписанию. Результаты кешируются
// до записи в расписание или истечения TTL кеша.
type AnalyticsService struct {
	slots    SlotStore
	teachers TeacherStore
	subjects SubjectStore
	cache    *cache.Cache[string, any]
	group    singleflight.Group
	logger   *zap.Logger

	// mu связывает сброс ключа с записью в кеш: результат, посчитанный
	// до сброса, в кеш уже не попадает
	mu          sync.Mutex
	generations map[string]uint64
}

func NewAnalyticsService(
	slots SlotStore,
	teachers TeacherStore,
	subjects SubjectStore,
	c *cache.Cache[string, any],
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		slots:       slots,
		teachers:    teachers,
		subjects:    subjects,
		cache:       c,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

// InvalidateTeacher сбрасывает нагрузку учителя и общую сводку
func (s *AnalyticsService) InvalidateTeacher(teacherID uuid.UUID) {
	s.invalidate(workloadKey(teacherID), overviewKey)
}

// InvalidateOverview сбрасывает общую сводку
func (s *AnalyticsService) InvalidateOverview() {
	s.invalidate(overviewKey)
}

func (s *AnalyticsService) invalidate(keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		s.generations[key]++
	}
	s.cache.Delete(keys...)
	s.mu.Unlock()

	// новые запросы не должны присоединяться к расчёту, начатому до сброса
	for _, key := range keys {
		s.group.Forget(key)
	}
}

func (s *AnalyticsService) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[key]
}

// store кладёт значение в кеш, если ключ не сбрасывали после начала расчёта
func (s *AnalyticsService) store(key string, gen uint64, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[key] != gen {
		return false
	}
	s.cache.Set(key, v)
	return true
}

// SweepCache удаляет просроченные записи кеша
func (s *AnalyticsService) SweepCache() int {
	return s.cache.Sweep()
}

// cached возвращает значение из кеша или считает его один раз на все конкурентные запросы
func (s *AnalyticsService) cached(key string, compute func() (any, error)) (any, error) {
	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if v, ok := s.cache.Get(key); ok {
			return v, nil
		}
		gen := s.generation(key)
		v, err := compute()
		if err != nil {
			return nil, err
		}
		if !s.store(key, gen, v) {
			s.logger.Debug("Analytics result dropped, key invalidated during computation",
				zap.String("key", key))
		}
		return v, nil
	})
	return v, err
}

// TeacherWorkload нагрузка учителя по дням и предметам
func (s *AnalyticsService) TeacherWorkload(ctx context.Context, teacherID uuid.UUID) (*model.TeacherWorkload, error) {
	teacher, err := s.teachers.GetByID(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher", teacherID)
	}

	v, err := s.cached(workloadKey(teacherID), func() (any, error) {
		slots, err := s.slots.List(ctx, repository.SlotFilter{TeacherID: &teacherID})
		if err != nil {
			return nil, fmt.Errorf("list teacher slots: %w", err)
		}
		s.logger.Debug("Workload computed",
			zap.String("teacher_id", teacherID.String()),
			zap.Int("slots", len(slots)))
		return computeWorkload(teacherID, slots), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.TeacherWorkload), nil
}

// Overview сводка по школе
func (s *AnalyticsService) Overview(ctx context.Context) (*model.Overview, error) {
	v, err := s.cached(overviewKey, func() (any, error) {
		teachers, err := s.teachers.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count teachers: %w", err)
		}
		subjects, err := s.subjects.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count subjects: %w", err)
		}
		slots, err := s.slots.List(ctx, repository.SlotFilter{})
		if err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		return computeOverview(teachers, subjects, slots), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Overview), nil
}

func slotMinutes(slot *model.ScheduleSlot) int {
	interval, err := schedule.SlotInterval(slot)
	if err != nil {
		return 0
	}
	return interval.Minutes()
}

// percentage доля part от total в процентах, округлённая до сотых
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*10000/float64(total)) / 100
}

func computeWorkload(teacherID uuid.UUID, slots []*model.ScheduleSlot) *model.TeacherWorkload {
	w := &model.TeacherWorkload{
		TeacherID: teacherID,
		ByWeekday: make([]model.WeekdayLoad, len(model.Weekdays)),
		BySubject: []model.SubjectShare{},
	}
	for i, day := range model.Weekdays {
		w.ByWeekday[i].Weekday = day
	}

	bySubject := map[uuid.UUID]int{}
	for _, slot := range slots {
		idx := slot.Weekday.Index()
		if idx < 0 {
			continue
		}
		minutes := slotMinutes(slot)
		w.SlotCount++
		w.TotalMinutes += minutes
		w.ByWeekday[idx].Slots++
		w.ByWeekday[idx].Minutes += minutes
		bySubject[slot.SubjectID] += minutes
	}

	for subjectID, minutes := range bySubject {
		w.BySubject = append(w.BySubject, model.SubjectShare{
			SubjectID:  subjectID,
			Minutes:    minutes,
			Percentage: percentage(minutes, w.TotalMinutes),
		})
	}
	sort.Slice(w.BySubject, func(i, j int) bool {
		a, b := w.BySubject[i], w.BySubject[j]
		if a.Minutes != b.Minutes {
			return a.Minutes > b.Minutes
		}
		return a.SubjectID.String() < b.SubjectID.String()
	})
	return w
}

func computeOverview(teachers, subjects int, slots []*model.ScheduleSlot) *model.Overview {
	o := &model.Overview{
		Teachers:  teachers,
		Subjects:  subjects,
		ByWeekday: make([]model.WeekdayShare, len(model.Weekdays)),
	}
	for i, day := range model.Weekdays {
		o.ByWeekday[i].Weekday = day
	}

	for _, slot := range slots {
		idx := slot.Weekday.Index()
		if idx < 0 {
			continue
		}
		o.Slots++
		o.TotalMinutes += slotMinutes(slot)
		o.ByWeekday[idx].Slots++
	}
	for i := range o.ByWeekday {
		o.ByWeekday[i].Percentage = percentage(o.ByWeekday[i].Slots, o.Slots)
	}
	return o
}
