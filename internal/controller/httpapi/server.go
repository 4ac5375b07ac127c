// Package httpapi HTTP API расписания поверх chi.
package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Server struct {
	schedule  *service.ScheduleService
	teachers  *service.TeacherService
	subjects  *service.SubjectService
	analytics *service.AnalyticsService
	observer  RequestObserver
	metrics   http.Handler
	logger    *zap.Logger
}

// Option подключает метрики к серверу
type Option func(*Server)

// WithMetrics включает учёт запросов и эндпоинт /metrics
func WithMetrics(observer RequestObserver, handler http.Handler) Option {
	return func(s *Server) {
		s.observer = observer
		s.metrics = handler
	}
}

func NewServer(
	schedule *service.ScheduleService,
	teachers *service.TeacherService,
	subjects *service.SubjectService,
	analytics *service.AnalyticsService,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		schedule:  schedule,
		teachers:  teachers,
		subjects:  subjects,
		analytics: analytics,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router собирает маршруты API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/schedules", func(r chi.Router) {
		r.Post("/", s.handleCreateSlot)
		r.Get("/", s.handleListSlots)
		r.Get("/conflicts/{teacherId}", s.handleCheckConflicts)
		r.Get("/{slotId}", s.handleGetSlot)
		r.Patch("/{slotId}", s.handleUpdateSlot)
		r.Delete("/{slotId}", s.handleDeleteSlot)
	})

	r.Route("/teachers", func(r chi.Router) {
		r.Post("/", s.handleCreateTeacher)
		r.Get("/", s.handleListTeachers)
		r.Get("/{teacherId}", s.handleGetTeacher)
		r.Patch("/{teacherId}", s.handleUpdateTeacher)
		r.Delete("/{teacherId}", s.handleDeleteTeacher)
		r.Get("/{teacherId}/timetable", s.handleTeacherTimetable)
		r.Get("/{teacherId}/timetable.png", s.handleTeacherTimetableImage)
	})

	r.Route("/subjects", func(r chi.Router) {
		r.Post("/", s.handleCreateSubject)
		r.Get("/", s.handleListSubjects)
		r.Get("/{subjectId}", s.handleGetSubject)
		r.Patch("/{subjectId}", s.handleUpdateSubject)
		r.Delete("/{subjectId}", s.handleDeleteSubject)
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/teachers/{teacherId}/workload", s.handleTeacherWorkload)
		r.Get("/overview", s.handleOverview)
	})

	return r
}
