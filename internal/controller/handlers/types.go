package handlers

import (
	"github.com/Freeeeeet/timetable/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит зависимости для обработки команд бота
type Handlers struct {
	scheduleService *service.ScheduleService
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(scheduleService *service.ScheduleService, logger *zap.Logger) *Handlers {
	return &Handlers{
		scheduleService: scheduleService,
		logger:          logger,
	}
}
