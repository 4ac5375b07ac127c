package service

import (
	"context"

	"github.com/Freeeeeet/timetable/internal/model"
)

// SlotEventKind тип изменения расписания
type SlotEventKind string

const (
	SlotCreated SlotEventKind = "created"
	SlotUpdated SlotEventKind = "updated"
	SlotDeleted SlotEventKind = "deleted"
)

// SlotEvent изменение слота, о котором сообщается учителю
type SlotEvent struct {
	Kind    SlotEventKind
	Slot    *model.ScheduleSlot
	Teacher *model.Teacher
}

// Notifier доставляет события учителю. Ошибка доставки не отменяет запись.
type Notifier interface {
	NotifySlot(ctx context.Context, event SlotEvent) error
}

type nopNotifier struct{}

func (nopNotifier) NotifySlot(context.Context, SlotEvent) error { return nil }
