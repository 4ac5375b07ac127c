package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleSlot еженедельный урок учителя: один день, один интервал [StartTime, EndTime)
type ScheduleSlot struct {
	ID        uuid.UUID `json:"id"`
	TeacherID uuid.UUID `json:"teacherId"`
	SubjectID uuid.UUID `json:"subjectId"`
	Weekday   Weekday   `json:"weekday"`
	StartTime string    `json:"startTime"` // "HH:mm"
	EndTime   string    `json:"endTime"`   // "HH:mm"
	Room      *string   `json:"room,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
