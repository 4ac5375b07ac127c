// Package memory хранилище в памяти с теми же контрактами, что и репозитории Postgres.
// Используется при STORAGE=memory и в тестах.
package memory

import (
	"sync"
	"time"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/google/uuid"
)

// DB общее состояние всех таблиц под одной блокировкой.
// Слоты ссылаются на учителей и предметы, поэтому проверки ссылок и
// проверка пересечений выполняются атомарно вместе с записью.
type DB struct {
	mu       sync.RWMutex
	now      func() time.Time
	teachers map[uuid.UUID]*model.Teacher
	subjects map[uuid.UUID]*model.Subject
	slots    map[uuid.UUID]*model.ScheduleSlot
}

// Option настройка DB
type Option func(*DB)

// WithClock подменяет источник времени для created_at/updated_at
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		db.now = now
	}
}

// Open создаёт пустое хранилище
func Open(opts ...Option) *DB {
	db := &DB{
		now:      time.Now,
		teachers: make(map[uuid.UUID]*model.Teacher),
		subjects: make(map[uuid.UUID]*model.Subject),
		slots:    make(map[uuid.UUID]*model.ScheduleSlot),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *DB) timestamp() time.Time {
	return db.now().UTC()
}

// Teachers возвращает репозиторий учителей
func (db *DB) Teachers() *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Subjects возвращает репозиторий предметов
func (db *DB) Subjects() *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Slots возвращает репозиторий слотов
func (db *DB) Slots() *SlotRepository {
	return &SlotRepository{db: db}
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
