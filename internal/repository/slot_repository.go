package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository/base"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var slotColumns = []string{
	"id", "teacher_id", "subject_id", "weekday", "start_minute", "end_minute", "room", "created_at", "updated_at",
}

type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool base.DB) *SlotRepository {
	return &SlotRepository{Repository: base.NewRepository(pool)}
}

func scanSlot(row pgx.Row) (*model.ScheduleSlot, error) {
	var (
		slot                model.ScheduleSlot
		weekday, start, end int16
	)
	err := row.Scan(
		&slot.ID,
		&slot.TeacherID,
		&slot.SubjectID,
		&weekday,
		&start,
		&end,
		&slot.Room,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if int(weekday) < 0 || int(weekday) >= len(model.Weekdays) {
		return nil, fmt.Errorf("weekday index %d out of range", weekday)
	}
	slot.Weekday = model.Weekdays[weekday]
	slot.StartTime = schedule.FormatTime(int(start))
	slot.EndTime = schedule.FormatTime(int(end))
	return &slot, nil
}

func collectSlots(rows pgx.Rows) ([]*model.ScheduleSlot, error) {
	defer rows.Close()

	slots := []*model.ScheduleSlot{}
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return slots, nil
}

// slotMinutes переводит время слота в минуты для хранения
func slotMinutes(slot *model.ScheduleSlot) (int, int, error) {
	interval, err := schedule.SlotInterval(slot)
	if err != nil {
		return 0, 0, err
	}
	return interval.Start, interval.End, nil
}

// lockTeacherDay берёт транзакционную advisory-блокировку на пару учитель+день.
// Все записи в эту пару выполняются последовательно до конца транзакции.
func lockTeacherDay(ctx context.Context, q base.Querier, teacherID uuid.UUID, weekday model.Weekday) error {
	key := teacherID.String() + ":" + weekday.String()
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return fmt.Errorf("lock teacher day: %w", err)
	}
	return nil
}

func (r *SlotRepository) listTeacherDay(ctx context.Context, q base.Querier, teacherID uuid.UUID, weekday model.Weekday) ([]*model.ScheduleSlot, error) {
	query, args, err := r.Builder().
		Select(slotColumns...).
		From("schedule_slots").
		Where("teacher_id = ? AND weekday = ?", teacherID, weekday.Index()).
		OrderBy("start_minute", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slots query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teacher day slots: %w", err)
	}
	return collectSlots(rows)
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleSlot, error) {
	query, args, err := r.Builder().Select(slotColumns...).From("schedule_slots").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slot query: %w", err)
	}

	slot, err := scanSlot(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// List получает слоты по фильтру в порядке дня недели и начала
func (r *SlotRepository) List(ctx context.Context, filter SlotFilter) ([]*model.ScheduleSlot, error) {
	q := filter.where(r.Builder().Select(slotColumns...).From("schedule_slots")).
		OrderBy("weekday", "start_minute", "id")
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slots query: %w", err)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return collectSlots(rows)
}

// ListByTeacherDay получает слоты учителя на день без блокировки
func (r *SlotRepository) ListByTeacherDay(ctx context.Context, teacherID uuid.UUID, weekday model.Weekday) ([]*model.ScheduleSlot, error) {
	return r.listTeacherDay(ctx, r.Pool(), teacherID, weekday)
}

// CreateChecked создаёт слот, если check пропускает текущие слоты учителя на этот день.
// Чтение, проверка и вставка идут в одной транзакции под блокировкой пары учитель+день.
func (r *SlotRepository) CreateChecked(ctx context.Context, slot *model.ScheduleSlot, check CheckFunc) error {
	start, end, err := slotMinutes(slot)
	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return r.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockTeacherDay(ctx, tx, slot.TeacherID, slot.Weekday); err != nil {
			return err
		}

		existing, err := r.listTeacherDay(ctx, tx, slot.TeacherID, slot.Weekday)
		if err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}

		query := `
			INSERT INTO schedule_slots (id, teacher_id, subject_id, weekday, start_minute, end_minute, room)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at
		`
		err = tx.QueryRow(
			ctx, query,
			slot.ID,
			slot.TeacherID,
			slot.SubjectID,
			slot.Weekday.Index(),
			start,
			end,
			slot.Room,
		).Scan(&slot.CreatedAt, &slot.UpdatedAt)
		if err != nil {
			if base.IsUniqueViolation(err) {
				return fmt.Errorf("create slot: %w", ErrDuplicate)
			}
			if base.IsForeignKeyViolation(err) {
				return fmt.Errorf("create slot: %w", ErrMissingReference)
			}
			return fmt.Errorf("create slot: %w", err)
		}
		return nil
	})
}

// UpdateChecked перезаписывает слот целиком под блокировкой пары учитель+день назначения.
// Возвращает false, если слота уже нет.
func (r *SlotRepository) UpdateChecked(ctx context.Context, slot *model.ScheduleSlot, check CheckFunc) (bool, error) {
	start, end, err := slotMinutes(slot)
	if err != nil {
		return false, fmt.Errorf("update slot: %w", err)
	}

	found := true
	err = r.InTx(ctx, func(tx pgx.Tx) error {
		if err := lockTeacherDay(ctx, tx, slot.TeacherID, slot.Weekday); err != nil {
			return err
		}

		existing, err := r.listTeacherDay(ctx, tx, slot.TeacherID, slot.Weekday)
		if err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}

		query := `
			UPDATE schedule_slots
			SET teacher_id = $2, subject_id = $3, weekday = $4, start_minute = $5, end_minute = $6,
				room = $7, updated_at = now()
			WHERE id = $1
			RETURNING created_at, updated_at
		`
		err = tx.QueryRow(
			ctx, query,
			slot.ID,
			slot.TeacherID,
			slot.SubjectID,
			slot.Weekday.Index(),
			start,
			end,
			slot.Room,
		).Scan(&slot.CreatedAt, &slot.UpdatedAt)
		if err != nil {
			if base.IsNotFound(err) {
				found = false
				return nil
			}
			if base.IsForeignKeyViolation(err) {
				return fmt.Errorf("update slot: %w", ErrMissingReference)
			}
			return fmt.Errorf("update slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM schedule_slots WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete slot: %w", err)
	}
	return affected > 0, nil
}

// CountBySubject возвращает количество слотов с предметом
func (r *SlotRepository) CountBySubject(ctx context.Context, subjectID uuid.UUID) (int, error) {
	var count int
	err := r.QueryRow(ctx, `SELECT count(*) FROM schedule_slots WHERE subject_id = $1`, subjectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count slots by subject: %w", err)
	}
	return count, nil
}
