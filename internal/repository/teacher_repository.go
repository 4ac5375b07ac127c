package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var teacherColumns = []string{"id", "full_name", "email", "telegram_id", "is_active", "created_at", "updated_at"}

type TeacherRepository struct {
	*base.Repository
}

func NewTeacherRepository(pool base.DB) *TeacherRepository {
	return &TeacherRepository{Repository: base.NewRepository(pool)}
}

func scanTeacher(row pgx.Row) (*model.Teacher, error) {
	var teacher model.Teacher
	err := row.Scan(
		&teacher.ID,
		&teacher.FullName,
		&teacher.Email,
		&teacher.TelegramID,
		&teacher.IsActive,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create создаёт учителя
func (r *TeacherRepository) Create(ctx context.Context, teacher *model.Teacher) error {
	query := `
		INSERT INTO teachers (id, full_name, email, telegram_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		teacher.ID,
		teacher.FullName,
		teacher.Email,
		teacher.TelegramID,
		teacher.IsActive,
	).Scan(&teacher.CreatedAt, &teacher.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create teacher: %w", ErrDuplicate)
		}
		return fmt.Errorf("create teacher: %w", err)
	}

	return nil
}

// GetByID получает учителя по ID
func (r *TeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	query, args, err := r.Builder().Select(teacherColumns...).From("teachers").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return teacher, nil
}

// GetByTelegramID получает учителя по привязанному Telegram ID
func (r *TeacherRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Teacher, error) {
	query, args, err := r.Builder().Select(teacherColumns...).From("teachers").Where("telegram_id = ?", telegramID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by telegram id: %w", err)
	}

	return teacher, nil
}

// List получает учителей по фильтру
func (r *TeacherRepository) List(ctx context.Context, filter TeacherFilter) ([]*model.Teacher, error) {
	q := filter.where(r.Builder().Select(teacherColumns...).From("teachers")).OrderBy("full_name", "id")
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build teachers query: %w", err)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	teachers := []*model.Teacher{}
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teachers: %w", err)
	}

	return teachers, nil
}

// Update обновляет учителя, возвращает false если его нет
func (r *TeacherRepository) Update(ctx context.Context, teacher *model.Teacher) (bool, error) {
	query := `
		UPDATE teachers
		SET full_name = $2, email = $3, telegram_id = $4, is_active = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		teacher.ID,
		teacher.FullName,
		teacher.Email,
		teacher.TelegramID,
		teacher.IsActive,
	).Scan(&teacher.UpdatedAt)

	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		if base.IsUniqueViolation(err) {
			return false, fmt.Errorf("update teacher: %w", ErrDuplicate)
		}
		return false, fmt.Errorf("update teacher: %w", err)
	}

	return true, nil
}

// Delete удаляет учителя вместе со слотами (каскад в БД)
func (r *TeacherRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete teacher: %w", err)
	}
	return affected > 0, nil
}

// Count возвращает количество учителей
func (r *TeacherRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.QueryRow(ctx, `SELECT count(*) FROM teachers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return count, nil
}
