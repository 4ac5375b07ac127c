package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var subjectColumns = []string{"id", "code", "name", "description", "created_at", "updated_at"}

type SubjectRepository struct {
	*base.Repository
}

func NewSubjectRepository(pool base.DB) *SubjectRepository {
	return &SubjectRepository{Repository: base.NewRepository(pool)}
}

func scanSubject(row pgx.Row) (*model.Subject, error) {
	var subject model.Subject
	err := row.Scan(
		&subject.ID,
		&subject.Code,
		&subject.Name,
		&subject.Description,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// Create создаёт новый предмет
func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (id, code, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		subject.ID,
		subject.Code,
		subject.Name,
		subject.Description,
	).Scan(&subject.CreatedAt, &subject.UpdatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return fmt.Errorf("create subject: %w", ErrDuplicate)
		}
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetByID получает предмет по ID
func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	query, args, err := r.Builder().Select(subjectColumns...).From("subjects").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subject query: %w", err)
	}

	subject, err := scanSubject(r.QueryRow(ctx, query, args...))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return subject, nil
}

// List получает предметы, отсортированные по названию
func (r *SubjectRepository) List(ctx context.Context, page Page) ([]*model.Subject, error) {
	q := page.apply(r.Builder().Select(subjectColumns...).From("subjects")).OrderBy("name", "id")
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build subjects query: %w", err)
	}

	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	subjects := []*model.Subject{}
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}

	return subjects, nil
}

// Update обновляет предмет, возвращает false если его нет
func (r *SubjectRepository) Update(ctx context.Context, subject *model.Subject) (bool, error) {
	query := `
		UPDATE subjects
		SET code = $2, name = $3, description = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.QueryRow(ctx, query, subject.ID, subject.Code, subject.Name, subject.Description).Scan(&subject.UpdatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return false, nil
		}
		if base.IsUniqueViolation(err) {
			return false, fmt.Errorf("update subject: %w", ErrDuplicate)
		}
		return false, fmt.Errorf("update subject: %w", err)
	}

	return true, nil
}

// Delete удаляет предмет. Слоты ссылаются на предмет с ON DELETE RESTRICT.
func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return false, fmt.Errorf("delete subject: %w", ErrReferenced)
		}
		return false, fmt.Errorf("delete subject: %w", err)
	}
	return affected > 0, nil
}

// Count возвращает количество предметов
func (r *SubjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.QueryRow(ctx, `SELECT count(*) FROM subjects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count subjects: %w", err)
	}
	return count, nil
}
