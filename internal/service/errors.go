package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/timetable/internal/repository"
)

var (
	// ErrNotFound учитель, предмет или слот не найден
	ErrNotFound = errors.New("not found")
	// ErrInUse запись нельзя удалить, на неё ссылаются слоты
	ErrInUse = errors.New("in use")
	// ErrDuplicate нарушена уникальность email, telegram id или кода предмета
	ErrDuplicate = errors.New("already exists")
)

// FieldError ошибка одного поля запроса
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

// ValidationError ошибки полей запроса
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors собирает ошибки полей по мере проверки
type fieldErrors []FieldError

func (f *fieldErrors) add(fe *FieldError) {
	if fe != nil {
		*f = append(*f, *fe)
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

func notFound(entity string, id fmt.Stringer) error {
	return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
}

// storeError переводит ошибки хранилища в ошибки сервиса
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	case errors.Is(err, repository.ErrReferenced):
		return fmt.Errorf("%s: %w", op, ErrInUse)
	case errors.Is(err, repository.ErrMissingReference):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
