package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubjectInput тело запроса на создание предмета
type SubjectInput struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SubjectPatch частичное обновление предмета
type SubjectPatch struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type SubjectService struct {
	subjects    SubjectStore
	slots       SlotStore
	invalidator CacheInvalidator
	logger      *zap.Logger
}

func NewSubjectService(subjects SubjectStore, slots SlotStore, invalidator CacheInvalidator, logger *zap.Logger) *SubjectService {
	if invalidator == nil {
		invalidator = nopInvalidator{}
	}
	return &SubjectService{
		subjects:    subjects,
		slots:       slots,
		invalidator: invalidator,
		logger:      logger,
	}
}

func subjectFields(subject *model.Subject) error {
	var errs fieldErrors
	errs.add(checkVar("code", subject.Code, fmt.Sprintf("required,max=%d", maxSubjectCodeLength)))
	errs.add(nameField("name", subject.Name))
	errs.add(checkVar("description", subject.Description, fmt.Sprintf("max=%d", maxDescriptionLength)))
	return errs.err()
}

// Create создаёт новый предмет. Код приводится к верхнему регистру.
func (s *SubjectService) Create(ctx context.Context, in SubjectInput) (*model.Subject, error) {
	subject := &model.Subject{
		ID:          uuid.New(),
		Code:        strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}
	if err := subjectFields(subject); err != nil {
		return nil, err
	}

	if err := s.subjects.Create(ctx, subject); err != nil {
		s.logger.Error("Failed to create subject",
			zap.String("code", subject.Code),
			zap.Error(err))
		return nil, storeError("create subject", err)
	}

	s.logger.Info("Subject created",
		zap.String("subject_id", subject.ID.String()),
		zap.String("code", subject.Code))

	s.invalidator.InvalidateOverview()
	return subject, nil
}

// Get получает предмет по ID
func (s *SubjectService) Get(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	if subject == nil {
		return nil, notFound("subject", id)
	}
	return subject, nil
}

// List получает предметы
func (s *SubjectService) List(ctx context.Context, limit, offset string) ([]*model.Subject, error) {
	l, o, errs := parsePageFields(limit, offset)
	if err := errs.err(); err != nil {
		return nil, err
	}

	subjects, err := s.subjects.List(ctx, repository.Page{Limit: l, Offset: o})
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// Update применяет частичное обновление предмета
func (s *SubjectService) Update(ctx context.Context, id uuid.UUID, patch SubjectPatch) (*model.Subject, error) {
	subject, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Code != nil {
		subject.Code = strings.ToUpper(strings.TrimSpace(*patch.Code))
	}
	if patch.Name != nil {
		subject.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		subject.Description = strings.TrimSpace(*patch.Description)
	}
	if err := subjectFields(subject); err != nil {
		return nil, err
	}

	ok, err := s.subjects.Update(ctx, subject)
	if err != nil {
		s.logger.Error("Failed to update subject",
			zap.String("subject_id", id.String()),
			zap.Error(err))
		return nil, storeError("update subject", err)
	}
	if !ok {
		return nil, notFound("subject", id)
	}

	s.logger.Info("Subject updated", zap.String("subject_id", id.String()))
	return subject, nil
}

// Delete удаляет предмет, если на него не ссылается ни один слот
func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	count, err := s.slots.CountBySubject(ctx, id)
	if err != nil {
		return fmt.Errorf("count slots by subject: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("subject %s has %d slots: %w", id, count, ErrInUse)
	}

	ok, err := s.subjects.Delete(ctx, id)
	if err != nil {
		return storeError("delete subject", err)
	}
	if !ok {
		return notFound("subject", id)
	}

	s.logger.Info("Subject deleted", zap.String("subject_id", id.String()))
	s.invalidator.InvalidateOverview()
	return nil
}
