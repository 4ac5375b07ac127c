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

// TeacherInput тело запроса на создание учителя
type TeacherInput struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	TelegramID *int64 `json:"telegramId"`
	IsActive   *bool  `json:"isActive"`
}

// TeacherPatch частичное обновление учителя
type TeacherPatch struct {
	FullName   *string `json:"fullName"`
	Email      *string `json:"email"`
	TelegramID *int64  `json:"telegramId"`
	IsActive   *bool   `json:"isActive"`
}

// TeacherQuery параметры выборки учителей
type TeacherQuery struct {
	ActiveOnly bool
	Limit      string
	Offset     string
}

type TeacherService struct {
	teachers    TeacherStore
	invalidator CacheInvalidator
	logger      *zap.Logger
}

func NewTeacherService(teachers TeacherStore, invalidator CacheInvalidator, logger *zap.Logger) *TeacherService {
	if invalidator == nil {
		invalidator = nopInvalidator{}
	}
	return &TeacherService{
		teachers:    teachers,
		invalidator: invalidator,
		logger:      logger,
	}
}

// Create создаёт учителя
func (s *TeacherService) Create(ctx context.Context, in TeacherInput) (*model.Teacher, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)

	var errs fieldErrors
	errs.add(nameField("fullName", fullName))
	errs.add(emailField("email", email))
	errs.add(telegramIDField("telegramId", in.TelegramID))
	if err := errs.err(); err != nil {
		return nil, err
	}

	teacher := &model.Teacher{
		ID:         uuid.New(),
		FullName:   fullName,
		Email:      email,
		TelegramID: in.TelegramID,
		IsActive:   true,
	}
	if in.IsActive != nil {
		teacher.IsActive = *in.IsActive
	}

	if err := s.teachers.Create(ctx, teacher); err != nil {
		s.logger.Error("Failed to create teacher",
			zap.String("email", email),
			zap.Error(err))
		return nil, storeError("create teacher", err)
	}

	s.logger.Info("Teacher created",
		zap.String("teacher_id", teacher.ID.String()),
		zap.String("full_name", teacher.FullName))

	s.invalidator.InvalidateOverview()
	return teacher, nil
}

// Get получает учителя по ID
func (s *TeacherService) Get(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, notFound("teacher", id)
	}
	return teacher, nil
}

// List получает учителей
func (s *TeacherService) List(ctx context.Context, q TeacherQuery) ([]*model.Teacher, error) {
	limit, offset, errs := parsePageFields(q.Limit, q.Offset)
	if err := errs.err(); err != nil {
		return nil, err
	}

	filter := repository.TeacherFilter{
		ActiveOnly: q.ActiveOnly,
		Page:       repository.Page{Limit: limit, Offset: offset},
	}
	teachers, err := s.teachers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// Update применяет частичное обновление учителя
func (s *TeacherService) Update(ctx context.Context, id uuid.UUID, patch TeacherPatch) (*model.Teacher, error) {
	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var errs fieldErrors
	if patch.FullName != nil {
		teacher.FullName = strings.TrimSpace(*patch.FullName)
		errs.add(nameField("fullName", teacher.FullName))
	}
	if patch.Email != nil {
		teacher.Email = strings.TrimSpace(*patch.Email)
		errs.add(emailField("email", teacher.Email))
	}
	if patch.TelegramID != nil {
		errs.add(telegramIDField("telegramId", patch.TelegramID))
		teacher.TelegramID = patch.TelegramID
	}
	if patch.IsActive != nil {
		teacher.IsActive = *patch.IsActive
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	ok, err := s.teachers.Update(ctx, teacher)
	if err != nil {
		s.logger.Error("Failed to update teacher",
			zap.String("teacher_id", id.String()),
			zap.Error(err))
		return nil, storeError("update teacher", err)
	}
	if !ok {
		return nil, notFound("teacher", id)
	}

	s.logger.Info("Teacher updated", zap.String("teacher_id", id.String()))
	return teacher, nil
}

// Delete удаляет учителя вместе с его слотами
func (s *TeacherService) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.teachers.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete teacher",
			zap.String("teacher_id", id.String()),
			zap.Error(err))
		return fmt.Errorf("delete teacher: %w", err)
	}
	if !ok {
		return notFound("teacher", id)
	}

	s.logger.Info("Teacher deleted", zap.String("teacher_id", id.String()))
	s.invalidator.InvalidateTeacher(id)
	return nil
}
