package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherCreateValidation(t *testing.T) {
	e := newEnv(t)
	zero := int64(0)

	_, err := e.teachers.Create(context.Background(), TeacherInput{FullName: "  ", Email: "nope", TelegramID: &zero})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, "fullName", verr.Fields[0].Field)
	assert.Equal(t, "must be a valid email", verr.Fields[1].Message)
	assert.Equal(t, "telegramId", verr.Fields[2].Field)
}

func TestTeacherCreateDefaultsActive(t *testing.T) {
	e := newEnv(t)
	assert.True(t, e.teacher.IsActive)

	inactive := false
	teacher, err := e.teachers.Create(context.Background(), TeacherInput{
		FullName: "Вера Соколова",
		Email:    "vera@school.test",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, teacher.IsActive)

	active, err := e.teachers.List(context.Background(), TeacherQuery{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, e.teacher.ID, active[0].ID)
}

func TestTeacherDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	_, err := e.teachers.Create(context.Background(), TeacherInput{FullName: "Копия", Email: e.teacher.Email})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestTeacherUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	updated, err := e.teachers.Update(ctx, e.teacher.ID, TeacherPatch{FullName: strPtr(" Анна Сергеевна ")})
	require.NoError(t, err)
	assert.Equal(t, "Анна Сергеевна", updated.FullName)
	assert.Equal(t, e.teacher.Email, updated.Email)

	_, err = e.teachers.Update(ctx, uuid.New(), TeacherPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTeacherDeleteRemovesSlots(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	slot := e.mustCreate(t, model.Monday, "08:00", "09:00")

	require.NoError(t, e.teachers.Delete(ctx, e.teacher.ID))
	assert.ErrorIs(t, e.teachers.Delete(ctx, e.teacher.ID), ErrNotFound)

	_, err := e.schedule.GetSlot(ctx, slot.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
