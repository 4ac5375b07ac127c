package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	maxNameLength        = 200
	maxRoomLength        = 50
	maxSubjectCodeLength = 32
	maxDescriptionLength = 2000
	maxPageLimit         = 500
)

// validate проверяет отдельные значения через Var; структуры с тегами не используются
var validate = validator.New()

// fieldError переводит ошибку validator в понятное сообщение
func fieldError(field string, err error) *FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &FieldError{Field: field, Message: err.Error()}
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "uuid":
		msg = "must be a valid UUID"
	case "email":
		msg = "must be a valid email"
	case "max":
		msg = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		msg = fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		msg = fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		msg = fmt.Sprintf("must be greater than %s", fe.Param())
	case "number":
		msg = "must be a number"
	default:
		msg = "is invalid"
	}
	return &FieldError{Field: field, Message: msg}
}

func checkVar(field string, value any, tag string) *FieldError {
	if err := validate.Var(value, tag); err != nil {
		return fieldError(field, err)
	}
	return nil
}

// parseUUIDField проверяет обязательный UUID
func parseUUIDField(field, value string) (uuid.UUID, *FieldError) {
	if fe := checkVar(field, value, "required,uuid"); fe != nil {
		return uuid.Nil, fe
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &FieldError{Field: field, Message: "must be a valid UUID"}
	}
	return id, nil
}

// parseWeekdayField проверяет обязательный день недели
func parseWeekdayField(field, value string) (model.Weekday, *FieldError) {
	if fe := checkVar(field, value, "required"); fe != nil {
		return "", fe
	}
	day, err := model.ParseWeekday(value)
	if err != nil {
		return "", &FieldError{Field: field, Message: "must be one of MONDAY..SATURDAY"}
	}
	return day, nil
}

// requireField проверяет непустое значение. Формат времени здесь не проверяется,
// его проверяет валидатор расписания.
func requireField(field, value string) *FieldError {
	return checkVar(field, value, "required")
}

func nameField(field, value string) *FieldError {
	return checkVar(field, value, fmt.Sprintf("required,max=%d", maxNameLength))
}

func emailField(field, value string) *FieldError {
	return checkVar(field, value, "required,email")
}

func roomField(field string, value *string) *FieldError {
	if value == nil {
		return nil
	}
	return checkVar(field, *value, fmt.Sprintf("max=%d", maxRoomLength))
}

func telegramIDField(field string, value *int64) *FieldError {
	if value == nil {
		return nil
	}
	return checkVar(field, *value, "gt=0")
}

// parsePageFields разбирает limit/offset из строки запроса; пустые значения означают без ограничения
func parsePageFields(limit, offset string) (int, int, fieldErrors) {
	var errs fieldErrors
	l := parseIntField("limit", limit, fmt.Sprintf("gte=1,lte=%d", maxPageLimit), &errs)
	o := parseIntField("offset", offset, "gte=0", &errs)
	return l, o, errs
}

func parseIntField(field, value, tag string, errs *fieldErrors) int {
	if value == "" {
		return 0
	}
	if fe := checkVar(field, value, "number"); fe != nil {
		errs.add(fe)
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		errs.add(&FieldError{Field: field, Message: "must be a number"})
		return 0
	}
	if fe := checkVar(field, n, tag); fe != nil {
		errs.add(fe)
		return 0
	}
	return n
}
