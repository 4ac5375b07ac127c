package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/timetable/internal/model"
	"github.com/Freeeeeet/timetable/internal/schedule"
	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Коды ошибок в теле ответа
const (
	codeMalformedTime    = "malformed_time"
	codeInvalidRange     = "invalid_range"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeConflict         = "conflict"
	codeInUse            = "in_use"
	codeDuplicate        = "duplicate"
	codeInvalidRequest   = "invalid_request"
	codeServerError      = "server_error"
)

type errorBody struct {
	Error     string                `json:"error"`
	Message   string                `json:"message"`
	Fields    []service.FieldError  `json:"fields,omitempty"`
	Conflicts []*model.ScheduleSlot `json:"conflicts,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

func decodeJSON(r *http.Request, out any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// pathID разбирает UUID из параметра маршрута
func pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   codeValidationFailed,
			Message: "invalid path parameter",
			Fields:  []service.FieldError{{Field: param, Message: "must be a valid UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *service.ValidationError
		conflict *schedule.ConflictError
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   codeValidationFailed,
			Message: "request validation failed",
			Fields:  verr.Fields,
		})
	case errors.Is(err, schedule.ErrMalformedTime):
		writeError(w, http.StatusBadRequest, codeMalformedTime, err.Error())
	case errors.Is(err, schedule.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, codeInvalidRange, err.Error())
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, errorBody{
			Error:     codeConflict,
			Message:   "slot overlaps existing lessons of the teacher",
			Conflicts: conflict.Conflicts,
		})
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, service.ErrInUse):
		writeError(w, http.StatusConflict, codeInUse, err.Error())
	case errors.Is(err, service.ErrDuplicate):
		writeError(w, http.StatusConflict, codeDuplicate, err.Error())
	default:
		s.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeServerError, "internal server error")
	}
}
