package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/timetable/internal/render"
	"github.com/Freeeeeet/timetable/internal/service"
	"go.uber.org/zap"
)

func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var in service.TeacherInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	teacher, err := s.teachers.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, teacher)
}

func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	activeOnly, _ := strconv.ParseBool(q.Get("active"))

	teachers, err := s.teachers.List(r.Context(), service.TeacherQuery{
		ActiveOnly: activeOnly,
		Limit:      q.Get("limit"),
		Offset:     q.Get("offset"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teachers)
}

func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "teacherId")
	if !ok {
		return
	}

	teacher, err := s.teachers.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "teacherId")
	if !ok {
		return
	}

	var patch service.TeacherPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	teacher, err := s.teachers.Update(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, teacher)
}

func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "teacherId")
	if !ok {
		return
	}

	if err := s.teachers.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTeacherTimetable(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "teacherId")
	if !ok {
		return
	}

	tt, err := s.schedule.TeacherTimetable(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tt)
}

func (s *Server) handleTeacherTimetableImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "teacherId")
	if !ok {
		return
	}

	tt, err := s.schedule.TeacherTimetable(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	img, err := render.Timetable(tt)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(img); err != nil {
		s.logger.Warn("Failed to write timetable image",
			zap.String("teacher_id", id.String()),
			zap.Error(err))
	}
}
