package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/timetable/internal/service"
)

func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	var in service.SubjectInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	subject, err := s.subjects.Create(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, subject)
}

func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subjects, err := s.subjects.List(r.Context(), q.Get("limit"), q.Get("offset"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subjects)
}

func (s *Server) handleGetSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "subjectId")
	if !ok {
		return
	}

	subject, err := s.subjects.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (s *Server) handleUpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "subjectId")
	if !ok {
		return
	}

	var patch service.SubjectPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	subject, err := s.subjects.Update(r.Context(), id, patch)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, subject)
}

func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "subjectId")
	if !ok {
		return
	}

	if err := s.subjects.Delete(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
