package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/timetable/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCreateSlot(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSlotInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	slot, err := s.schedule.CreateSlot(r.Context(), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (s *Server) handleUpdateSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "slotId")
	if !ok {
		return
	}

	var in service.UpdateSlotInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	slot, err := s.schedule.UpdateSlot(r.Context(), id, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (s *Server) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "slotId")
	if !ok {
		return
	}

	slot, err := s.schedule.GetSlot(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (s *Server) handleDeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "slotId")
	if !ok {
		return
	}

	if err := s.schedule.DeleteSlot(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	slots, err := s.schedule.ListSlots(r.Context(), service.SlotQuery{
		TeacherID: q.Get("teacherId"),
		SubjectID: q.Get("subjectId"),
		Weekday:   q.Get("weekday"),
		Limit:     q.Get("limit"),
		Offset:    q.Get("offset"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

func (s *Server) handleCheckConflicts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := s.schedule.CheckConflicts(r.Context(), service.ConflictQuery{
		TeacherID:     chi.URLParam(r, "teacherId"),
		Weekday:       q.Get("weekday"),
		StartTime:     q.Get("startTime"),
		EndTime:       q.Get("endTime"),
		ExcludeSlotID: q.Get("excludeSlotId"),
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
