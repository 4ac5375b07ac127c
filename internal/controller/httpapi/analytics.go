package httpapi

import "net/http"

func (s *Server) handleTeacherWorkload(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "teacherId")
	if !ok {
		return
	}

	workload, err := s.analytics.TeacherWorkload(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, workload)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.analytics.Overview(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
