package adapthttp

import "net/http"

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Progress.Summary(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
