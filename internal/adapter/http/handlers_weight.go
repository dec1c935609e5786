package adapthttp

import (
	"net/http"

	"weightlog/internal/app"
)

func (s *Server) handleWeightList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Weight.List(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWeightCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Weight float64 `json:"weight"`
		Date   string  `json:"date"`
		Notes  string  `json:"notes"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := s.svc.Weight.Record(r.Context(), userFromContext(r).ID, app.NewWeightRecord{
		Weight: body.Weight,
		Date:   body.Date,
		Notes:  body.Notes,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleWeightRecent(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 14)
	items, err := s.svc.Weight.ListRecent(r.Context(), userFromContext(r).ID, limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWeightUndoLast(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.svc.Weight.UndoLast(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted != nil, "entry": deleted})
}
