package adapthttp

import (
	"net/http"

	"weightlog/internal/app"
)

func (s *Server) handleGoalList(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.Goals.List(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": goals})
}

func (s *Server) handleGoalCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		TargetWeight float64 `json:"targetWeight"`
		StartDate    string  `json:"startDate"`
		TargetDate   string  `json:"targetDate"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := s.svc.Goals.Create(r.Context(), userFromContext(r).ID, app.NewGoal(body))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}
