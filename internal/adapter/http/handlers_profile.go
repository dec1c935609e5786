package adapthttp

import (
	"net/http"

	"weightlog/internal/app"
)

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile.Get(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}

func (s *Server) handleProfilePut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Height        *float64 `json:"height"`
		InitialWeight *float64 `json:"initialWeight"`
		TargetWeight  *float64 `json:"targetWeight"`
		BirthDate     *string  `json:"birthDate"`
		Gender        *string  `json:"gender"`
		ActivityLevel *string  `json:"activityLevel"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := s.svc.Profile.Update(r.Context(), userFromContext(r).ID, app.ProfileUpdate(body))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": p})
}
