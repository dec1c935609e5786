package adapthttp

import (
	"net/http"
	"time"

	"weightlog/internal/domain"
)

func (s *Server) handleChartsDaily(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 90)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = domain.UnitKg
	}

	points, err := s.svc.Charts.GetDaily(r.Context(), userFromContext(r).ID, days, unit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"days":  min(days, 366),
		"unit":  unit,
		"today": time.Now().Format(domain.DateLayout),
		"items": points,
	})
}
