package app

import (
	"context"
	"math"
	"time"

	"weightlog/internal/domain"
)

// GoalStatus describes how the current weight relates to a goal.
type GoalStatus struct {
	Goal          domain.Goal `json:"goal"`
	Reached       bool        `json:"reached"`
	DaysRemaining int         `json:"daysRemaining"`
}

// Progress is the dashboard view of a user's weight history.
type Progress struct {
	domain.ProgressSummary
	History    []domain.RecordDelta `json:"history"`
	ActiveGoal *GoalStatus          `json:"activeGoal"`
}

// ProgressService computes progress metrics from stored data.
type ProgressService struct {
	weights  domain.WeightRepository
	profiles domain.ProfileRepository
	goals    domain.GoalRepository
}

// NewProgressService creates a ProgressService.
func NewProgressService(weights domain.WeightRepository, profiles domain.ProfileRepository, goals domain.GoalRepository) *ProgressService {
	return &ProgressService{weights: weights, profiles: profiles, goals: goals}
}

// Summary loads the user's records, profile and goals and derives the
// progress metrics from them.
func (s *ProgressService) Summary(ctx context.Context, userID string) (*Progress, error) {
	records, err := s.weights.ListWeightRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	m := domain.NewMetrics(records, profile)
	p := &Progress{
		ProgressSummary: m.Summary(),
		History:         m.RecordDeltas(),
	}

	// Goals are newest first; the first active one is current.
	for _, g := range goals {
		if !g.IsActive {
			continue
		}
		p.ActiveGoal = goalStatus(g, p.CurrentWeight, time.Now())
		break
	}
	return p, nil
}

func goalStatus(g domain.Goal, current float64, now time.Time) *GoalStatus {
	st := &GoalStatus{
		Goal:    g,
		Reached: g.Achieved || (current > 0 && current <= g.TargetWeight),
	}
	target, err := time.ParseInLocation(domain.DateLayout, g.TargetDate, time.Local)
	if err == nil {
		today, _ := time.ParseInLocation(domain.DateLayout, localDay(now), time.Local)
		st.DaysRemaining = int(math.Round(target.Sub(today).Hours() / 24))
	}
	return st
}
