package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
)

// NewGoal is the input to GoalService.Create.
type NewGoal struct {
	Title        string
	Description  string
	TargetWeight float64
	StartDate    string
	TargetDate   string
}

// GoalService manages weight goals.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// List returns the user's goals newest first.
func (s *GoalService) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

// Create validates and stores a new active goal.
func (s *GoalService) Create(ctx context.Context, userID string, in NewGoal) (*domain.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.TargetWeight <= 0 || in.StartDate == "" || in.TargetDate == "" {
		return nil, invalidf("title, target weight, start date, and target date are required")
	}
	start, err := parseDay(in.StartDate)
	if err != nil {
		return nil, err
	}
	target, err := parseDay(in.TargetDate)
	if err != nil {
		return nil, err
	}
	if target < start {
		return nil, invalidf("target date must not be before start date")
	}

	g := &domain.Goal{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		Description:  optionalString(in.Description),
		TargetWeight: in.TargetWeight,
		StartDate:    start,
		TargetDate:   target,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}
