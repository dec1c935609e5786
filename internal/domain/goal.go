package domain

import (
	"context"
	"time"
)

// Goal is an explicit weight target with a deadline.
type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	TargetWeight float64   `json:"targetWeight"`
	StartDate    string    `json:"startDate"`
	TargetDate   string    `json:"targetDate"`
	IsActive     bool      `json:"isActive"`
	Achieved     bool      `json:"achieved"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GoalRepository is the port for goal persistence.
type GoalRepository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	// ListGoals returns the user's goals newest first.
	ListGoals(ctx context.Context, userID string) ([]Goal, error)
}
