package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weightlog/internal/app"
	"weightlog/internal/domain"
)

func TestGoalCreate(t *testing.T) {
	var stored *domain.Goal
	repo := &mockGoalRepo{
		createFn: func(_ context.Context, g *domain.Goal) error {
			stored = g
			return nil
		},
	}
	svc := app.NewGoalService(repo)

	g, err := svc.Create(context.Background(), "u1", app.NewGoal{
		Title:        " Summer ",
		TargetWeight: 70,
		StartDate:    "2024-01-01",
		TargetDate:   "2024-06-01",
	})
	require.NoError(t, err)
	assert.Same(t, stored, g)
	assert.Equal(t, "Summer", g.Title)
	assert.True(t, g.IsActive)
	assert.False(t, g.Achieved)
	assert.Nil(t, g.Description)
}

func TestGoalCreate_Validation(t *testing.T) {
	svc := app.NewGoalService(&mockGoalRepo{})
	valid := app.NewGoal{Title: "x", TargetWeight: 70, StartDate: "2024-01-01", TargetDate: "2024-06-01"}

	tests := []struct {
		name   string
		mutate func(g *app.NewGoal)
	}{
		{"missing title", func(g *app.NewGoal) { g.Title = "  " }},
		{"zero target", func(g *app.NewGoal) { g.TargetWeight = 0 }},
		{"missing start", func(g *app.NewGoal) { g.StartDate = "" }},
		{"bad target date", func(g *app.NewGoal) { g.TargetDate = "June" }},
		{"target before start", func(g *app.NewGoal) { g.TargetDate = "2023-12-31" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), "u1", in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
