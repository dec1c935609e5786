package domain

import (
	"context"
	"time"
)

// UserProfile holds the optional body data used by the progress metrics.
// There is at most one profile per user.
type UserProfile struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Height        *float64  `json:"height"`
	InitialWeight *float64  `json:"initialWeight"`
	TargetWeight  *float64  `json:"targetWeight"`
	BirthDate     *string   `json:"birthDate"`
	Gender        *string   `json:"gender"`
	ActivityLevel *string   `json:"activityLevel"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProfileRepository is the port for profile persistence. SaveProfile
// inserts or replaces the profile keyed by UserID and fails with
// ErrConflict when another profile already exists for that user.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	SaveProfile(ctx context.Context, p *UserProfile) error
}
