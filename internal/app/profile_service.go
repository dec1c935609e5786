package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
)

// ProfileUpdate carries the fields of a profile write. Nil or zero fields
// leave the stored value unchanged.
type ProfileUpdate struct {
	Height        *float64
	InitialWeight *float64
	TargetWeight  *float64
	BirthDate     *string
	Gender        *string
	ActivityLevel *string
}

// ProfileService manages the per-user body profile.
type ProfileService struct {
	repo domain.ProfileRepository
}

// NewProfileService creates a ProfileService.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// Get returns the user's profile, or nil if none has been written yet.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// Update creates the profile on first write and otherwise merges the
// supplied fields into it.
func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileUpdate) (*domain.UserProfile, error) {
	for name, v := range map[string]*float64{"height": in.Height, "initialWeight": in.InitialWeight, "targetWeight": in.TargetWeight} {
		if v != nil && *v < 0 {
			return nil, invalidf("%s must not be negative", name)
		}
	}
	if in.BirthDate != nil && *in.BirthDate != "" {
		d, err := parseDay(*in.BirthDate)
		if err != nil {
			return nil, err
		}
		in.BirthDate = &d
	}

	p, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if p == nil {
		p = &domain.UserProfile{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	}

	mergeFloat(&p.Height, in.Height)
	mergeFloat(&p.InitialWeight, in.InitialWeight)
	mergeFloat(&p.TargetWeight, in.TargetWeight)
	mergeString(&p.BirthDate, in.BirthDate)
	mergeString(&p.Gender, in.Gender)
	mergeString(&p.ActivityLevel, in.ActivityLevel)
	p.UpdatedAt = now

	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func mergeFloat(dst **float64, v *float64) {
	if v == nil || *v == 0 {
		return
	}
	c := *v
	*dst = &c
}

func mergeString(dst **string, v *string) {
	if v == nil {
		return
	}
	if s := optionalString(*v); s != nil {
		*dst = s
	}
}
