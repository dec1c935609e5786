package app

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"weightlog/internal/domain"
)

// UserOverview is a user together with all of their tracking data.
type UserOverview struct {
	User          *domain.User          `json:"user"`
	Profile       *domain.UserProfile   `json:"profile"`
	WeightRecords []domain.WeightRecord `json:"weightRecords"`
	Goals         []domain.Goal         `json:"goals"`
}

// UserService handles account registration and account-wide reads.
type UserService struct {
	users    domain.UserRepository
	profiles domain.ProfileRepository
	weights  domain.WeightRepository
	goals    domain.GoalRepository
}

// NewUserService creates a UserService.
func NewUserService(users domain.UserRepository, profiles domain.ProfileRepository, weights domain.WeightRepository, goals domain.GoalRepository) *UserService {
	return &UserService{users: users, profiles: profiles, weights: weights, goals: goals}
}

// Register creates a user. Password is optional; users without one can only
// sign in through SSO or forward auth.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalidf("email is required")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user already exists", domain.ErrConflict)
	}

	var hash string
	if password != "" {
		b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(b)
	}
	return s.users.Create(ctx, email, optionalString(name), hash)
}

// Overview loads the user with profile, weight records and goals.
func (s *UserService) Overview(ctx context.Context, userID string) (*UserOverview, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFoundf("user not found")
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.weights.ListWeightRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserOverview{User: user, Profile: profile, WeightRecords: records, Goals: goals}, nil
}
