// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	weights  []domain.WeightRecord
	profiles map[string]domain.UserProfile
	goals    []domain.Goal
	photos   []domain.Photo
	users    []*domain.User
	sessions map[string]*domain.Session
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		profiles: make(map[string]domain.UserProfile),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var (
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.ProfileRepository = (*DB)(nil)
	_ domain.GoalRepository    = (*DB)(nil)
	_ domain.PhotoRepository   = (*DB)(nil)
	_ domain.UserRepository    = (*DB)(nil)
	_ domain.SessionRepository = (*SessionRepo)(nil)
)

// --- WeightRepository ---

// CreateWeightRecord stores a weight record.
func (db *DB) CreateWeightRecord(_ context.Context, rec *domain.WeightRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weights = append(db.weights, *rec)
	return nil
}

// GetWeightRecord returns the user's record with the given ID, or nil.
func (db *DB) GetWeightRecord(_ context.Context, userID, id string) (*domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, w := range db.weights {
		if w.ID == id && w.UserID == userID {
			ret := w
			return &ret, nil
		}
	}
	return nil, nil
}

// ListWeightRecords lists the user's records by date ascending.
func (db *DB) ListWeightRecords(_ context.Context, userID string) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userWeightsLocked(userID)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ListRecentWeightRecords lists the user's most recent records, newest first.
// A negative limit returns all of them.
func (db *DB) ListRecentWeightRecords(_ context.Context, userID string, limit int) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userWeightsLocked(userID)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date > result[j].Date
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteLatestWeightRecord deletes the user's most recently created record.
func (db *DB) DeleteLatestWeightRecord(_ context.Context, userID string) (*domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx := -1
	for i, w := range db.weights {
		if w.UserID != userID {
			continue
		}
		if lastIdx == -1 || w.CreatedAt.After(db.weights[lastIdx].CreatedAt) {
			lastIdx = i
		}
	}
	if lastIdx == -1 {
		return nil, nil
	}

	deleted := db.weights[lastIdx]
	db.weights = append(db.weights[:lastIdx], db.weights[lastIdx+1:]...)
	return &deleted, nil
}

func (db *DB) userWeightsLocked(userID string) []domain.WeightRecord {
	out := make([]domain.WeightRecord, 0)
	for _, w := range db.weights {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out
}

// --- ProfileRepository ---

// GetProfile returns the user's profile, or nil.
func (db *DB) GetProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SaveProfile inserts or replaces the profile for p.UserID.
func (db *DB) SaveProfile(_ context.Context, p *domain.UserProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if existing, ok := db.profiles[p.UserID]; ok && existing.ID != p.ID {
		return fmt.Errorf("%w: profile already exists for user", domain.ErrConflict)
	}
	db.profiles[p.UserID] = *p
	return nil
}

// --- GoalRepository ---

// CreateGoal stores a goal.
func (db *DB) CreateGoal(_ context.Context, g *domain.Goal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.goals = append(db.goals, *g)
	return nil
}

// ListGoals lists the user's goals newest first.
func (db *DB) ListGoals(_ context.Context, userID string) ([]domain.Goal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Goal, 0)
	for _, g := range db.goals {
		if g.UserID == userID {
			result = append(result, g)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// --- PhotoRepository ---

// CreatePhoto stores photo metadata. The joined record is not persisted.
func (db *DB) CreatePhoto(_ context.Context, p *domain.Photo) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.photos {
		if existing.Filename == p.Filename {
			return fmt.Errorf("%w: photo filename already exists", domain.ErrConflict)
		}
	}
	stored := *p
	stored.WeightRecord = nil
	db.photos = append(db.photos, stored)
	return nil
}

// GetPhoto returns the user's photo with the given ID, or nil.
func (db *DB) GetPhoto(_ context.Context, userID, id string) (*domain.Photo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, p := range db.photos {
		if p.ID == id && p.UserID == userID {
			ret := db.withRecordLocked(p)
			return &ret, nil
		}
	}
	return nil, nil
}

// ListPhotos lists the user's photos newest first.
func (db *DB) ListPhotos(_ context.Context, userID string, f domain.PhotoFilter) ([]domain.Photo, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.Photo, 0)
	for _, p := range db.photos {
		if p.UserID != userID {
			continue
		}
		if f.WeightRecordID != "" && p.WeightRecordID != f.WeightRecordID {
			continue
		}
		result = append(result, db.withRecordLocked(p))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// DeletePhoto removes the user's photo metadata. Deleting a missing photo
// is not an error.
func (db *DB) DeletePhoto(_ context.Context, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, p := range db.photos {
		if p.ID == id && p.UserID == userID {
			db.photos = append(db.photos[:i], db.photos[i+1:]...)
			return nil
		}
	}
	return nil
}

func (db *DB) withRecordLocked(p domain.Photo) domain.Photo {
	for _, w := range db.weights {
		if w.ID == p.WeightRecordID {
			p.WeightRecord = &domain.PhotoRecordRef{Date: w.Date, Weight: w.Weight}
			break
		}
	}
	return p
}

// --- UserRepository ---

// GetByEmail retrieves a user by email, or nil.
func (db *DB) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID, or nil.
func (db *DB) GetByID(_ context.Context, id string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(_ context.Context, email string, name *string, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: user already exists", domain.ErrConflict)
		}
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(_ context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(_ context.Context, userID, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token, or nil.
func (r *SessionRepo) GetByToken(_ context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		ret := *s
		return &ret, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(_ context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
