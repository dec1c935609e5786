package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
)

// NewWeightRecord is the input to WeightService.Record.
type NewWeightRecord struct {
	Weight float64
	// Date is YYYY-MM-DD or an RFC 3339 timestamp; empty means today.
	Date  string
	Notes string
}

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// Record validates and stores a new weight measurement.
func (s *WeightService) Record(ctx context.Context, userID string, in NewWeightRecord) (*domain.WeightRecord, error) {
	if in.Weight <= 0 {
		return nil, invalidf("weight is required and must be > 0")
	}

	now := time.Now()
	day := localDay(now)
	if in.Date != "" {
		d, err := parseDay(in.Date)
		if err != nil {
			return nil, err
		}
		day = d
	}

	rec := &domain.WeightRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Weight:    in.Weight,
		Date:      day,
		Notes:     optionalString(in.Notes),
		CreatedAt: now.UTC(),
	}
	if err := s.repo.CreateWeightRecord(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every record of the user in chronological order.
func (s *WeightService) List(ctx context.Context, userID string) ([]domain.WeightRecord, error) {
	return s.repo.ListWeightRecords(ctx, userID)
}

// ListRecent returns the most recent weight records up to limit.
func (s *WeightService) ListRecent(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error) {
	return s.repo.ListRecentWeightRecords(ctx, userID, limit)
}

// UndoLast deletes the most recently created record and returns it, or nil
// when there was nothing to delete. Photos of the record are kept and no
// longer take part in comparisons.
func (s *WeightService) UndoLast(ctx context.Context, userID string) (*domain.WeightRecord, error) {
	return s.repo.DeleteLatestWeightRecord(ctx, userID)
}

func localDay(t time.Time) string {
	return t.In(time.Local).Format(domain.DateLayout)
}

// parseDay accepts a calendar date or a full timestamp and returns the
// calendar date.
func parseDay(s string) (string, error) {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t.Format(domain.DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(domain.DateLayout), nil
	}
	return "", invalidf("date %q must be YYYY-MM-DD", s)
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
