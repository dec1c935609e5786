package domain

import (
	"context"
	"time"
)

// DateLayout is the calendar-date format used for record dates and photo
// grouping keys. ISO dates sort correctly as strings.
const DateLayout = "2006-01-02"

// WeightRecord is a single dated body-weight measurement in kilograms.
type WeightRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Weight    float64   `json:"weight"`
	Date      string    `json:"date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeightRepository is the port for weight record persistence.
type WeightRepository interface {
	CreateWeightRecord(ctx context.Context, rec *WeightRecord) error
	GetWeightRecord(ctx context.Context, userID, id string) (*WeightRecord, error)
	// ListWeightRecords returns all records of a user ordered by date
	// ascending, ties broken by creation time.
	ListWeightRecords(ctx context.Context, userID string) ([]WeightRecord, error)
	// ListRecentWeightRecords returns up to limit records, most recent first.
	// A negative limit means no limit.
	ListRecentWeightRecords(ctx context.Context, userID string, limit int) ([]WeightRecord, error)
	DeleteLatestWeightRecord(ctx context.Context, userID string) (*WeightRecord, error)
}
