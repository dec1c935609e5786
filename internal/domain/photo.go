package domain

import (
	"context"
	"io"
	"time"
)

// Photo is the metadata of an uploaded progress photo. Every photo belongs to
// exactly one weight record of the same user.
type Photo struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	WeightRecordID string          `json:"weightRecordId"`
	Filename       string          `json:"filename"`
	OriginalName   string          `json:"originalName"`
	FilePath       string          `json:"filePath"`
	FileSize       int64           `json:"fileSize"`
	MimeType       string          `json:"mimeType"`
	Description    *string         `json:"description"`
	CreatedAt      time.Time       `json:"createdAt"`
	WeightRecord   *PhotoRecordRef `json:"weightRecord,omitempty"`
}

// PhotoRecordRef is the slice of the owning weight record returned with
// photo listings.
type PhotoRecordRef struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

// PhotoFilter narrows a photo listing. An empty WeightRecordID lists all of
// the user's photos.
type PhotoFilter struct {
	WeightRecordID string
}

// PhotoRepository is the port for photo metadata persistence.
type PhotoRepository interface {
	CreatePhoto(ctx context.Context, p *Photo) error
	GetPhoto(ctx context.Context, userID, id string) (*Photo, error)
	// ListPhotos returns photos newest first, each joined with its weight
	// record when that record still exists.
	ListPhotos(ctx context.Context, userID string, f PhotoFilter) ([]Photo, error)
	DeletePhoto(ctx context.Context, userID, id string) error
}

// FileStorage stores uploaded photo bytes under generated names.
type FileStorage interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}
