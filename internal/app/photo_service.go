package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"weightlog/internal/domain"
)

// DefaultMaxPhotoBytes is the upload size limit used when none is configured.
const DefaultMaxPhotoBytes = 10 * 1024 * 1024

// UploadURLPrefix is the public path under which stored photos are served.
const UploadURLPrefix = "/uploads/"

// sniffLen is how much of an upload is inspected to detect its type.
const sniffLen = 3072

var allowedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp"}

// PhotoUpload is the input to PhotoService.Upload.
type PhotoUpload struct {
	WeightRecordID string
	OriginalName   string
	Description    string
	Size           int64
	Content        io.Reader
}

// DateGroup is one calendar day of the photo gallery.
type DateGroup struct {
	Date   string         `json:"date"`
	Photos []domain.Photo `json:"photos"`
}

// Gallery is the user's photos grouped by day, oldest day first.
type Gallery struct {
	Dates      []DateGroup    `json:"dates"`
	PhotoCount int            `json:"photoCount"`
	DayCount   int            `json:"dayCount"`
	Comparable []domain.Photo `json:"comparable"`
}

// PhotoService handles progress photo upload, listing, removal and
// before/after comparison.
type PhotoService struct {
	photos   domain.PhotoRepository
	weights  domain.WeightRepository
	files    domain.FileStorage
	log      *zap.Logger
	maxBytes int64
}

// NewPhotoService creates a PhotoService. A non-positive maxBytes selects
// DefaultMaxPhotoBytes.
func NewPhotoService(photos domain.PhotoRepository, weights domain.WeightRepository, files domain.FileStorage, log *zap.Logger, maxBytes int64) *PhotoService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPhotoBytes
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PhotoService{photos: photos, weights: weights, files: files, log: log, maxBytes: maxBytes}
}

// Upload stores the file and its metadata. The weight record must exist and
// belong to userID.
func (s *PhotoService) Upload(ctx context.Context, userID string, up PhotoUpload) (*domain.Photo, error) {
	if up.Content == nil || up.OriginalName == "" || up.WeightRecordID == "" {
		return nil, invalidf("file and weightRecordId are required")
	}

	rec, err := s.weights.GetWeightRecord(ctx, userID, up.WeightRecordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, notFoundf("weight record not found or does not belong to user")
	}

	if up.Size > s.maxBytes {
		return nil, invalidf("file too large, maximum size is %d MB", s.maxBytes/(1024*1024))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mtype := mimetype.Detect(head)
	if !mimetype.EqualsAny(mtype.String(), allowedPhotoTypes...) {
		return nil, invalidf("invalid file type, only JPEG, PNG, and WebP are allowed")
	}

	ext := strings.ToLower(filepath.Ext(up.OriginalName))
	if ext == "" {
		ext = mtype.Extension()
	}
	filename := uuid.NewString() + ext
	size := up.Size
	if size <= 0 {
		size = -1
	}

	// One byte past the limit is enough to detect an oversized body.
	body := &countingReader{r: io.LimitReader(io.MultiReader(bytes.NewReader(head), up.Content), s.maxBytes+1)}
	if err := s.files.Save(ctx, filename, body, size, mtype.String()); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}
	switch {
	case body.n > s.maxBytes:
		s.removeFile(ctx, filename)
		return nil, invalidf("file too large, maximum size is %d MB", s.maxBytes/(1024*1024))
	case up.Size > 0 && body.n != up.Size:
		s.removeFile(ctx, filename)
		return nil, invalidf("upload size mismatch: declared %d bytes, received %d", up.Size, body.n)
	}

	p := &domain.Photo{
		ID:             uuid.NewString(),
		UserID:         userID,
		WeightRecordID: rec.ID,
		Filename:       filename,
		OriginalName:   path.Base(filepath.ToSlash(up.OriginalName)),
		FilePath:       UploadURLPrefix + filename,
		FileSize:       body.n,
		MimeType:       mtype.String(),
		Description:    optionalString(up.Description),
		CreatedAt:      time.Now().UTC(),
		WeightRecord:   &domain.PhotoRecordRef{Date: rec.Date, Weight: rec.Weight},
	}
	if err := s.photos.CreatePhoto(ctx, p); err != nil {
		s.removeFile(ctx, filename)
		return nil, err
	}
	return p, nil
}

// removeFile deletes a stored file whose upload was rejected after writing.
func (s *PhotoService) removeFile(ctx context.Context, filename string) {
	if err := s.files.Delete(ctx, filename); err != nil {
		s.log.Warn("remove rejected photo file", zap.String("filename", filename), zap.Error(err))
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// List returns the user's photos newest first, optionally only those of one
// weight record.
func (s *PhotoService) List(ctx context.Context, userID, weightRecordID string) ([]domain.Photo, error) {
	return s.photos.ListPhotos(ctx, userID, domain.PhotoFilter{WeightRecordID: weightRecordID})
}

// Delete removes the stored file and the metadata row. A failure to remove
// the file is logged and does not stop the row from being deleted.
func (s *PhotoService) Delete(ctx context.Context, userID, photoID string) error {
	p, err := s.photos.GetPhoto(ctx, userID, photoID)
	if err != nil {
		return err
	}
	if p == nil {
		return notFoundf("photo not found")
	}

	if err := s.files.Delete(ctx, p.Filename); err != nil {
		s.log.Warn("delete photo file", zap.String("photo_id", p.ID), zap.String("filename", p.Filename), zap.Error(err))
	}
	return s.photos.DeletePhoto(ctx, userID, photoID)
}

// Open streams a stored photo owned by userID.
func (s *PhotoService) Open(ctx context.Context, userID, filename string) (io.ReadCloser, *domain.Photo, error) {
	photos, err := s.photos.ListPhotos(ctx, userID, domain.PhotoFilter{})
	if err != nil {
		return nil, nil, err
	}
	for i := range photos {
		if photos[i].Filename != filename {
			continue
		}
		rc, err := s.files.Open(ctx, filename)
		if err != nil {
			return nil, nil, err
		}
		return rc, &photos[i], nil
	}
	return nil, nil, notFoundf("photo not found")
}

// Gallery groups the user's photos by the day they were taken.
func (s *PhotoService) Gallery(ctx context.Context, userID string) (*Gallery, error) {
	idx, photos, err := s.index(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := idx.GroupByDate()
	dates := domain.SortedDates(groups)
	g := &Gallery{
		Dates:      make([]DateGroup, 0, len(dates)),
		PhotoCount: len(photos),
		DayCount:   len(dates),
		Comparable: idx.AvailableForComparison(),
	}
	for _, d := range dates {
		g.Dates = append(g.Dates, DateGroup{Date: d, Photos: groups[d]})
	}
	if g.Comparable == nil {
		g.Comparable = []domain.Photo{}
	}
	return g, nil
}

// Compare pairs two of the user's photos. Both must resolve to photos whose
// weight record still exists.
func (s *PhotoService) Compare(ctx context.Context, userID, beforeID, afterID string) (*domain.Comparison, error) {
	if beforeID == "" || afterID == "" {
		return nil, invalidf("before and after photo ids are required")
	}
	idx, _, err := s.index(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, ok := idx.Compare(beforeID, afterID)
	if !ok {
		return nil, notFoundf("photos not available for comparison")
	}
	return &c, nil
}

func (s *PhotoService) index(ctx context.Context, userID string) (*domain.PhotoIndex, []domain.Photo, error) {
	photos, err := s.photos.ListPhotos(ctx, userID, domain.PhotoFilter{})
	if err != nil {
		return nil, nil, err
	}
	records, err := s.weights.ListWeightRecords(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return domain.NewPhotoIndex(photos, records), photos, nil
}
