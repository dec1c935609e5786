package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"weightlog/internal/domain"
)

type mockWeightRepo struct {
	createFn     func(ctx context.Context, rec *domain.WeightRecord) error
	getFn        func(ctx context.Context, userID, id string) (*domain.WeightRecord, error)
	listFn       func(ctx context.Context, userID string) ([]domain.WeightRecord, error)
	listRecentFn func(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error)
	deleteFn     func(ctx context.Context, userID string) (*domain.WeightRecord, error)
}

func (m *mockWeightRepo) CreateWeightRecord(ctx context.Context, rec *domain.WeightRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, rec)
	}
	return nil
}

func (m *mockWeightRepo) GetWeightRecord(ctx context.Context, userID, id string) (*domain.WeightRecord, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListWeightRecords(ctx context.Context, userID string) ([]domain.WeightRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListRecentWeightRecords(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) DeleteLatestWeightRecord(ctx context.Context, userID string) (*domain.WeightRecord, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil, nil
}

type mockProfileRepo struct {
	getFn  func(ctx context.Context, userID string) (*domain.UserProfile, error)
	saveFn func(ctx context.Context, p *domain.UserProfile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

type mockGoalRepo struct {
	createFn func(ctx context.Context, g *domain.Goal) error
	listFn   func(ctx context.Context, userID string) ([]domain.Goal, error)
}

func (m *mockGoalRepo) CreateGoal(ctx context.Context, g *domain.Goal) error {
	if m.createFn != nil {
		return m.createFn(ctx, g)
	}
	return nil
}

func (m *mockGoalRepo) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockPhotoRepo struct {
	createFn func(ctx context.Context, p *domain.Photo) error
	getFn    func(ctx context.Context, userID, id string) (*domain.Photo, error)
	listFn   func(ctx context.Context, userID string, f domain.PhotoFilter) ([]domain.Photo, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (m *mockPhotoRepo) CreatePhoto(ctx context.Context, p *domain.Photo) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPhotoRepo) GetPhoto(ctx context.Context, userID, id string) (*domain.Photo, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return nil, nil
}

func (m *mockPhotoRepo) ListPhotos(ctx context.Context, userID string, f domain.PhotoFilter) ([]domain.Photo, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, f)
	}
	return nil, nil
}

func (m *mockPhotoRepo) DeletePhoto(ctx context.Context, userID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return nil
}

// memFiles is a FileStorage holding file contents in a map.
type memFiles struct {
	mu      sync.Mutex
	files   map[string][]byte
	types   map[string]string
	saveErr error
}

func newMemFiles() *memFiles {
	return &memFiles{files: map[string][]byte{}, types: map[string]string{}}
}

func (f *memFiles) Save(_ context.Context, name string, r io.Reader, _ int64, contentType string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[name] = b
	f.types[name] = contentType
	return nil
}

func (f *memFiles) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.files[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *memFiles) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[name]; !ok {
		return errors.New("file does not exist")
	}
	delete(f.files, name)
	return nil
}

func (f *memFiles) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}
