package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weightlog/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run postgres integration tests")
	}
	db, err := Open(dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWeightAndPhotoRoundTrip(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	userID := uuid.NewString()

	rec := &domain.WeightRecord{ID: uuid.NewString(), UserID: userID, Weight: 75.5, Date: "2024-01-01", CreatedAt: time.Now().UTC()}
	require.NoError(t, db.CreateWeightRecord(ctx, rec))

	got, err := db.GetWeightRecord(ctx, userID, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-01-01", got.Date)

	foreign, err := db.GetWeightRecord(ctx, uuid.NewString(), rec.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	photo := &domain.Photo{
		ID: uuid.NewString(), UserID: userID, WeightRecordID: rec.ID,
		Filename: uuid.NewString() + ".jpg", OriginalName: "front.jpg", FilePath: "/uploads/x.jpg",
		FileSize: 10, MimeType: "image/jpeg", CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.CreatePhoto(ctx, photo))

	photos, err := db.ListPhotos(ctx, userID, domain.PhotoFilter{WeightRecordID: rec.ID})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	require.NotNil(t, photos[0].WeightRecord)
	assert.Equal(t, 75.5, photos[0].WeightRecord.Weight)

	deleted, err := db.DeleteLatestWeightRecord(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	photos, err = db.ListPhotos(ctx, userID, domain.PhotoFilter{})
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Nil(t, photos[0].WeightRecord, "photo outlives its record")

	require.NoError(t, db.DeletePhoto(ctx, userID, photo.ID))
	p, err := db.GetPhoto(ctx, userID, photo.ID)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProfileUniquePerUser(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	userID := uuid.NewString()

	h := 170.0
	require.NoError(t, db.SaveProfile(ctx, &domain.UserProfile{ID: uuid.NewString(), UserID: userID, Height: &h}))
	assert.ErrorIs(t, db.SaveProfile(ctx, &domain.UserProfile{ID: uuid.NewString(), UserID: userID}), domain.ErrConflict)

	p, err := db.GetProfile(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 170.0, *p.Height)
}

func TestDuplicateEmailConflict(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	_, err := db.Create(ctx, email, nil, "")
	require.NoError(t, err)
	_, err = db.Create(ctx, email, nil, "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMapConflict(t *testing.T) {
	assert.NoError(t, mapConflict(nil, "user"))
	assert.ErrorIs(t, mapConflict(&pq.Error{Code: "23505"}, "user"), domain.ErrConflict)

	other := &pq.Error{Code: "23502"}
	assert.Same(t, other, mapConflict(other, "user"))

	plain := errors.New("boom")
	assert.Equal(t, plain, mapConflict(plain, "user"))
}
