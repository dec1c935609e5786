package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weightlog/internal/adapter/memory"
	"weightlog/internal/app"
	"weightlog/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestProfileUpdate_CreatesThenMerges(t *testing.T) {
	svc := app.NewProfileService(memory.New())
	ctx := context.Background()

	p, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p)

	created, err := svc.Update(ctx, "u1", app.ProfileUpdate{
		Height:        ptr(170.0),
		InitialWeight: ptr(90.0),
		Gender:        ptr("female"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := svc.Update(ctx, "u1", app.ProfileUpdate{
		TargetWeight: ptr(70.0),
		Height:       ptr(0.0),
		Gender:       ptr(""),
		BirthDate:    ptr("1990-05-01T00:00:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 170.0, *updated.Height, "zero leaves stored value")
	assert.Equal(t, 90.0, *updated.InitialWeight)
	assert.Equal(t, 70.0, *updated.TargetWeight)
	assert.Equal(t, "female", *updated.Gender, "empty leaves stored value")
	assert.Equal(t, "1990-05-01", *updated.BirthDate)
	assert.Nil(t, updated.ActivityLevel)
}

func TestProfileUpdate_Validation(t *testing.T) {
	saved := false
	repo := &mockProfileRepo{
		saveFn: func(_ context.Context, _ *domain.UserProfile) error {
			saved = true
			return nil
		},
	}
	svc := app.NewProfileService(repo)

	_, err := svc.Update(context.Background(), "u1", app.ProfileUpdate{Height: ptr(-1.0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Update(context.Background(), "u1", app.ProfileUpdate{BirthDate: ptr("yesterday")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.False(t, saved)
}
