package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weightlog/internal/domain"
)

func fixturePhotos() ([]domain.Photo, []domain.WeightRecord) {
	records := []domain.WeightRecord{
		{ID: "r1", Weight: 75.5, Date: "2024-01-01"},
		{ID: "r2", Weight: 72.8, Date: "2024-01-29"},
	}
	photos := []domain.Photo{
		{ID: "p1", WeightRecordID: "r1", CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "p2", WeightRecordID: "r1", CreatedAt: time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC)},
		{ID: "p3", WeightRecordID: "r2", CreatedAt: time.Date(2024, 1, 29, 10, 0, 0, 0, time.UTC)},
		{ID: "p4", WeightRecordID: "gone", CreatedAt: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)},
	}
	return photos, records
}

func TestPhotoIndex_GroupByDateIsPartition(t *testing.T) {
	photos, records := fixturePhotos()
	groups := domain.NewPhotoIndex(photos, records).GroupByDate()

	seen := map[string]int{}
	total := 0
	for _, bucket := range groups {
		for _, p := range bucket {
			seen[p.ID]++
			total++
		}
	}
	assert.Equal(t, len(photos), total)
	for _, p := range photos {
		assert.Equal(t, 1, seen[p.ID], "photo %s", p.ID)
	}

	require.Len(t, groups["2024-01-01"], 2)
	assert.Equal(t, "p1", groups["2024-01-01"][0].ID)
	assert.Equal(t, "p2", groups["2024-01-01"][1].ID)
	assert.Equal(t, []string{"2024-01-01", "2024-01-29", "2024-02-03"}, domain.SortedDates(groups))
}

func TestPhotoIndex_PhotosForRecord(t *testing.T) {
	photos, records := fixturePhotos()
	idx := domain.NewPhotoIndex(photos, records)

	got := idx.PhotosForRecord("r1")
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
	assert.Empty(t, idx.PhotosForRecord("missing"))
}

func TestPhotoIndex_AvailableForComparisonDropsOrphans(t *testing.T) {
	photos, records := fixturePhotos()
	got := domain.NewPhotoIndex(photos, records).AvailableForComparison()

	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids)
}

func TestPhotoIndex_Compare(t *testing.T) {
	photos, records := fixturePhotos()
	idx := domain.NewPhotoIndex(photos, records)

	c, ok := idx.Compare("p1", "p3")
	require.True(t, ok)
	assert.InDelta(t, 2.7, c.WeightDelta, 1e-9)
	assert.Equal(t, 28, c.DayDelta)

	// 2024-01-01 18:30 -> 2024-01-29 10:00 is 27.6 days, rounded up.
	c, ok = idx.Compare("p2", "p3")
	require.True(t, ok)
	assert.Equal(t, 28, c.DayDelta)

	rev, ok := idx.Compare("p3", "p1")
	require.True(t, ok)
	assert.Equal(t, -28, rev.DayDelta)
}

func TestPhotoIndex_CompareAntisymmetric(t *testing.T) {
	photos, records := fixturePhotos()
	idx := domain.NewPhotoIndex(photos, records)

	ab, ok := idx.Compare("p2", "p3")
	require.True(t, ok)
	ba, ok := idx.Compare("p3", "p2")
	require.True(t, ok)
	assert.Equal(t, -ab.WeightDelta, ba.WeightDelta)
}

func TestPhotoIndex_CompareUnresolved(t *testing.T) {
	photos, records := fixturePhotos()
	idx := domain.NewPhotoIndex(photos, records)

	_, ok := idx.Compare("p1", "nope")
	assert.False(t, ok)
	_, ok = idx.Compare("p4", "p1")
	assert.False(t, ok, "orphaned photo must not be comparable")
}
