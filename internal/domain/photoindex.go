package domain

import (
	"math"
	"sort"
	"time"
)

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// PhotoIndex correlates photos with the weight records they belong to. It
// is built from in-memory snapshots and never fails: unresolvable
// references simply drop out of the derived views.
type PhotoIndex struct {
	photos  []Photo
	records map[string]WeightRecord
}

// NewPhotoIndex indexes photos against records by record ID.
func NewPhotoIndex(photos []Photo, records []WeightRecord) *PhotoIndex {
	idx := &PhotoIndex{
		photos:  photos,
		records: make(map[string]WeightRecord, len(records)),
	}
	for _, r := range records {
		idx.records[r.ID] = r
	}
	return idx
}

// PhotoDateKey is the calendar date of the photo's creation time in UTC.
func PhotoDateKey(p Photo) string {
	return p.CreatedAt.UTC().Format(DateLayout)
}

// GroupByDate partitions the photos by PhotoDateKey. Within a bucket the
// input order is preserved.
func (idx *PhotoIndex) GroupByDate() map[string][]Photo {
	groups := make(map[string][]Photo)
	for _, p := range idx.photos {
		key := PhotoDateKey(p)
		groups[key] = append(groups[key], p)
	}
	return groups
}

// SortedDates returns the keys of groups in ascending order.
func SortedDates(groups map[string][]Photo) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PhotosForRecord returns the photos attached to recordID in input order.
func (idx *PhotoIndex) PhotosForRecord(recordID string) []Photo {
	var out []Photo
	for _, p := range idx.photos {
		if p.WeightRecordID == recordID {
			out = append(out, p)
		}
	}
	return out
}

// AvailableForComparison returns the photos whose weight record exists and
// carries a weight. Orphaned photos are excluded.
func (idx *PhotoIndex) AvailableForComparison() []Photo {
	var out []Photo
	for _, p := range idx.photos {
		if _, ok := idx.eligibleRecord(p); ok {
			out = append(out, p)
		}
	}
	return out
}

// Comparison is the before/after pairing of two photos.
type Comparison struct {
	Before       Photo        `json:"before"`
	After        Photo        `json:"after"`
	BeforeRecord WeightRecord `json:"beforeRecord"`
	AfterRecord  WeightRecord `json:"afterRecord"`
	// WeightDelta is before minus after weight; positive means weight lost.
	WeightDelta float64 `json:"weightDelta"`
	// DayDelta is the elapsed days between the photos rounded up. It is
	// negative when after predates before.
	DayDelta int `json:"dayDelta"`
}

// Compare resolves both photo IDs among the comparison-eligible photos. The
// second result is false if either does not resolve.
func (idx *PhotoIndex) Compare(beforeID, afterID string) (Comparison, bool) {
	before, beforeRec, ok := idx.resolve(beforeID)
	if !ok {
		return Comparison{}, false
	}
	after, afterRec, ok := idx.resolve(afterID)
	if !ok {
		return Comparison{}, false
	}

	elapsed := after.CreatedAt.Sub(before.CreatedAt).Milliseconds()
	return Comparison{
		Before:       before,
		After:        after,
		BeforeRecord: beforeRec,
		AfterRecord:  afterRec,
		WeightDelta:  beforeRec.Weight - afterRec.Weight,
		DayDelta:     int(math.Ceil(float64(elapsed) / float64(msPerDay))),
	}, true
}

func (idx *PhotoIndex) resolve(photoID string) (Photo, WeightRecord, bool) {
	for _, p := range idx.photos {
		if p.ID != photoID {
			continue
		}
		rec, ok := idx.eligibleRecord(p)
		return p, rec, ok
	}
	return Photo{}, WeightRecord{}, false
}

func (idx *PhotoIndex) eligibleRecord(p Photo) (WeightRecord, bool) {
	rec, ok := idx.records[p.WeightRecordID]
	if !ok || rec.Weight <= 0 {
		return WeightRecord{}, false
	}
	return rec, true
}
