package postgres

import (
	"context"

	"weightlog/internal/domain"
)

// CreatePhoto inserts photo metadata.
func (d *DB) CreatePhoto(ctx context.Context, p *domain.Photo) error {
	row := photoFromDomain(p)
	return mapConflict(d.gorm.WithContext(ctx).Omit("WeightRecord").Create(&row).Error, "photo")
}

// GetPhoto returns the user's photo, or nil.
func (d *DB) GetPhoto(ctx context.Context, userID, id string) (*domain.Photo, error) {
	var row photoRow
	err := d.gorm.WithContext(ctx).
		Preload("WeightRecord").
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := row.toDomain()
	return &p, nil
}

// ListPhotos returns the user's photos newest first with their weight
// record's date and weight.
func (d *DB) ListPhotos(ctx context.Context, userID string, f domain.PhotoFilter) ([]domain.Photo, error) {
	q := d.gorm.WithContext(ctx).Preload("WeightRecord").Where("user_id = ?", userID)
	if f.WeightRecordID != "" {
		q = q.Where("weight_record_id = ?", f.WeightRecordID)
	}

	var rows []photoRow
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Photo, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// DeletePhoto removes the user's photo metadata.
func (d *DB) DeletePhoto(ctx context.Context, userID, id string) error {
	return d.gorm.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&photoRow{}).Error
}
