package postgres

import (
	"context"

	"gorm.io/gorm"

	"weightlog/internal/domain"
)

// CreateWeightRecord inserts a new weight record.
func (d *DB) CreateWeightRecord(ctx context.Context, rec *domain.WeightRecord) error {
	row := weightRecordFromDomain(rec)
	return d.gorm.WithContext(ctx).Create(&row).Error
}

// GetWeightRecord returns the user's record with the given ID, or nil.
func (d *DB) GetWeightRecord(ctx context.Context, userID, id string) (*domain.WeightRecord, error) {
	var row weightRecordRow
	err := d.gorm.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := row.toDomain()
	return &rec, nil
}

// ListWeightRecords returns the user's records by date ascending.
func (d *DB) ListWeightRecords(ctx context.Context, userID string) ([]domain.WeightRecord, error) {
	return d.listWeightRecords(ctx, userID, "date ASC, created_at ASC", -1)
}

// ListRecentWeightRecords returns the user's most recent records up to limit.
func (d *DB) ListRecentWeightRecords(ctx context.Context, userID string, limit int) ([]domain.WeightRecord, error) {
	return d.listWeightRecords(ctx, userID, "date DESC, created_at DESC", limit)
}

func (d *DB) listWeightRecords(ctx context.Context, userID, order string, limit int) ([]domain.WeightRecord, error) {
	var rows []weightRecordRow
	err := d.gorm.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(order).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.WeightRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// DeleteLatestWeightRecord removes the user's most recently created record
// and returns it, or nil when the user has none.
func (d *DB) DeleteLatestWeightRecord(ctx context.Context, userID string) (*domain.WeightRecord, error) {
	var deleted *domain.WeightRecord
	err := d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row weightRecordRow
		err := tx.Where("user_id = ?", userID).Order("created_at DESC").First(&row).Error
		if isNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		rec := row.toDomain()
		deleted = &rec
		return nil
	})
	return deleted, err
}
