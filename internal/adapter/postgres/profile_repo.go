package postgres

import (
	"context"

	"weightlog/internal/domain"
)

// GetProfile returns the user's profile, or nil.
func (d *DB) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var row profileRow
	err := d.gorm.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// SaveProfile inserts or updates the profile by primary key. The unique
// index on user_id rejects a second profile for the same user.
func (d *DB) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	row := profileFromDomain(p)
	return mapConflict(d.gorm.WithContext(ctx).Save(&row).Error, "profile")
}
