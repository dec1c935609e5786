package postgres

import (
	"context"

	"weightlog/internal/domain"
)

// CreateGoal inserts a new goal.
func (d *DB) CreateGoal(ctx context.Context, g *domain.Goal) error {
	row := goalRow{
		ID: g.ID, UserID: g.UserID, Title: g.Title, Description: g.Description,
		TargetWeight: g.TargetWeight, StartDate: g.StartDate, TargetDate: g.TargetDate,
		IsActive: g.IsActive, Achieved: g.Achieved, CreatedAt: g.CreatedAt,
	}
	// Select all columns so false booleans are written instead of the defaults.
	return d.gorm.WithContext(ctx).Select("*").Create(&row).Error
}

// ListGoals returns the user's goals newest first.
func (d *DB) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	var rows []goalRow
	err := d.gorm.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Goal, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}
