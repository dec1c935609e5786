package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"weightlog/internal/domain"
)

// GetByEmail retrieves a user by email, or nil if there is none.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	err := d.gorm.WithContext(ctx).Where("email = ?", email).First(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// GetByID retrieves a user by ID, or nil if there is none.
func (d *DB) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var row userRow
	err := d.gorm.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, email string, name *string, passwordHash string) (*domain.User, error) {
	row := userRow{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := d.gorm.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, mapConflict(err, "user")
	}
	return row.toDomain(), nil
}

// Count returns the total number of users.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int64
	err := d.gorm.WithContext(ctx).Model(&userRow{}).Count(&count).Error
	return int(count), err
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID, token, userAgent, ip string, expiresAt time.Time) error {
	return r.db.gorm.WithContext(ctx).Create(&sessionRow{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}).Error
}

// GetByToken retrieves a session by token, or nil if there is none.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var row sessionRow
	err := r.db.gorm.WithContext(ctx).Where("token = ?", token).First(&row).Error
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		UserAgent: row.UserAgent,
		IP:        row.IP,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.db.gorm.WithContext(ctx).Where("token = ?", token).Delete(&sessionRow{}).Error
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	return r.db.gorm.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&sessionRow{}).Error
}
