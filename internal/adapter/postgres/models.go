package postgres

import (
	"time"

	"weightlog/internal/domain"
)

type userRow struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"type:text;uniqueIndex;not null"`
	Name         *string
	PasswordHash string `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() *domain.User {
	return &domain.User{ID: r.ID, Email: r.Email, Name: r.Name, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

type sessionRow struct {
	Token     string    `gorm:"primaryKey;type:text"`
	UserID    string    `gorm:"type:text;not null;index"`
	UserAgent string    `gorm:"type:text"`
	IP        string    `gorm:"type:text"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

func (sessionRow) TableName() string { return "sessions" }

type weightRecordRow struct {
	ID        string  `gorm:"primaryKey;type:text"`
	UserID    string  `gorm:"type:text;not null;index:idx_weight_records_user_date,priority:1"`
	Weight    float64 `gorm:"not null"`
	Date      string  `gorm:"type:text;not null;index:idx_weight_records_user_date,priority:2"`
	Notes     *string
	CreatedAt time.Time
}

func (weightRecordRow) TableName() string { return "weight_records" }

func (r weightRecordRow) toDomain() domain.WeightRecord {
	return domain.WeightRecord{ID: r.ID, UserID: r.UserID, Weight: r.Weight, Date: r.Date, Notes: r.Notes, CreatedAt: r.CreatedAt}
}

func weightRecordFromDomain(w *domain.WeightRecord) weightRecordRow {
	return weightRecordRow{ID: w.ID, UserID: w.UserID, Weight: w.Weight, Date: w.Date, Notes: w.Notes, CreatedAt: w.CreatedAt}
}

type profileRow struct {
	ID            string `gorm:"primaryKey;type:text"`
	UserID        string `gorm:"type:text;not null;uniqueIndex"`
	Height        *float64
	InitialWeight *float64
	TargetWeight  *float64
	BirthDate     *string
	Gender        *string
	ActivityLevel *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (profileRow) TableName() string { return "user_profiles" }

func (r profileRow) toDomain() *domain.UserProfile {
	return &domain.UserProfile{
		ID: r.ID, UserID: r.UserID,
		Height: r.Height, InitialWeight: r.InitialWeight, TargetWeight: r.TargetWeight,
		BirthDate: r.BirthDate, Gender: r.Gender, ActivityLevel: r.ActivityLevel,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func profileFromDomain(p *domain.UserProfile) profileRow {
	return profileRow{
		ID: p.ID, UserID: p.UserID,
		Height: p.Height, InitialWeight: p.InitialWeight, TargetWeight: p.TargetWeight,
		BirthDate: p.BirthDate, Gender: p.Gender, ActivityLevel: p.ActivityLevel,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

type goalRow struct {
	ID           string `gorm:"primaryKey;type:text"`
	UserID       string `gorm:"type:text;not null;index"`
	Title        string `gorm:"type:text;not null"`
	Description  *string
	TargetWeight float64 `gorm:"not null"`
	StartDate    string  `gorm:"type:text;not null"`
	TargetDate   string  `gorm:"type:text;not null"`
	IsActive     bool    `gorm:"not null;default:true"`
	Achieved     bool    `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (goalRow) TableName() string { return "goals" }

func (r goalRow) toDomain() domain.Goal {
	return domain.Goal{
		ID: r.ID, UserID: r.UserID, Title: r.Title, Description: r.Description,
		TargetWeight: r.TargetWeight, StartDate: r.StartDate, TargetDate: r.TargetDate,
		IsActive: r.IsActive, Achieved: r.Achieved, CreatedAt: r.CreatedAt,
	}
}

type photoRow struct {
	ID             string `gorm:"primaryKey;type:text"`
	UserID         string `gorm:"type:text;not null;index"`
	WeightRecordID string `gorm:"type:text;not null;index"`
	Filename       string `gorm:"type:text;not null;uniqueIndex"`
	OriginalName   string `gorm:"type:text;not null"`
	FilePath       string `gorm:"type:text;not null"`
	FileSize       int64  `gorm:"not null"`
	MimeType       string `gorm:"type:text;not null"`
	Description    *string
	CreatedAt      time.Time `gorm:"index"`

	WeightRecord *weightRecordRow `gorm:"foreignKey:WeightRecordID"`
}

func (photoRow) TableName() string { return "photos" }

func (r photoRow) toDomain() domain.Photo {
	p := domain.Photo{
		ID: r.ID, UserID: r.UserID, WeightRecordID: r.WeightRecordID,
		Filename: r.Filename, OriginalName: r.OriginalName, FilePath: r.FilePath,
		FileSize: r.FileSize, MimeType: r.MimeType, Description: r.Description,
		CreatedAt: r.CreatedAt,
	}
	if r.WeightRecord != nil {
		p.WeightRecord = &domain.PhotoRecordRef{Date: r.WeightRecord.Date, Weight: r.WeightRecord.Weight}
	}
	return p
}

func photoFromDomain(p *domain.Photo) photoRow {
	return photoRow{
		ID: p.ID, UserID: p.UserID, WeightRecordID: p.WeightRecordID,
		Filename: p.Filename, OriginalName: p.OriginalName, FilePath: p.FilePath,
		FileSize: p.FileSize, MimeType: p.MimeType, Description: p.Description,
		CreatedAt: p.CreatedAt,
	}
}
