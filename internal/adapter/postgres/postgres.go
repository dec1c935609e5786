// Package postgres implements the domain repositories on PostgreSQL using
// GORM over a lib/pq connection pool.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"weightlog/internal/domain"
)

var (
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.ProfileRepository = (*DB)(nil)
	_ domain.GoalRepository    = (*DB)(nil)
	_ domain.PhotoRepository   = (*DB)(nil)
	_ domain.UserRepository    = (*DB)(nil)
	_ domain.SessionRepository = (*SessionRepo)(nil)
)

// DB wraps a GORM handle and implements domain repository interfaces.
type DB struct {
	sql  *sql.DB
	gorm *gorm.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string, log *zap.Logger) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	g, err := gorm.Open(gormpg.New(gormpg.Config{Conn: s}), &gorm.Config{
		Logger:                                   newGormLogger(log),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s, gorm: g}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Photos keep their weight_record_id after the record is deleted, so no
// foreign keys are created.
func (d *DB) migrate(ctx context.Context) error {
	err := d.gorm.WithContext(ctx).AutoMigrate(
		&userRow{},
		&sessionRow{},
		&weightRecordRow{},
		&profileRow{},
		&goalRow{},
		&photoRow{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func newGormLogger(log *zap.Logger) gormlogger.Interface {
	if log == nil {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return gormlogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// uniqueViolation is the SQLSTATE of a unique constraint violation.
const uniqueViolation = "23505"

// mapConflict wraps unique constraint violations in domain.ErrConflict.
func mapConflict(err error, what string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s already exists", domain.ErrConflict, what)
	}
	return err
}
