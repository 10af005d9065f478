package database

import (
	"fmt"
	"log/slog"

	"github.com/sangkips/retail-api/internal/config"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	return Open(cfg.DSN())
}

// Open connects to the database behind dsn
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// the mirror writes one row at a time
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(5)

	slog.Info("connected to PostgreSQL database", "op", "database.Open")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the mirror tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.SnapshotRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("database migrations completed", "op", "database.AutoMigrate")
	return nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
