package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/membercms/authsvc/internal/infrastructure/repositories"
)

// Open creates a new database connection
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate performs database migration for the auth tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBSession{},
		&repositories.DBResetToken{},
	); err != nil {
		return fmt.Errorf("failed to migrate auth tables: %w", err)
	}
	return nil
}
