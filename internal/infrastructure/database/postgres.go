package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sangkips/billcraft-api/internal/config"
	"github.com/sangkips/billcraft-api/internal/domain/entity"
)

// NewPostgresDB opens a PostgreSQL connection from an explicit config
// object. Connection settings are fixed at construction; changing them
// means calling Reconfigure, never mutating ambient process state.
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Surfaces unique-constraint violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// Reconfigure closes the current connection and opens a new one with
// the given config. This is the explicit lifecycle replacement for
// runtime connection-string mutation.
func Reconfigure(current *gorm.DB, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if current != nil {
		if sqlDB, err := current.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				return nil, fmt.Errorf("failed to close existing connection: %w", err)
			}
		}
	}
	return NewPostgresDB(cfg)
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.User{},
		&entity.TeamMember{},
		&entity.PasswordResetToken{},

		// Catalog entities
		&entity.Service{},
		&entity.Package{},

		// Profile entities
		&entity.CompanyProfile{},
		&entity.PaymentMethod{},

		// Invoice entities
		&entity.TemplateConfig{},
		&entity.Invoice{},
		&entity.InvoiceLineItem{},
		&entity.InvoiceSequence{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
