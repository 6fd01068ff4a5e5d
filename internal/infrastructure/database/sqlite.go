package database

import (
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/billing-api/internal/config"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the SQLite store described by cfg. In-memory DSNs live as long as one
// connection stays open, so the pool always keeps an idle connection.
func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpen := cfg.MaxOpen
	if maxOpen < 1 {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)

	slog.Debug("connected to sqlite database", "dsn", cfg.DSN)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Catalog and directory
		&entity.Product{},
		&entity.Customer{},
		&entity.Staff{},

		// Transactions
		&entity.Bill{},
		&entity.BillItem{},
		&entity.Expense{},
		&entity.Purchase{},
		&entity.PurchaseItem{},

		// System
		&entity.SettingsSection{},
		&entity.BusinessProfile{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("database migrations completed")
	return nil
}
