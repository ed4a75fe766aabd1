package repository

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hpmalinova/Household-Manager/config"
	"github.com/hpmalinova/Household-Manager/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database. It does not migrate.
func Open(cfg config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.ConnString())
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.ConnString())
	case config.DriverSQLite:
		path := cfg.ConnString()
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSQLite {
		// a single writer avoids "database is locked" between requests
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetConnMaxLifetime(time.Minute * 5)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(time.Minute * 3)
	}

	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.GroupMember{},
		&model.Expense{},
		&model.Contribution{},
		&model.Task{},
	)
}

// NewDatabase opens and migrates the database. The returned cleanup closes it.
func NewDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := Open(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := Migrate(db); err != nil {
		closeDB(db)
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Storage initialized", "driver", cfg.Database.Driver)

	return db, func() { closeDB(db) }, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}
