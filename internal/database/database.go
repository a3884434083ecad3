// Package database owns the GORM connection and the catalog entity models.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bedimand/PreditorDeBonsFilmes/internal/config"
	"github.com/bedimand/PreditorDeBonsFilmes/internal/logger"
)

var db *gorm.DB

// Initialize sets up the database connection from configuration and runs
// schema migration for the catalog tables.
func Initialize(cfg config.DatabaseConfig) error {
	var (
		conn *gorm.DB
		err  error
	)

	switch cfg.Type {
	case "postgres":
		conn, err = connectPostgres(cfg)
	case "sqlite":
		conn, err = connectSQLite(cfg)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", cfg.Type, err)
	}

	if err := Migrate(conn); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	db = conn
	logger.Info("database initialized", "type", cfg.Type)
	return nil
}

// Migrate creates or updates the catalog tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&Movie{},
		&Genre{},
		&Language{},
		&Country{},
		&Company{},
		&Location{},
		&MovieGenre{},
		&MovieLanguage{},
		&MovieCountry{},
		&MovieCompany{},
		&MovieLocation{},
	)
}

func connectPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.Username, cfg.Password, cfg.Database, cfg.Port)
	return gorm.Open(postgres.Open(dsn), gormConfig(cfg))
}

func connectSQLite(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// SQLite leaves foreign keys off per connection unless asked.
	dsn := cfg.DatabasePath + "?_foreign_keys=on"
	return gorm.Open(sqlite.Open(dsn), gormConfig(cfg))
}

func gormConfig(cfg config.DatabaseConfig) *gorm.Config {
	level := gormlogger.Silent
	if cfg.LogQueries {
		level = gormlogger.Info
	}
	return &gorm.Config{Logger: gormlogger.Default.LogMode(level)}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// SetDB overrides the database instance; used by tests.
func SetDB(conn *gorm.DB) {
	db = conn
}
