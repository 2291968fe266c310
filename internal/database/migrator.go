package database

import (
	"fmt"
	"os"
	"path/filepath"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/config"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
)

// RunMigrations brings the schema up to date. Postgres runs the SQL
// migrations under migrations/ via golang-migrate; the sqlite path relies on
// GORM AutoMigrate since golang-migrate's sqlite driver needs cgo anyway.
func RunMigrations(cfg *config.DatabaseConfig) error {
	if cfg.Driver == "sqlite" {
		if DB == nil {
			return fmt.Errorf("migrate: database not connected")
		}
		if err := DB.AutoMigrate(models.AllModels()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}

	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "migrations"
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(absPath))

	m, err := migrate.New(sourceURL, cfg.GetURL())
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrate: %w", err)
	}

	return nil
}
