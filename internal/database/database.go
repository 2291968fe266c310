package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/config"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database selected by cfg.Driver. Postgres is the
// production backend; sqlite covers local development and tests, which is
// also what the system originally shipped with.
func Connect(cfg *config.DatabaseConfig) error {
	gormLogger := logger.Default.LogMode(logger.Warn)

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "qrmealpass.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
				return fmt.Errorf("create db dir: %w", mkErr)
			}
		}
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger:         gormLogger,
			TranslateError: true,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
	default:
		db, err = gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
			Logger:         gormLogger,
			TranslateError: true,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
	}
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	connMaxLifetime, err := cfg.GetConnMaxLifetime()
	if err != nil {
		return fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}
	if connMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	log.WithField("driver", driverName(cfg)).Info("database connected")
	return nil
}

func driverName(cfg *config.DatabaseConfig) string {
	if cfg.Driver == "sqlite" {
		return "sqlite"
	}
	return "postgres"
}

func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
