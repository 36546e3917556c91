package database

import (
	"fmt"

	"technest_backend/internal/config"
	"technest_backend/internal/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the configured database and bounds the pool.
// Acquiring a connection blocks when all MaxOpenConns are busy, which is
// the database/sql contract. The connection timezone should also be pinned
// in the DSN; the SET below covers connections warmed at startup.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dial = postgres.Open(cfg.Database.DSN)
	case "mysql", "":
		dial = mysql.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}

	if tz := cfg.Database.TimeZone; tz != "" {
		var setErr error
		switch cfg.Database.Driver {
		case "postgres":
			setErr = db.Exec(fmt.Sprintf("SET TIME ZONE INTERVAL '%s' HOUR TO MINUTE", tz)).Error
		default:
			setErr = db.Exec("SET time_zone = ?", tz).Error
		}
		if setErr != nil {
			logger.Warn("failed to set session time zone", "time_zone", tz, "error", setErr)
		}
	}

	return db, nil
}
