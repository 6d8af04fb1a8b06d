package repository

import (
	"fmt"
	"time"

	"github.com/juanmillal/proyecto-grupo-11/internal/config"
	"github.com/juanmillal/proyecto-grupo-11/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect establishes the single long-lived store connection used for the
// whole session. It retries once per second until the connect timeout
// elapses, then fails with domain.ErrConnection; callers must not proceed
// without a live handle.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	attempts := int(cfg.ConnectTimeout / time.Second)
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		db, err := gorm.Open(dialector, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil && sqlDB.Ping() == nil {
				return db, nil
			}
			lastErr = dbErr
		} else {
			lastErr = err
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("%w: giving up after %d attempts: %v", domain.ErrConnection, attempts, lastErr)
}

// Close releases the underlying connection. Safe to defer on every exit path.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", domain.ErrConnection, cfg.Driver)
	}
}
