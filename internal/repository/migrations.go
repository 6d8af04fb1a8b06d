package repository

import (
	"embed"
	"fmt"

	"github.com/juanmillal/proyecto-grupo-11/internal/config"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations
var embedMigrations embed.FS

// Migrate creates the schema at startup by applying the embedded goose
// migrations for the configured driver. There is no migration management
// surface beyond this bootstrap.
func Migrate(db *gorm.DB, driver string) error {
	var dialect, dir string
	switch driver {
	case config.DriverSQLite:
		dialect, dir = "sqlite3", "migrations/sqlite"
	case config.DriverPostgres:
		dialect, dir = "postgres", "migrations/postgres"
	default:
		return fmt.Errorf("unsupported driver %q", driver)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	if err := goose.Up(sqlDB, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
