package sqlite3

import (
	"context"
	"fmt"

	"smmpanel-bot/internal/migrations"

	"github.com/pressly/goose/v3"
)

// Migrate applies every pending migration embedded in internal/migrations.
func (d *DB) Migrate(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, d.DB.DB, migrations.Files)
	if err != nil {
		return fmt.Errorf("goose.NewProvider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
