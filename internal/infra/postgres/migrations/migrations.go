// Package migrations holds the schema history of the storefront tables.
package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

var options = &gormigrate.Options{
	TableName:      "schema_migrations",
	IDColumnName:   "id",
	IDColumnSize:   255,
	UseTransaction: true,
	// refuse to start against a schema migrated by a newer build
	ValidateUnknownMigrations: true,
}

// All returns the migrations in apply order. IDs are never renumbered.
func All() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		createListingsTable(),
		createAccountTables(),
	}
}

// Run applies every pending migration in a single transaction.
func Run(db *gorm.DB) error {
	if err := gormigrate.New(db, options, All()).Migrate(); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// RollbackTo reverts every migration applied after id.
func RollbackTo(db *gorm.DB, id string) error {
	if err := gormigrate.New(db, options, All()).RollbackTo(id); err != nil {
		return fmt.Errorf("rolling back to %s: %w", id, err)
	}
	return nil
}
