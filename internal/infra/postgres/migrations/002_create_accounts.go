package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createAccountTables creates users, payments and submissions.
func createAccountTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_create_accounts",
		Migrate: func(tx *gorm.DB) error {
			statements := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id VARCHAR(64) PRIMARY KEY,
					name VARCHAR(200) NOT NULL,
					email VARCHAR(320) NOT NULL UNIQUE,
					phone VARCHAR(30),
					password_hash VARCHAR(100) NOT NULL,
					role VARCHAR(10) NOT NULL,
					permissions TEXT[],
					can_post_ad BOOLEAN NOT NULL DEFAULT FALSE,
					is_verified BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
				);`,
				`CREATE TABLE IF NOT EXISTS payments (
					id VARCHAR(64) PRIMARY KEY,
					user_id VARCHAR(64) NOT NULL,
					listing_id VARCHAR(64),
					amount NUMERIC(12,2) NOT NULL,
					currency VARCHAR(3) NOT NULL,
					method VARCHAR(10) NOT NULL,
					status VARCHAR(10) NOT NULL,
					transaction_id VARCHAR(40) NOT NULL UNIQUE,
					description TEXT,
					details JSONB,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
				);`,
				"CREATE INDEX IF NOT EXISTS idx_payments_user_created ON payments(user_id, created_at DESC);",
				`CREATE TABLE IF NOT EXISTS submissions (
					id VARCHAR(64) PRIMARY KEY,
					seq BIGSERIAL NOT NULL,
					user_id VARCHAR(64) NOT NULL,
					listing_id VARCHAR(64),
					name VARCHAR(200),
					email VARCHAR(320),
					phone VARCHAR(30),
					message TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
				);`,
				"CREATE INDEX IF NOT EXISTS idx_submissions_user ON submissions(user_id, seq);",
			}

			for _, stmt := range statements {
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS submissions, payments, users;").Error
		},
	}
}
