package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createListingsTable creates the catalog table. seq preserves insertion order
// for unsorted browsing.
func createListingsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_listings",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS listings (
					id VARCHAR(64) PRIMARY KEY,
					seq BIGSERIAL NOT NULL,
					source VARCHAR(50) NOT NULL,
					external_id VARCHAR(100) NOT NULL,

					title VARCHAR(500) NOT NULL,
					description TEXT,
					long_description TEXT,
					tags TEXT[],
					category VARCHAR(100),
					location VARCHAR(200),
					price NUMERIC(12,2) NOT NULL DEFAULT 0,
					price_type VARCHAR(20),

					age_min INTEGER,
					age_max INTEGER,
					gender VARCHAR(10),

					safety_badges TEXT[],
					images TEXT[],

					status VARCHAR(20) NOT NULL,
					admin_note TEXT,
					featured BOOLEAN NOT NULL DEFAULT FALSE,
					verified BOOLEAN NOT NULL DEFAULT FALSE,

					posted_by VARCHAR(64),
					posted_by_name VARCHAR(200),
					posted_by_email VARCHAR(320),

					created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,

					CONSTRAINT uq_listings_source_external UNIQUE (source, external_id)
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE INDEX IF NOT EXISTS idx_listings_seq ON listings(seq);",
				"CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);",
				"CREATE INDEX IF NOT EXISTS idx_listings_posted_by ON listings(posted_by);",
			}
			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS listings;").Error
		},
	}
}
