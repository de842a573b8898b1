package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type migrationDB interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

func GetBootstrapSQLMigrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS migration_head (
			migration_id INT NOT NULL DEFAULT -1
		)`,
		`INSERT INTO migration_head (migration_id) VALUES (-1)`,
	}
}

// Migrations are append-only; the index of each entry is its id in
// migration_head.
func GetSQLMigrations() []string {
	return []string{
		`CREATE TABLE users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(256) NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE icons (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			svg TEXT NOT NULL
		)`,
		`CREATE TABLE amenities (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			icon_id BIGINT REFERENCES icons (id) ON DELETE SET NULL
		)`,
		`CREATE TABLE buildings (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zipcode TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			floors INT NOT NULL DEFAULT 0,
			year_built INT NOT NULL DEFAULT 0,
			features JSONB NOT NULL DEFAULT '[]',
			images JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE properties (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			listing_type TEXT NOT NULL CHECK (listing_type IN ('sale', 'rent')),
			status TEXT NOT NULL CHECK (status IN ('active', 'pending', 'sold', 'off_market')),
			price BIGINT NOT NULL CHECK (price >= 0),
			bedrooms INT NOT NULL DEFAULT 0,
			bathrooms DOUBLE PRECISION NOT NULL DEFAULT 0,
			area_sqft INT NOT NULL DEFAULT 0,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zipcode TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			building_id BIGINT REFERENCES buildings (id) ON DELETE SET NULL,
			mls_id TEXT UNIQUE,
			listed_by TEXT NOT NULL DEFAULT '',
			listing_office TEXT NOT NULL DEFAULT '',
			features JSONB NOT NULL DEFAULT '[]',
			images JSONB NOT NULL DEFAULT '[]',
			featured BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX properties_city_idx ON properties (lower(city))`,
		`CREATE TABLE property_amenities (
			property_id BIGINT NOT NULL REFERENCES properties (id) ON DELETE CASCADE,
			amenity_id BIGINT NOT NULL REFERENCES amenities (id) ON DELETE CASCADE,
			PRIMARY KEY (property_id, amenity_id)
		)`,
		`CREATE TABLE building_amenities (
			building_id BIGINT NOT NULL REFERENCES buildings (id) ON DELETE CASCADE,
			amenity_id BIGINT NOT NULL REFERENCES amenities (id) ON DELETE CASCADE,
			PRIMARY KEY (building_id, amenity_id)
		)`,
		`CREATE TABLE blog_categories (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE blog_posts (
			id BIGSERIAL PRIMARY KEY,
			category_id BIGINT REFERENCES blog_categories (id) ON DELETE SET NULL,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			excerpt TEXT NOT NULL DEFAULT '',
			body_markdown TEXT NOT NULL DEFAULT '',
			body_html TEXT NOT NULL DEFAULT '',
			cover_image TEXT NOT NULL DEFAULT '',
			published BOOLEAN NOT NULL DEFAULT FALSE,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE websites (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			domain TEXT NOT NULL UNIQUE,
			brand_colors JSONB NOT NULL DEFAULT '{}',
			logo TEXT NOT NULL DEFAULT '',
			contact_email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			socials JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE website_pages (
			id BIGSERIAL PRIMARY KEY,
			website_id BIGINT NOT NULL REFERENCES websites (id) ON DELETE CASCADE,
			slug TEXT NOT NULL,
			title TEXT NOT NULL,
			sections JSONB NOT NULL DEFAULT '[]',
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (website_id, slug)
		)`,
		`CREATE TABLE settings (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE favorites (
			user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			property_id BIGINT NOT NULL REFERENCES properties (id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (user_id, property_id)
		)`,
		`CREATE TABLE contact_messages (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			property_id BIGINT REFERENCES properties (id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
}

// RunMigrations applies every migration newer than the recorded head.
func RunMigrations(ctx context.Context, logger *slog.Logger, db migrationDB) error {
	// the first migration is the migration head. We need to see which migration has been applied and start from there.
	migrationID := -1
	row := db.QueryRow(ctx, "SELECT migration_id FROM migration_head")
	if err := row.Scan(&migrationID); err != nil {
		logger.Info("migration_head doesn't exist, bootstrapping the db with the migration_head table")
		for _, migration := range GetBootstrapSQLMigrations() {
			if _, err := db.Exec(ctx, migration); err != nil {
				return fmt.Errorf("failed to bootstrap db: %w", err)
			}
		}
		migrationID = -1
	}
	for i, migration := range GetSQLMigrations() {
		if i <= migrationID {
			continue
		}
		logger.Info("applying migration", "migration_id", i)
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed at migration %d: %w", i, err)
		}
		if _, err := db.Exec(ctx, "UPDATE migration_head SET migration_id = $1", i); err != nil {
			return fmt.Errorf("failed to update migration head for migration %d: %w", i, err)
		}
	}
	return nil
}
