package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/pocketbase/dbx"
	// registers the "sqlite" driver
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS agents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		photo TEXT NOT NULL DEFAULT '',
		brokerage TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		property_type TEXT NOT NULL DEFAULT '',
		price INTEGER NOT NULL DEFAULT 0,
		bedrooms INTEGER NOT NULL DEFAULT 0,
		bathrooms REAL NOT NULL DEFAULT 0,
		square_feet INTEGER NOT NULL DEFAULT 0,
		lot_size REAL NOT NULL DEFAULT 0,
		year_built INTEGER NOT NULL DEFAULT 0,
		garage INTEGER NOT NULL DEFAULT 0,
		street TEXT NOT NULL DEFAULT '',
		unit TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		zip TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL DEFAULT 0,
		lng REAL NOT NULL DEFAULT 0,
		featured_image TEXT NOT NULL DEFAULT '',
		gallery TEXT NOT NULL DEFAULT '[]',
		description TEXT NOT NULL DEFAULT '',
		features TEXT NOT NULL DEFAULT '[]',
		agent_id TEXT NOT NULL DEFAULT '',
		featured INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id TEXT PRIMARY KEY,
		listing_id TEXT NOT NULL DEFAULT '',
		agent_id TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		tour INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);`,
}

// addedColumns are columns introduced after their table first shipped.
var addedColumns = []struct{ table, column, ddl string }{
	{"inquiries", "agent_id", "TEXT NOT NULL DEFAULT ''"},
}

var indexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_listings_slug ON listings(slug) WHERE slug != '';",
	"CREATE INDEX IF NOT EXISTS idx_listings_status ON listings(status);",
	"CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city COLLATE NOCASE);",
	"CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price);",
	"CREATE INDEX IF NOT EXISTS idx_listings_created ON listings(created_at);",
	"CREATE INDEX IF NOT EXISTS idx_listings_agent ON listings(agent_id);",
	"CREATE INDEX IF NOT EXISTS idx_listings_status_price ON listings(status, price);",
	"CREATE INDEX IF NOT EXISTS idx_inquiries_listing ON inquiries(listing_id, created_at);",
}

// OpenSQLite opens the sqlite database at dsn. An in-memory database is
// pinned to one connection so every query sees the same data.
func OpenSQLite(dsn string) (*dbx.DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := dbx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.DB().SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates the tables and indexes. It is safe to run repeatedly.
func Migrate(ctx context.Context, db *dbx.DB) error {
	for _, stmt := range append(append([]string{}, schema...), indexes...) {
		if _, err := db.NewQuery(stmt).WithContext(ctx).Execute(); err != nil {
			return fmt.Errorf("failed to migrate: %s - %w", firstLine(stmt), err)
		}
	}
	for _, c := range addedColumns {
		if err := addColumn(ctx, db, c.table, c.column, c.ddl); err != nil {
			return err
		}
	}
	return nil
}

// addColumn adds column to table unless it is already there.
func addColumn(ctx context.Context, db *dbx.DB, table, column, ddl string) error {
	var count int
	err := db.NewQuery("SELECT COUNT(*) FROM pragma_table_info({:table}) WHERE name = {:column}").
		Bind(dbx.Params{"table": table, "column": column}).
		WithContext(ctx).
		Row(&count)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", table, err)
	}
	if count > 0 {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, ddl)
	if _, err := db.NewQuery(stmt).WithContext(ctx).Execute(); err != nil {
		return fmt.Errorf("failed to migrate: %s - %w", stmt, err)
	}
	return nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
