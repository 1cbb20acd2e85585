package sqlitemigrate

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "migrate.db")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func TestApplyMigrations(t *testing.T) {
	t.Run("applies files in order", func(t *testing.T) {
		sqlDB := openTestDB(t)
		migrationFS := fstest.MapFS{
			"0001_init.sql": {Data: []byte(`
-- +migrate Up
CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
-- +migrate Down
DROP TABLE widgets;
`)},
			"0002_color.sql": {Data: []byte(`
-- +migrate Up
ALTER TABLE widgets ADD COLUMN color TEXT;
-- +migrate Down
`)},
		}
		if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
			t.Fatalf("apply migrations: %v", err)
		}
		if _, err := sqlDB.Exec("INSERT INTO widgets (name, color) VALUES ('a', 'red')"); err != nil {
			t.Fatalf("expected both migrations applied: %v", err)
		}
	})

	t.Run("idempotent across runs", func(t *testing.T) {
		sqlDB := openTestDB(t)
		migrationFS := fstest.MapFS{
			"0001_init.sql": {Data: []byte(`
-- +migrate Up
CREATE TABLE widgets (id INTEGER PRIMARY KEY);
-- +migrate Down
DROP TABLE widgets;
`)},
		}
		if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
			t.Fatalf("first run: %v", err)
		}
		if err := ApplyMigrations(sqlDB, migrationFS); err != nil {
			t.Fatalf("second run: %v", err)
		}
		var count int
		if err := sqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("count migrations: %v", err)
		}
		if count != 1 {
			t.Errorf("expected one recorded migration, got %d", count)
		}
	})

	t.Run("nil db", func(t *testing.T) {
		if err := ApplyMigrations(nil, fstest.MapFS{}); err == nil {
			t.Error("expected error for nil db")
		}
	})
}

func TestExtractUpMigration(t *testing.T) {
	t.Run("with both sections", func(t *testing.T) {
		content := "-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;"
		got := ExtractUpMigration(content)
		if got != "\nCREATE TABLE a (id INTEGER);\n" {
			t.Errorf("unexpected up section: %q", got)
		}
	})

	t.Run("without markers returns content", func(t *testing.T) {
		content := "CREATE TABLE a (id INTEGER);"
		if got := ExtractUpMigration(content); got != content {
			t.Errorf("expected content unchanged, got %q", got)
		}
	})
}
