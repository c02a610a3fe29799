package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEmbeddedMigrations(t *testing.T) {
	migrations, err := GetEmbeddedMigrations()
	if err != nil {
		t.Fatalf("GetEmbeddedMigrations failed: %v", err)
	}
	if len(migrations) < 2 {
		t.Fatalf("expected at least 2 migrations, got %d", len(migrations))
	}
	for i, m := range migrations {
		if m.Version != i+1 {
			t.Errorf("migration %d has version %d", i, m.Version)
		}
	}
	if migrations[0].Name != "documents" {
		t.Errorf("unexpected first migration name %q", migrations[0].Name)
	}
}

func TestInitializeDatabaseIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitializeDatabase(db); err != nil {
		t.Fatalf("first InitializeDatabase failed: %v", err)
	}
	if err := InitializeDatabase(db); err != nil {
		t.Fatalf("second InitializeDatabase failed: %v", err)
	}

	status, err := NewMigrationManager(db).GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus failed: %v", err)
	}
	if len(status.Pending) != 0 {
		t.Errorf("expected no pending migrations, got %d", len(status.Pending))
	}
	if len(status.Applied) != len(status.Available) {
		t.Errorf("applied %d of %d migrations", len(status.Applied), len(status.Available))
	}
	for _, m := range status.Applied {
		if m.AppliedAt == nil {
			t.Errorf("migration %d has no applied timestamp", m.Version)
		}
	}

	if _, err := db.Exec(`INSERT INTO documents (id, collection, body) VALUES ('1', 'c', '{"hook":"x"}')`); err != nil {
		t.Fatalf("documents table not usable: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO documents (id, collection, body) VALUES ('2', 'c', 'not json')`); err == nil {
		t.Error("expected invalid JSON body to be rejected")
	}
}

func TestMigrationsFromPath(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"001_first.sql":  "CREATE TABLE first (id INTEGER);",
		"002_second.sql": "CREATE TABLE second (id INTEGER);",
		"README.md":      "ignored",
		"xyz_bad.sql":    "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	db := openTestDB(t)
	manager := NewMigrationManagerFromPath(db, dir)

	n, err := manager.ApplyPendingMigrations()
	if err != nil {
		t.Fatalf("ApplyPendingMigrations failed: %v", err)
	}
	if n != 2 {
		t.Errorf("applied %d migrations, want 2", n)
	}

	if err := os.WriteFile(filepath.Join(dir, "003_third.sql"), []byte("CREATE TABLE third (id INTEGER);"), 0644); err != nil {
		t.Fatal(err)
	}
	pending, err := manager.GetPendingMigrations()
	if err != nil {
		t.Fatalf("GetPendingMigrations failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Name != "third" {
		t.Errorf("unexpected pending migrations: %+v", pending)
	}
}
