package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func file(sql string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(sql)}
}

func TestCurrentVersionFresh(t *testing.T) {
	r := NewRunner(openDB(t), fstest.MapFS{})

	v, err := r.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion() failed: %v", err)
	}
	if v != 0 {
		t.Errorf("CurrentVersion() = %d, want 0", v)
	}
}

func TestMigrationsSorted(t *testing.T) {
	r := NewRunner(openDB(t), fstest.MapFS{
		"010_later.sql":  file("SELECT 1;"),
		"002_second.sql": file("SELECT 1;"),
		"001_first.sql":  file("SELECT 1;"),
		"README.md":      file("ignored"),
	})

	got, err := r.Migrations()
	if err != nil {
		t.Fatalf("Migrations() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d migrations, want 3", len(got))
	}
	if got[0].Name != "first" || got[1].Version != 2 || got[2].Version != 10 {
		t.Errorf("unexpected order: %+v", got)
	}
}

func TestMigrationsInvalidNames(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"no separator": {"001.sql": file("")},
		"zero version": {"000_init.sql": file("")},
		"not a number": {"abc_init.sql": file("")},
		"duplicate":    {"001_a.sql": file(""), "01_b.sql": file("")},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRunner(openDB(t), fsys).Migrations(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestApply(t *testing.T) {
	db := openDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": file("CREATE TABLE a (id INTEGER PRIMARY KEY);"),
	}
	r := NewRunner(db, fsys)

	var logged []string
	n, err := r.Apply(func(s string) { logged = append(logged, s) })
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if n != 1 || len(logged) != 1 {
		t.Errorf("applied %d, logged %v", n, logged)
	}

	fsys["002_more.sql"] = file("CREATE TABLE b (id INTEGER PRIMARY KEY);")
	n, err = r.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("second Apply() applied %d, want 1", n)
	}

	v, _ := r.CurrentVersion()
	if v != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", v)
	}

	n, err = r.Apply(nil)
	if err != nil || n != 0 {
		t.Errorf("Apply() on up-to-date schema = %d, %v", n, err)
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, fstest.MapFS{
		"001_ok.sql":     file("CREATE TABLE ok (id INTEGER);"),
		"002_broken.sql": file("CREATE TABLE broken (;"),
	})

	n, err := r.Apply(nil)
	if err == nil {
		t.Fatal("expected Apply() to fail")
	}
	if n != 1 {
		t.Errorf("applied %d before failing, want 1", n)
	}
	if v, _ := r.CurrentVersion(); v != 1 {
		t.Errorf("CurrentVersion() = %d, want 1", v)
	}
}

func TestValidateVersionNewerSchema(t *testing.T) {
	db := openDB(t)
	r := NewRunner(db, fstest.MapFS{"001_init.sql": file("SELECT 1;")})
	if _, err := r.Apply(nil); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}

	err := r.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("ValidateVersion() = %v, want newer-schema error", err)
	}
	if _, err := r.Apply(nil); err == nil {
		t.Error("Apply() should refuse a newer schema")
	}
}
