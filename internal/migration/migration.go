package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

// Migration is one numbered SQL file, e.g. 001_init.sql.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies numbered SQL files from an fs.FS and tracks the applied
// version in a single-row schema_version table.
type Runner struct {
	db *sql.DB
	fs fs.FS
}

func NewRunner(db *sql.DB, migrationFS fs.FS) *Runner {
	return &Runner{db: db, fs: migrationFS}
}

func (r *Runner) ensureVersionTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return nil
}

// CurrentVersion returns the applied schema version, 0 for a fresh database.
func (r *Runner) CurrentVersion() (int, error) {
	if err := r.ensureVersionTable(); err != nil {
		return 0, err
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrations returns every migration file sorted by version.
func (r *Runner) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(r.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		m, err := r.parse(e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

func (r *Runner) parse(name string) (Migration, error) {
	num, rest, ok := strings.Cut(name, "_")
	if !ok {
		return Migration{}, fmt.Errorf("invalid migration filename %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(num)
	if err != nil || version < 1 {
		return Migration{}, fmt.Errorf("invalid version number in migration filename %s", name)
	}
	body, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return Migration{}, fmt.Errorf("failed to read migration %s: %w", name, err)
	}
	return Migration{Version: version, Name: strings.TrimSuffix(rest, ".sql"), SQL: string(body)}, nil
}

// Apply runs every migration newer than the current version, each in its own
// transaction together with the version bump. It returns how many were applied.
func (r *Runner) Apply(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	current, err := r.CurrentVersion()
	if err != nil {
		return 0, err
	}
	all, err := r.Migrations()
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}
	if latest := all[len(all)-1].Version; current > latest {
		return 0, newerSchemaError(current, latest)
	}

	applied := 0
	for _, m := range all {
		if m.Version <= current {
			continue
		}
		logFn(fmt.Sprintf("applying migration %d: %s", m.Version, m.Name))
		if err := r.applyOne(m); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

func (r *Runner) applyOne(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", m.Version, err)
	}
	return tx.Commit()
}

// ValidateVersion fails when the database was written by a newer build.
func (r *Runner) ValidateVersion() error {
	current, err := r.CurrentVersion()
	if err != nil {
		return err
	}
	all, err := r.Migrations()
	if err != nil {
		return err
	}
	latest := 0
	if len(all) > 0 {
		latest = all[len(all)-1].Version
	}
	if current > latest {
		return newerSchemaError(current, latest)
	}
	return nil
}

func newerSchemaError(current, latest int) error {
	return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", current, latest)
}
