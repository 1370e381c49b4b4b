package sqlite

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hae/internal/backup"
	"github.com/julianstephens/hae/internal/logger"
	"github.com/julianstephens/hae/internal/migration"
	"github.com/julianstephens/hae/migrations"
)

// Store is the SQLite-backed submission journal.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Init creates the database file if needed and brings the schema up to date.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	_, statErr := os.Stat(s.path)
	existed := statErr == nil
	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if existed {
		s.snapshotBeforeMigrating(runner)
	}
	if _, err := runner.Apply(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing journal and refuses schemas newer than this build.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("journal not found at %s", s.path)
	}
	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) GetPath() string {
	return s.path
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

// snapshotBeforeMigrating copies a journal that is about to be migrated so a
// failed upgrade can be rolled back with "hae backup restore".
func (s *Store) snapshotBeforeMigrating(runner *migration.Runner) {
	current, err := runner.CurrentVersion()
	if err != nil || current == 0 {
		return
	}
	all, err := runner.Migrations()
	if err != nil || len(all) == 0 || all[len(all)-1].Version <= current {
		return
	}
	path, err := backup.NewManager(s.path).Create()
	if err != nil {
		logger.Warn("Pre-migration snapshot failed", "error", err)
		return
	}
	logger.Info("Journal snapshot taken before migrating", "path", path, "from", current)
}

// SchemaVersion reports the journal's schema version and the newest one this
// build knows about.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, errNotOpen
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.CurrentVersion(); err != nil {
		return 0, 0, err
	}
	all, err := runner.Migrations()
	if err != nil {
		return 0, 0, err
	}
	if len(all) > 0 {
		latest = all[len(all)-1].Version
	}
	return current, latest, nil
}
