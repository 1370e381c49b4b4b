package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxSnapshots is how many journal snapshots are kept after rotation.
	MaxSnapshots = 10
	DirName      = "backups"
	FilePrefix   = "journal-"
	FileSuffix   = ".db"

	stampLayout = "20060102-150405"
)

// Snapshot describes one copy of the journal on disk.
type Snapshot struct {
	Path  string
	Taken time.Time
	Size  int64
}

// Manager snapshots and restores the submission journal. Snapshots live in a
// backups directory next to the journal file.
type Manager struct {
	journalPath string
	dir         string
	now         func() time.Time
}

func NewManager(journalPath string) *Manager {
	return &Manager{
		journalPath: journalPath,
		dir:         filepath.Join(filepath.Dir(journalPath), DirName),
		now:         time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a snapshot of the journal and prunes old ones.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		return path, fmt.Errorf("snapshot created but rotation failed: %w", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if _, err := os.Stat(m.journalPath); os.IsNotExist(err) {
		return "", fmt.Errorf("journal does not exist: %s", m.journalPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := m.vacuumInto(path); err != nil {
		return "", fmt.Errorf("failed to snapshot journal: %w", err)
	}
	return path, nil
}

// nextPath picks a snapshot file name that is not taken yet.
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampLayout)
	path := filepath.Join(m.dir, FilePrefix+stamp+FileSuffix)
	for i := 1; i <= 100; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", FilePrefix, stamp, i, FileSuffix))
	}
	return "", fmt.Errorf("failed to generate unique snapshot name")
}

func (m *Manager) vacuumInto(dest string) error {
	db, err := sql.Open("sqlite", m.journalPath+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("journal appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		db.Close()
		return copyFile(m.journalPath, dest)
	}
	return nil
}

// List returns the snapshots on disk, newest first.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)
		if len(stamp) > len(stampLayout) {
			stamp = stamp[:len(stampLayout)]
		}
		taken, err := time.ParseInLocation(stampLayout, stamp, time.Local)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		snapshots = append(snapshots, Snapshot{
			Path:  filepath.Join(m.dir, name),
			Taken: taken,
			Size:  info.Size(),
		})
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		if snapshots[i].Taken.Equal(snapshots[j].Taken) {
			return snapshots[i].Path > snapshots[j].Path
		}
		return snapshots[i].Taken.After(snapshots[j].Taken)
	})
	return snapshots, nil
}

func (m *Manager) rotate() error {
	snapshots, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxSnapshots; i < len(snapshots); i++ {
		if err := os.Remove(snapshots[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshots[i].Path, err)
		}
	}
	return nil
}

// Resolve finds a snapshot given an absolute path, a path relative to the
// working directory, or a bare file name inside the backup directory.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("snapshot not found: %s", name)
		}
		return name, nil
	}
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	candidate := filepath.Join(m.dir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("snapshot not found: tried current directory and %s", m.dir)
}

// Restore replaces the journal with the given snapshot. The journal must be
// closed first. The current journal is snapshotted before it is replaced and
// that snapshot's path is returned ("" if there was no journal).
func (m *Manager) Restore(path string) (string, error) {
	if err := verifyFile(path); err != nil {
		return "", fmt.Errorf("snapshot is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.journalPath); err == nil {
		if previous, err = m.create(); err != nil {
			return "", fmt.Errorf("failed to snapshot current journal before restore: %w", err)
		}
	}

	tmp := m.journalPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return previous, fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.journalPath); err != nil {
		_ = os.Remove(tmp)
		return previous, fmt.Errorf("failed to restore journal: %w", err)
	}
	return previous, nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func verifyFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verify(db)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
