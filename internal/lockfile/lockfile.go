package lockfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/hae/internal/constants"
	"github.com/julianstephens/hae/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// maxAttempts bounds how often a stale lock is removed and the create retried.
const maxAttempts = 3

// ErrSessionActive is returned when another live process holds the form lock.
var ErrSessionActive = errors.New("another form session is already running")

// Lock guards a single interactive form session per data directory, so two
// terminals cannot submit the same draft concurrently.
type Lock struct {
	path string
	pid  int
}

// Holder describes the process recorded in a lockfile.
type Holder struct {
	PID        int
	Executable string
	Target     string
}

// Acquire creates the lockfile under dir. target names what is being edited
// ("new" or a record id) and is only informational. A lockfile left behind by a
// dead process is taken over.
func Acquire(dir, target string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)

	pid := getpidFunc()
	exe := constants.AppName
	if p, err := findProcessFunc(pid); err == nil && p != nil {
		exe = p.Executable()
	}
	content := fmt.Sprintf("%d|%s|%s", pid, exe, target)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := create(path, content)
		if err == nil {
			return &Lock{path: path, pid: pid}, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("failed to write lockfile: %w", err)
		}

		holder, err := read(path)
		switch {
		case err == nil && alive(holder):
			return nil, fmt.Errorf("%w (pid %d, %s)", ErrSessionActive, holder.PID, holder.Target)
		case err == nil:
			logger.Warn("Removing stale form lock", "pid", holder.PID, "target", holder.Target)
		case os.IsNotExist(err):
			// released between our create and read
			continue
		default:
			logger.Warn("Removing unreadable form lock", "path", path, "error", err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w (could not claim %s)", ErrSessionActive, path)
}

// create writes the lockfile only if it does not exist yet.
func create(path, content string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// Release removes the lockfile if this process still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	holder, err := read(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if holder.PID != l.pid {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func read(path string) (Holder, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Holder{}, err
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 3)
	if len(parts) != 3 {
		return Holder{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, errors.New("invalid process ID in lockfile")
	}
	return Holder{PID: pid, Executable: parts[1], Target: parts[2]}, nil
}

// alive reports whether the recorded process still runs the same executable.
// A recycled pid running something else does not count.
func alive(h Holder) bool {
	if h.PID == getpidFunc() {
		return false
	}
	p, err := findProcessFunc(h.PID)
	if err != nil || p == nil {
		return false
	}
	return p.Executable() == h.Executable
}
