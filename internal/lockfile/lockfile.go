// Package lockfile guards against a second server or kiosk running on the
// same machine. The file holds "port|pid|secret".
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/leitstand/internal/constants"
	"github.com/julianstephens/leitstand/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid

	// ErrAlreadyRunning is returned when a live process holds the lock
	ErrAlreadyRunning = errors.New("another leitstand instance is running")
	// ErrMalformed is returned when the lockfile content cannot be parsed
	ErrMalformed = errors.New("lockfile is malformed")
)

// Info is the parsed content of a lockfile
type Info struct {
	Port   int
	PID    int
	Secret string
}

func (i Info) String() string {
	return fmt.Sprintf("%d|%d|%s", i.Port, i.PID, i.Secret)
}

// Lock is a held lockfile
type Lock struct {
	path string
	Info
}

// Path returns the lockfile path for name inside dir
func Path(dir, name string) string {
	return filepath.Join(dir, name)
}

// Read parses and validates the lockfile at path
func Read(path string) (Info, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Info{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 3 {
		return Info{}, ErrMalformed
	}

	port, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Info{}, fmt.Errorf("%w: invalid port number", ErrMalformed)
	}
	// port 0 marks a lock without a listener (kiosk)
	if port < 0 || port > 65535 {
		return Info{}, fmt.Errorf("%w: port number %d is outside valid range (0-65535)", ErrMalformed, port)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || pid <= 0 {
		return Info{}, fmt.Errorf("%w: invalid process ID", ErrMalformed)
	}

	secret := strings.TrimSpace(parts[2])
	if secret == "" {
		return Info{}, fmt.Errorf("%w: secret is empty", ErrMalformed)
	}

	return Info{Port: port, PID: pid, Secret: secret}, nil
}

// alive reports whether pid belongs to a running leitstand process
func alive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Acquire takes the lockfile at path. A stale or malformed lockfile is
// replaced; a lockfile owned by a live leitstand process yields
// ErrAlreadyRunning together with the owner's Info.
func Acquire(path string, port int) (*Lock, error) {
	if existing, err := Read(path); err == nil {
		if existing.PID != getpidFunc() && alive(existing.PID) {
			return nil, fmt.Errorf("%w (pid %d, port %d)", ErrAlreadyRunning, existing.PID, existing.Port)
		}
		logger.Debug("Replacing stale lockfile", "path", path, "pid", existing.PID)
	} else if !os.IsNotExist(err) {
		logger.Warn("Replacing unreadable lockfile", "path", path, "error", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lockfile directory: %w", err)
	}

	lock := &Lock{
		path: path,
		Info: Info{Port: port, PID: getpidFunc(), Secret: strings.ReplaceAll(uuid.NewString(), "-", "")},
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(lock.Info.String()), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return lock, nil
}

// Path returns the file backing the lock
func (l *Lock) Path() string { return l.path }

// Release removes the lockfile if it still belongs to this process
func (l *Lock) Release() error {
	current, err := Read(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if current.PID != l.PID || current.Secret != l.Secret {
		return nil
	}
	return os.Remove(l.path)
}
