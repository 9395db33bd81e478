package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ErrLockHeld means another klet run holds the lock for the same volume.
var ErrLockHeld = errors.New("another run is already in progress")

// LockFile is an advisory flock keyed on the volume's mapping name.
// Overlapping invocations against the same volume are rejected up
// front instead of racing two decrypt/mount sequences on one device.
type LockFile struct {
	file *os.File
	path string
}

// AcquireLock takes an exclusive, non-blocking flock on dir/name.lock,
// creating the directory if needed. Returns ErrLockHeld if the lock is
// already taken by another process.
func AcquireLock(dir, name string) (*LockFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name+".lock")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fmt.Errorf("%s: %w", path, ErrLockHeld)
		}
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	return &LockFile{file: file, path: path}, nil
}

// Release drops the lock and removes the lock file.
func (l *LockFile) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	// Removing before unlocking keeps a waiter from locking a file
	// that is about to disappear.
	os.Remove(l.path)
	err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("failed to unlock %s: %w", l.path, err)
	}
	return closeErr
}
