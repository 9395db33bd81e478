package system

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireLock(t *testing.T) {
	dir := t.TempDir()

	lock, err := AcquireLock(dir, "klet_test")
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "klet_test.lock")); err != nil {
		t.Errorf("lock file missing: %v", err)
	}

	// A second acquisition of the same lock must be rejected.
	if _, err := AcquireLock(dir, "klet_test"); !errors.Is(err, ErrLockHeld) {
		t.Errorf("second acquire: err = %v, want ErrLockHeld", err)
	}

	// Unrelated names do not conflict.
	other, err := AcquireLock(dir, "klet_other")
	if err != nil {
		t.Fatalf("AcquireLock for other volume: %v", err)
	}
	other.Release()

	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	// After release the lock can be taken again.
	again, err := AcquireLock(dir, "klet_test")
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	again.Release()
}

func TestAcquireLockCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run", "klet")

	lock, err := AcquireLock(dir, "klet_test")
	if err != nil {
		t.Fatalf("AcquireLock: %v", err)
	}
	defer lock.Release()

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("lock directory not created: %v", err)
	}
}
