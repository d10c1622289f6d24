package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"dcimport/internal/runlock"
)

func TestAcquireIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "dcimport.lock")

	first, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if first.Path() != path {
		t.Fatalf("unexpected lock path %q", first.Path())
	}

	if _, err := runlock.Acquire(path); !errors.Is(err, runlock.ErrBusy) {
		t.Fatalf("expected ErrBusy while held, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second Release should be a no-op: %v", err)
	}

	again, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	t.Cleanup(func() { _ = again.Release() })
}

func TestNilLockRelease(t *testing.T) {
	var lock *runlock.Lock
	if err := lock.Release(); err != nil {
		t.Fatalf("nil Release: %v", err)
	}
	if lock.Path() != "" {
		t.Fatalf("expected empty path for nil lock")
	}
}
