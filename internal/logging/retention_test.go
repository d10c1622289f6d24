package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dcimport/internal/logging"
)

func TestCleanupOldLogsPrunesExpiredRunLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

	old := filepath.Join(dir, "dcimport-20240101T080000.log")
	recent := filepath.Join(dir, "dcimport-20240304T080000.log")
	current := filepath.Join(dir, "dcimport-20240305T120000.log")
	unrelated := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, recent, current, unrelated} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	stale := now.AddDate(0, 0, -45)
	for _, path := range []string{old, current, unrelated} {
		if err := os.Chtimes(path, stale, stale); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}

	removed := logging.CleanupOldLogs(logging.NewNop(), now, 30, logging.RunLogTarget(dir, current))
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be pruned", old)
	}
	for _, keep := range []string{recent, current, unrelated} {
		if _, err := os.Stat(keep); err != nil {
			t.Fatalf("expected %s to remain: %v", keep, err)
		}
	}
}

func TestCleanupOldLogsDisabled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dcimport-20200101T000000.log")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	stale := time.Now().AddDate(-1, 0, 0)
	if err := os.Chtimes(path, stale, stale); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if removed := logging.CleanupOldLogs(nil, time.Now(), 0, logging.RunLogTarget(dir, "")); removed != 0 {
		t.Fatalf("expected retention 0 to disable pruning, removed %d", removed)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file to remain: %v", err)
	}
}
