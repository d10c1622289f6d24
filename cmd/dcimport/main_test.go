package main

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"dcimport/internal/runlock"
	"dcimport/internal/testsupport"
)

func TestTransferCopiesJPEGsIntoDatedDirectory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSourceFiles("a.jpg", "b.JPG", "c.png"))

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	base := env.cfg.Transfer.DestinationBase
	dated := testsupport.ListDir(t, base)
	if len(dated) != 1 {
		t.Fatalf("expected one dated directory, got %v", dated)
	}
	dest := filepath.Join(base, dated[0])

	requireContains(t, out, "Destination: '"+dest+"'\n")
	requireContains(t, out, "Copying 'a.jpg'...\n")
	requireContains(t, out, "Copying 'b.JPG'...\n")
	requireContains(t, out, "\nFinished. Copied 2 files.\n")
	requireNotContains(t, out, "c.png")
	if !strings.HasPrefix(out, "Destination: ") {
		t.Fatalf("expected destination line first, got %q", out)
	}

	copied := testsupport.ListDir(t, dest)
	sort.Strings(copied)
	if strings.Join(copied, ",") != "a.jpg,b.JPG" {
		t.Fatalf("unexpected copied files: %v", copied)
	}

	logs, err := filepath.Glob(filepath.Join(env.cfg.Paths.LogDir, "dcimport-*.log"))
	if err != nil || len(logs) != 1 {
		t.Fatalf("expected one run log, got %v (err=%v)", logs, err)
	}
	data, err := os.ReadFile(logs[0])
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	requireContains(t, string(data), "run log opened")
	requireContains(t, string(data), "console=false")
	requireContains(t, string(data), "transfer finished")
	requireContains(t, string(data), "run_id")
}

func TestTransferMissingSourceReportsAndExitsCleanly(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("missing source should not be a command error: %v", err)
	}

	want := "Error: Source directory not found at '" + env.cfg.SourceDir() + "'\n" +
		"Please ensure the USB drive is mounted and the path is correct.\n"
	if out != want {
		t.Fatalf("unexpected output\n got: %q\nwant: %q", out, want)
	}
	if _, err := os.Stat(env.cfg.Transfer.DestinationBase); !os.IsNotExist(err) {
		t.Fatalf("destination base must not be created, stat err=%v", err)
	}
}

func TestTransferDestinationFailure(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSourceFiles("a.jpg"))
	testsupport.WriteFile(t, env.cfg.Transfer.DestinationBase, 1)

	out, _, err := runCLI(t, nil, env.configPath)
	if err != nil {
		t.Fatalf("destination failure should not be a command error: %v", err)
	}
	requireContains(t, out, "Error: Could not create destination directory '")
	requireNotContains(t, out, "Copying")
	requireNotContains(t, out, "Finished.")
}

func TestTransferRefusesConcurrentRun(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSourceFiles("a.jpg"))

	held, err := runlock.Acquire(env.cfg.LockPath())
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	t.Cleanup(func() { _ = held.Release() })

	out, _, err := runCLI(t, nil, env.configPath)
	if !errors.Is(err, runlock.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if out != "" {
		t.Fatalf("expected no transfer output, got %q", out)
	}
	if _, statErr := os.Stat(env.cfg.Transfer.DestinationBase); !os.IsNotExist(statErr) {
		t.Fatalf("no destination should be created while locked")
	}
}

func TestRootRejectsArguments(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"extra"}, env.configPath); err == nil {
		t.Fatal("expected error for unexpected argument")
	}
}

func TestInvalidConfigFails(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteContent(t, env.configPath, []byte("[transfer]\nsource_subdir = \"/abs\"\n"))

	_, _, err := runCLI(t, nil, env.configPath)
	if err == nil {
		t.Fatal("expected invalid config to fail")
	}
	requireContains(t, err.Error(), "load config")
}
