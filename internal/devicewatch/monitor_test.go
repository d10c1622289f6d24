package devicewatch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"dcimport/internal/config"
	"dcimport/internal/testsupport"
)

func newTestMonitor(t *testing.T, cfg *config.Config, handler Handler) *Monitor {
	t.Helper()
	cfg.Watch.SettleTimeout = 1
	cfg.Watch.PollInterval = 10
	m := New(cfg, nil, handler)
	if m == nil {
		t.Fatal("expected non-nil monitor")
	}
	return m
}

func addEvent(devname string) netlink.UEvent {
	return netlink.UEvent{
		Action: netlink.ADD,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"DEVNAME":   devname,
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		if m := New(nil, nil, nil); m != nil {
			t.Error("expected nil monitor for nil config")
		}
	})

	t.Run("empty subsystem defaults to block", func(t *testing.T) {
		cfg := testsupport.NewConfig(t)
		cfg.Watch.Subsystem = ""
		m := New(cfg, nil, nil)
		if m.subsystem != "block" {
			t.Errorf("expected block subsystem, got %q", m.subsystem)
		}
		if m.source != cfg.SourceDir() {
			t.Errorf("expected source %q, got %q", cfg.SourceDir(), m.source)
		}
	})
}

func TestMonitorStopStartIdempotency(t *testing.T) {
	t.Run("nil monitor is safe", func(t *testing.T) {
		var m *Monitor
		m.Stop()
		if m.Running() {
			t.Error("expected Running() false for nil monitor")
		}
		if err := m.Start(context.Background()); err != nil {
			t.Fatalf("Start on nil monitor should return nil, got: %v", err)
		}
	})

	t.Run("double stop on unstarted monitor is safe", func(t *testing.T) {
		m := New(testsupport.NewConfig(t), nil, nil)
		m.Stop()
		m.Stop()
		if m.Running() {
			t.Error("expected Running() false after Stop")
		}
	})
}

func TestBuildMatcher(t *testing.T) {
	m := New(testsupport.NewConfig(t), nil, nil)
	matcher := m.buildMatcher()

	if !matcher.Evaluate(addEvent("/dev/sdb1")) {
		t.Error("expected matcher to accept block add")
	}
	remove := netlink.UEvent{Action: netlink.REMOVE, Env: map[string]string{"SUBSYSTEM": "block"}}
	if !matcher.Evaluate(remove) {
		t.Error("expected matcher to accept block remove")
	}
	change := netlink.UEvent{Action: netlink.CHANGE, Env: map[string]string{"SUBSYSTEM": "block"}}
	if matcher.Evaluate(change) {
		t.Error("expected matcher to reject change events")
	}
	usb := netlink.UEvent{Action: netlink.ADD, Env: map[string]string{"SUBSYSTEM": "usb"}}
	if matcher.Evaluate(usb) {
		t.Error("expected matcher to reject other subsystems")
	}
}

func TestHandleEvent(t *testing.T) {
	t.Run("calls handler once source appears", func(t *testing.T) {
		cfg := testsupport.NewConfig(t, testsupport.WithSourceDir())
		var devices []string
		m := newTestMonitor(t, cfg, func(_ context.Context, device string) error {
			devices = append(devices, device)
			return nil
		})

		m.handleEvent(context.Background(), addEvent("sdb1"))
		if len(devices) != 1 || devices[0] != "/dev/sdb1" {
			t.Fatalf("expected one call for /dev/sdb1, got %v", devices)
		}
	})

	t.Run("skips repeated add until remove", func(t *testing.T) {
		cfg := testsupport.NewConfig(t, testsupport.WithSourceDir())
		calls := 0
		m := newTestMonitor(t, cfg, func(context.Context, string) error {
			calls++
			return nil
		})

		m.handleEvent(context.Background(), addEvent("/dev/sdb"))
		m.handleEvent(context.Background(), addEvent("/dev/sdb1"))
		if calls != 1 {
			t.Fatalf("expected 1 call for disk and partition events, got %d", calls)
		}

		m.handleEvent(context.Background(), netlink.UEvent{
			Action: netlink.REMOVE,
			Env:    map[string]string{"SUBSYSTEM": "block", "DEVNAME": "/dev/sdb1"},
		})
		m.handleEvent(context.Background(), addEvent("/dev/sdb1"))
		if calls != 2 {
			t.Fatalf("expected re-armed monitor to fire again, got %d", calls)
		}
	})

	t.Run("no handler call when source never appears", func(t *testing.T) {
		cfg := testsupport.NewConfig(t)
		called := false
		m := newTestMonitor(t, cfg, func(context.Context, string) error {
			called = true
			return nil
		})
		m.settle = 50 * time.Millisecond

		m.handleEvent(context.Background(), addEvent("/dev/sdc1"))
		if called {
			t.Fatal("handler must not run without a source directory")
		}
		if !m.armed {
			t.Fatal("monitor should stay armed after a device without a source directory")
		}
	})

	t.Run("handler error keeps monitor disarmed", func(t *testing.T) {
		cfg := testsupport.NewConfig(t, testsupport.WithSourceDir())
		m := newTestMonitor(t, cfg, func(context.Context, string) error {
			return errors.New("lock held")
		})

		m.handleEvent(context.Background(), addEvent("/dev/sdb1"))
		if m.armed {
			t.Fatal("expected monitor to wait for removal after a triggered run")
		}
	})
}

func TestWaitForSource(t *testing.T) {
	t.Run("returns immediately when present", func(t *testing.T) {
		if err := waitForSource(context.Background(), t.TempDir(), time.Second, 10*time.Millisecond); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})

	t.Run("picks up a late mount", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "DCIM", "100CANON")
		go func() {
			time.Sleep(30 * time.Millisecond)
			_ = os.MkdirAll(dir, 0o755)
		}()
		if err := waitForSource(context.Background(), dir, 2*time.Second, 5*time.Millisecond); err != nil {
			t.Fatalf("expected source to appear, got %v", err)
		}
	})

	t.Run("times out", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		err := waitForSource(context.Background(), dir, 30*time.Millisecond, 5*time.Millisecond)
		if !errors.Is(err, ErrSettleTimeout) {
			t.Fatalf("expected ErrSettleTimeout, got %v", err)
		}
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := waitForSource(ctx, filepath.Join(t.TempDir(), "missing"), time.Minute, time.Second)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestExtractDeviceName(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"absolute devname", map[string]string{"DEVNAME": "/dev/sdb1"}, "/dev/sdb1"},
		{"bare devname", map[string]string{"DEVNAME": "mmcblk0p1"}, "/dev/mmcblk0p1"},
		{"devpath fallback", map[string]string{"DEVPATH": "/devices/pci0000:00/usb1/1-1/host6/block/sdb/sdb1"}, "/dev/sdb1"},
		{"nothing", map[string]string{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDeviceName(netlink.UEvent{Env: tt.env}); got != tt.want {
				t.Fatalf("extractDeviceName = %q, want %q", got, tt.want)
			}
		})
	}
}
