package devicewatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pilebones/go-udev/netlink"

	"dcimport/internal/config"
	"dcimport/internal/logging"
)

// ErrSettleTimeout is returned when the source directory does not appear
// within the configured settle window.
var ErrSettleTimeout = errors.New("source directory did not appear")

// Handler runs once per detected device.
type Handler func(ctx context.Context, device string) error

// Monitor watches netlink for device add events.
type Monitor struct {
	source    string
	subsystem string
	settle    time.Duration
	interval  time.Duration
	logger    *slog.Logger
	handler   Handler

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
	armed   bool
}

// New creates a monitor for cfg. It returns nil for a nil config.
func New(cfg *config.Config, logger *slog.Logger, handler Handler) *Monitor {
	if cfg == nil {
		return nil
	}
	subsystem := strings.TrimSpace(cfg.Watch.Subsystem)
	if subsystem == "" {
		subsystem = "block"
	}
	return &Monitor{
		source:    cfg.SourceDir(),
		subsystem: subsystem,
		settle:    time.Duration(cfg.Watch.SettleTimeout) * time.Second,
		interval:  time.Duration(cfg.Watch.PollInterval) * time.Millisecond,
		logger:    logging.NewComponentLogger(logger, "device-watch"),
		handler:   handler,
		armed:     true,
	}
}

// Start connects to the kernel uevent socket and begins listening.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		logging.ErrorWithContext(m.logger, "failed to connect to netlink socket", "netlink_connect_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "ensure the process may open NETLINK_KOBJECT_UEVENT sockets"),
			logging.String(logging.FieldImpact, "automatic transfers unavailable"),
		)
		return fmt.Errorf("connect netlink: %w", err)
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("device watch started",
		logging.String(logging.FieldEventType, "device_watch_started"),
		logging.String("subsystem", m.subsystem),
		logging.String("source", m.source),
	)
	return nil
}

// Stop shuts down the monitor. It is safe to call more than once.
func (m *Monitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.running = false

	m.logger.Info("device watch stopped",
		logging.String(logging.FieldEventType, "device_watch_stopped"),
	)
}

// Running reports whether the monitor is active.
func (m *Monitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, m.buildMatcher())

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, uevent)
		case err := <-errs:
			logging.WarnWithContext(m.logger, "netlink monitor error", "netlink_monitor_error",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check kernel netlink subsystem"),
				logging.String(logging.FieldImpact, "device detection may be affected"),
			)
		}
	}
}

// buildMatcher accepts add and remove events for the configured subsystem.
func (m *Monitor) buildMatcher() netlink.Matcher {
	action := "add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": m.subsystem,
		},
	})
	return rules
}

func (m *Monitor) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	device := extractDeviceName(uevent)

	if uevent.Action == netlink.REMOVE {
		m.mu.Lock()
		m.armed = true
		m.mu.Unlock()
		m.logger.Debug("device removed; watch re-armed", logging.String("device", device))
		return
	}

	m.mu.Lock()
	armed := m.armed
	m.mu.Unlock()
	if !armed {
		m.logger.Debug("ignoring add event; transfer already ran for the current device",
			logging.String("device", device),
		)
		return
	}

	m.logger.Info("device added",
		logging.String(logging.FieldEventType, "device_added"),
		logging.String("device", device),
	)

	if err := waitForSource(ctx, m.source, m.settle, m.interval); err != nil {
		if errors.Is(err, ErrSettleTimeout) {
			m.logger.Info("source directory not present on device",
				logging.String("device", device),
				logging.String("source", m.source),
				logging.Duration("waited", m.settle),
			)
			return
		}
		m.logger.Debug("settle wait interrupted", logging.Error(err))
		return
	}

	m.mu.Lock()
	m.armed = false
	m.mu.Unlock()

	if m.handler == nil {
		return
	}
	if err := m.handler(ctx, device); err != nil {
		logging.WarnWithContext(m.logger, "device-triggered transfer failed", "watch_handler_failed",
			logging.Error(err),
			logging.String("device", device),
			logging.String(logging.FieldErrorHint, "run dcimport manually to see the full output"),
			logging.String(logging.FieldImpact, "files from this device were not transferred"),
		)
	}
}

// waitForSource polls until path is a directory, the timeout elapses, or ctx
// is cancelled.
func waitForSource(ctx context.Context, path string, timeout, interval time.Duration) error {
	if isDir(path) {
		return nil
	}
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if isDir(path) {
				return nil
			}
			return fmt.Errorf("%w within %s: %s", ErrSettleTimeout, timeout, path)
		case <-ticker.C:
			if isDir(path) {
				return nil
			}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// extractDeviceName gets the device path from a uevent.
func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		if strings.HasPrefix(devname, "/") {
			return devname
		}
		return "/dev/" + devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}
	parts := strings.Split(devpath, "/")
	return "/dev/" + parts[len(parts)-1]
}
