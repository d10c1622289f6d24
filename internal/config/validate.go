package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTransfer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateWatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTransfer() error {
	if strings.TrimSpace(c.Transfer.MountPoint) == "" {
		return errors.New("transfer.mount_point must be set")
	}
	if strings.TrimSpace(c.Transfer.DestinationBase) == "" {
		return errors.New("transfer.destination_base must be set")
	}
	subdir := c.Transfer.SourceSubdir
	if strings.TrimSpace(subdir) == "" {
		return errors.New("transfer.source_subdir must be set (use \".\" for the mount point itself)")
	}
	if filepath.IsAbs(subdir) {
		return fmt.Errorf("transfer.source_subdir must be relative to the mount point, got %q", subdir)
	}
	if subdir == ".." || strings.HasPrefix(subdir, ".."+string(filepath.Separator)) {
		return fmt.Errorf("transfer.source_subdir must stay under the mount point, got %q", subdir)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q (use debug, info, warn, or error)", c.Logging.Level)
	}
}

func (c *Config) validateWatch() error {
	if err := ensurePositiveMap(map[string]int{
		"watch.settle_timeout": c.Watch.SettleTimeout,
		"watch.poll_interval":  c.Watch.PollInterval,
	}); err != nil {
		return err
	}
	if c.Watch.PollInterval >= c.Watch.SettleTimeout*1000 {
		return errors.New("watch.poll_interval (ms) must be shorter than watch.settle_timeout (s)")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
