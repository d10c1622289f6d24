package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeTransfer(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeWatch()
	return nil
}

func (c *Config) normalizeTransfer() error {
	if value, ok := os.LookupEnv("DCIMPORT_MOUNT_POINT"); ok && strings.TrimSpace(value) != "" {
		c.Transfer.MountPoint = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("DCIMPORT_DESTINATION"); ok && strings.TrimSpace(value) != "" {
		c.Transfer.DestinationBase = strings.TrimSpace(value)
	}

	var err error
	if c.Transfer.MountPoint, err = expandPath(strings.TrimSpace(c.Transfer.MountPoint)); err != nil {
		return fmt.Errorf("transfer.mount_point: %w", err)
	}
	if c.Transfer.DestinationBase, err = expandPath(strings.TrimSpace(c.Transfer.DestinationBase)); err != nil {
		return fmt.Errorf("transfer.destination_base: %w", err)
	}

	// The subdirectory is joined under the mount point, so it stays relative.
	subdir := strings.TrimSpace(c.Transfer.SourceSubdir)
	if subdir != "" {
		subdir = filepath.Clean(subdir)
	}
	c.Transfer.SourceSubdir = subdir
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

// Omitted timings keep their defaults from the decode target; explicit
// non-positive values are left for Validate to reject.
func (c *Config) normalizeWatch() {
	c.Watch.Subsystem = strings.TrimSpace(c.Watch.Subsystem)
	if c.Watch.Subsystem == "" {
		c.Watch.Subsystem = defaultWatchSubsystem
	}
}
