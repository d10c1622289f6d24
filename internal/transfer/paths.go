package transfer

import (
	"path/filepath"
	"time"

	"dcimport/internal/config"
)

// DateLayout names destination directories: 4-digit year, 2-digit month,
// 2-digit day.
const DateLayout = "2006-01-02"

// Paths holds the resolved source and destination directories of one run.
type Paths struct {
	Source      string
	Destination string
}

// SourceDir joins the mount point and the device subdirectory.
func SourceDir(mountPoint, subdir string) string {
	return filepath.Join(mountPoint, subdir)
}

// DestinationDir joins base with day formatted as YYYY-MM-DD.
func DestinationDir(base string, day time.Time) string {
	return filepath.Join(base, day.Format(DateLayout))
}

// ResolvePaths composes both run directories. It performs no I/O.
func ResolvePaths(cfg config.Transfer, day time.Time) Paths {
	return Paths{
		Source:      SourceDir(cfg.MountPoint, cfg.SourceSubdir),
		Destination: DestinationDir(cfg.DestinationBase, day),
	}
}
