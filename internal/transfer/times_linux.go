package transfer

import (
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// preserveTimes copies atime and mtime at nanosecond precision.
func preserveTimes(src, dst string, _ fs.FileInfo) error {
	var st unix.Stat_t
	if err := unix.Stat(src, &st); err != nil {
		return &os.PathError{Op: "stat", Path: src, Err: err}
	}
	if err := unix.UtimesNano(dst, []unix.Timespec{st.Atim, st.Mtim}); err != nil {
		return &os.PathError{Op: "utimensat", Path: dst, Err: err}
	}
	return nil
}
