package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNotRegular marks a candidate that is a directory, pipe, socket or
// device. Opening such a file could block or read without end.
var ErrNotRegular = errors.New("not a regular file")

// CopyFile copies src to dst, replacing any existing dst, then applies the
// source permission bits and access/modification times. Every failure is a
// *CopyError naming the step that failed.
func CopyFile(src, dst string) error {
	name := filepath.Base(src)
	fail := func(op string, err error) error {
		return &CopyError{Name: name, Op: op, Err: err}
	}

	info, err := os.Stat(src)
	if err != nil {
		return fail("open source", err)
	}
	if !info.Mode().IsRegular() {
		return fail("open source", fmt.Errorf("%w: %s", ErrNotRegular, fileKind(info.Mode())))
	}

	source, err := os.Open(src)
	if err != nil {
		return fail("open source", err)
	}
	defer source.Close()

	dest, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return fail("create destination", err)
	}

	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return fail("copy data", err)
	}
	if err := dest.Sync(); err != nil {
		dest.Close()
		return fail("sync destination", err)
	}
	if err := dest.Close(); err != nil {
		return fail("close destination", err)
	}

	// OpenFile only applies the mode when it creates the file.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fail("preserve mode", err)
	}
	if err := preserveTimes(src, dst, info); err != nil {
		return fail("preserve times", err)
	}
	return nil
}

func fileKind(mode os.FileMode) string {
	switch {
	case mode.IsDir():
		return "directory"
	case mode&os.ModeNamedPipe != 0:
		return "named pipe"
	case mode&os.ModeSocket != 0:
		return "socket"
	case mode&os.ModeDevice != 0:
		return "device"
	default:
		return "irregular file"
	}
}
