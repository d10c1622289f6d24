package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"dcimport/internal/transfer"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckSourceDirectory verifies that the source directory exists and can be listed.
func CheckSourceDirectory(name, path string) Result {
	result := checkDirectory(name, path, unix.R_OK|unix.X_OK, "readable")
	if !result.Passed {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			result.Detail = fmt.Sprintf("%s (error: not found; is the device mounted?)", path)
		}
	}
	return result
}

// CheckDestinationBase verifies that the destination base is writable, or
// that the nearest existing ancestor is, so it can be created on demand.
func CheckDestinationBase(name, path string) Result {
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	} else if !os.IsNotExist(err) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	parent, err := nearestExistingParent(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created under %s)", path, parent)}
}

// CheckDatedDirectory reports whether the dated destination already exists.
// An existing directory is reused and its same-named files are overwritten.
func CheckDatedDirectory(name, path string) Result {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		entries, readErr := os.ReadDir(path)
		if readErr != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, readErr)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (exists, %d entries; same-named files are overwritten)", path, len(entries))}
	case err == nil:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	case os.IsNotExist(err):
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
}

// CheckCandidates counts the files a transfer would copy from dir.
func CheckCandidates(name, dir string) Result {
	names, err := transfer.SelectCandidates(dir)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("error: %v", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d %s file(s)", len(names), transfer.CandidateExtension)}
}

func checkDirectory(name, path string, mode uint32, okDetail string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

func nearestExistingParent(path string) (string, error) {
	current := filepath.Clean(path)
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return "", errors.New("no existing parent directory")
		}
		info, err := os.Stat(parent)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", parent)
			}
			return parent, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		current = parent
	}
}
