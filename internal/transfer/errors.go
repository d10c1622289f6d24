package transfer

import (
	"errors"
	"fmt"
)

var (
	ErrSourceNotFound = errors.New("source directory not found")
	ErrEnvironment    = errors.New("environment failure")
	ErrCopy           = errors.New("copy failure")
)

// SourceNotFoundError reports that the resolved source path is missing or is
// not a directory. It aborts the run before any write.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source directory not found at %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("source directory not found at %q", e.Path)
}

func (e *SourceNotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSourceNotFound}
	}
	return []error{ErrSourceNotFound, e.Err}
}

// EnvironmentError reports a directory-level failure that aborts the run:
// the destination cannot be created or the source cannot be listed.
type EnvironmentError struct {
	Op   string
	Path string
	Err  error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *EnvironmentError) Unwrap() []error {
	return []error{ErrEnvironment, e.Err}
}

// CopyError reports why a single file could not be copied. It never aborts
// the run.
type CopyError struct {
	Name string
	Op   string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CopyError) Unwrap() []error {
	return []error{ErrCopy, e.Err}
}

// Operations recorded in EnvironmentError.Op.
const (
	OpCreateDestination = "create destination"
	OpListSource        = "list source"
)
