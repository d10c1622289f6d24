package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"dcimport/internal/transfer"
)

// Printer writes transfer events as plain console lines.
type Printer struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
}

// NewPrinter returns a Printer for out. Color is enabled when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	if out == nil {
		out = io.Discard
	}
	return &Printer{out: out, colorize: ShouldColorize(out)}
}

// ShouldColorize reports whether writer is an interactive terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Printer) Destination(path string) {
	p.println(text.Colors{text.FgCyan}, fmt.Sprintf("Destination: '%s'", path))
}

func (p *Printer) Copying(name string) {
	p.println(nil, fmt.Sprintf("Copying '%s'...", name))
}

// CopyFailed distinguishes operating-system I/O errors from files that cannot
// be copied at all, such as pipes or directories.
func (p *Printer) CopyFailed(name string, err error) {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		p.println(text.Colors{text.FgRed}, fmt.Sprintf("I/O error with file '%s': %v", name, err))
		return
	}
	p.println(text.Colors{text.FgRed}, fmt.Sprintf("Error copying '%s': %v", name, err))
}

func (p *Printer) Finished(copied int) {
	p.println(text.Colors{text.FgGreen}, fmt.Sprintf("\nFinished. Copied %d files.", copied))
}

// Aborted prints the diagnostic for a run that stopped before copying.
func (p *Printer) Aborted(err error) {
	var notFound *transfer.SourceNotFoundError
	var envErr *transfer.EnvironmentError
	switch {
	case errors.As(err, &notFound):
		p.println(text.Colors{text.FgRed}, fmt.Sprintf("Error: Source directory not found at '%s'", notFound.Path))
		p.println(nil, "Please ensure the USB drive is mounted and the path is correct.")
	case errors.As(err, &envErr) && envErr.Op == transfer.OpCreateDestination:
		p.println(text.Colors{text.FgRed}, fmt.Sprintf("Error: Could not create destination directory '%s': %v", envErr.Path, envErr.Err))
	case errors.As(err, &envErr):
		p.println(text.Colors{text.FgRed}, fmt.Sprintf("Error: Could not read source directory '%s': %v", envErr.Path, envErr.Err))
	default:
		p.println(text.Colors{text.FgRed}, fmt.Sprintf("Error: %v", err))
	}
}

func (p *Printer) println(color text.Colors, line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.colorize && len(color) > 0 {
		line = color.Sprint(line)
	}
	fmt.Fprintln(p.out, line)
}

var _ transfer.Reporter = (*Printer)(nil)
