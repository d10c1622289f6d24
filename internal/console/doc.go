// Package console renders transfer progress for a human at a terminal.
//
// Printer implements transfer.Reporter and writes one line per event. Color is
// applied only when the writer is an interactive terminal.
package console
