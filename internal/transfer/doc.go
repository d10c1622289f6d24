// Package transfer copies camera images from a mounted device into a
// date-stamped directory in one linear, single-threaded pass.
//
// The Runner resolves the source (mount point + subdirectory) and destination
// (base + YYYY-MM-DD) paths, verifies the source directory exists, creates the
// destination, selects entries whose lowercased name ends in ".jpg", and
// copies each one with its permission bits and timestamps. Two conditions
// abort a run before any copy: a missing source (SourceNotFoundError) and an
// unusable destination (EnvironmentError). Everything that goes wrong with a
// single file is captured as a CopyError in that file's Outcome and the run
// moves on to the next candidate.
//
// Progress is delivered to a Reporter; the package itself never prints.
package transfer
