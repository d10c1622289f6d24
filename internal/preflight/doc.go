// Package preflight provides readiness checks for the filesystem paths that
// a transfer depends on.
//
// These checks never write. The CLI "dcimport status" command renders them
// as a table so a user can see whether the card is mounted and the
// destination is writable before running a transfer. The watch command runs
// the source check after a device appears.
package preflight
