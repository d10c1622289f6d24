// Package devicewatch listens for udev netlink events and triggers a transfer
// when a removable device carrying the configured source directory appears.
//
// The monitor replaces a udev rule that would otherwise call dcimport as
// root. After an add event it polls for the source directory until the
// desktop automounter has mounted the card, then calls the handler once.
// A remove event re-arms the monitor for the next card.
package devicewatch
