// Package main hosts the dcimport CLI entrypoint and command graph.
//
// Running dcimport with no arguments copies today's photos off the mounted
// camera card. The remaining commands are maintenance helpers: config
// scaffolding, a read-only status check, and a udev-driven watch mode that
// runs the same transfer whenever a card appears.
//
// Keep this package lean: transfer behavior lives in internal/transfer and
// the commands here only resolve configuration, logging, and locking.
package main
