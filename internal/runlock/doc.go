// Package runlock serializes transfers with an advisory file lock so a manual
// run and a watch-triggered run never write into the same dated directory at
// once.
package runlock
