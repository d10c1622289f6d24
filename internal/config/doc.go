// Package config loads, normalizes, and validates dcimport configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DCIMPORT_MOUNT_POINT. With no file present the defaults reproduce the
// classic behaviour: copy from /media/camera/DCIM/100CANON into ~/photos.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
