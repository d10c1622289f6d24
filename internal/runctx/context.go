// Package runctx carries per-run identifiers through context.Context so log
// records from every component of one transfer can be correlated.
package runctx

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	triggerKey contextKey = "trigger"
)

// WithRunID annotates context with the transfer run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTrigger records what started the run (manual, udev).
func WithTrigger(ctx context.Context, trigger string) context.Context {
	if trigger == "" {
		return ctx
	}
	return context.WithValue(ctx, triggerKey, trigger)
}

// TriggerFromContext returns the trigger name if present.
func TriggerFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(triggerKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
