// Package util holds small helpers shared across the engine.
package util

import (
	"context"
	"strings"
	"time"
)

var sleep = time.Sleep

// WaitFor blocks for the given duration, returning early with the context
// error when the context is cancelled first.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// NormalizeToken lowercases and collapses inner whitespace. Used wherever the
// engine compares user-supplied or scraped text case-insensitively.
func NormalizeToken(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
