// Package occ implements the optimistic-concurrency check used for
// shared editable records (itinerary items, polls).
//
// A record's version is its UpdatedAt timestamp in Unix microseconds.
// Clients echo back the value they last fetched; a write only succeeds
// if it still matches the persisted value. This is a single-shot
// compare-and-swap, not a lock: the first writer to commit wins and
// later writers observe a Conflict and must re-fetch. The storage layer
// closes the read-then-write race by applying changes with a single
// conditional UPDATE on (id, updated_at).
package occ

import (
	"errors"
	"fmt"
	"time"
)

// Conflict reports a stale write. It carries both timestamps so the
// caller can present a diff/refresh UI; the API layer serializes it
// into an HTTP 409 body.
type Conflict struct {
	// ServerUpdatedAt is the currently persisted version.
	ServerUpdatedAt int64 `json:"serverUpdatedAt"`

	// ClientUpdatedAt is the stale version the client sent.
	ClientUpdatedAt int64 `json:"clientUpdatedAt"`
}

func (c *Conflict) Error() string {
	return fmt.Sprintf("record changed since last read (server version %d, client version %d)",
		c.ServerUpdatedAt, c.ClientUpdatedAt)
}

// IsConflict reports whether err is (or wraps) a Conflict.
func IsConflict(err error) bool {
	var c *Conflict
	return errors.As(err, &c)
}

// Check compares the persisted version against the one the client last
// observed. A nil clientUpdatedAt skips the check entirely: that is the
// deliberate force-overwrite escape hatch. Otherwise only an exact
// match passes.
func Check(serverUpdatedAt int64, clientUpdatedAt *int64) error {
	if clientUpdatedAt == nil {
		return nil
	}
	if *clientUpdatedAt != serverUpdatedAt {
		return &Conflict{
			ServerUpdatedAt: serverUpdatedAt,
			ClientUpdatedAt: *clientUpdatedAt,
		}
	}
	return nil
}

// NextStamp returns the version for a successful write: the current
// time, but always strictly after prev so a successful update is
// observably newer even under coarse or stepped clocks.
func NextStamp(prev int64) int64 {
	now := time.Now().UTC().UnixMicro()
	if now <= prev {
		return prev + 1
	}
	return now
}
