package occ

import (
	"fmt"
	"testing"
	"time"
)

func TestCheck(t *testing.T) {
	stale := int64(1_000_000)
	current := int64(2_000_000)

	tests := []struct {
		name         string
		server       int64
		client       *int64
		wantConflict bool
	}{
		{"matching version succeeds", current, &current, false},
		{"stale version conflicts", current, &stale, true},
		{"omitted version always succeeds", current, nil, false},
		{"omitted version succeeds even against zero", 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.server, tt.client)
			if tt.wantConflict {
				if !IsConflict(err) {
					t.Fatalf("Check() = %v, want Conflict", err)
				}
				c := err.(*Conflict)
				if c.ServerUpdatedAt != tt.server || c.ClientUpdatedAt != *tt.client {
					t.Errorf("Conflict = %+v, want server=%d client=%d", c, tt.server, *tt.client)
				}
			} else if err != nil {
				t.Fatalf("Check() = %v, want nil", err)
			}
		})
	}
}

func TestConflictCarriesBothVersions(t *testing.T) {
	c := &Conflict{ServerUpdatedAt: 42, ClientUpdatedAt: 7}
	want := fmt.Sprintf("record changed since last read (server version %d, client version %d)", 42, 7)
	if c.Error() != want {
		t.Errorf("Error() = %q, want %q", c.Error(), want)
	}
}

func TestNextStampStrictlyLater(t *testing.T) {
	prev := int64(0)
	for i := 0; i < 1000; i++ {
		next := NextStamp(prev)
		if next <= prev {
			t.Fatalf("NextStamp(%d) = %d, not strictly later", prev, next)
		}
		prev = next
	}
}

func TestNextStampAgainstFutureClock(t *testing.T) {
	future := time.Now().Add(time.Hour).UnixMicro()
	if next := NextStamp(future); next != future+1 {
		t.Errorf("NextStamp(future) = %d, want %d", next, future+1)
	}
}
