package observability

import (
	"testing"
	"time"
)

func TestMetrics_SnapshotCopiesCounters(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest("/accounts", "POST", 201, 10*time.Millisecond)
	m.RecordRequest("/accounts", "POST", 201, 5*time.Millisecond)
	m.RecordError("/accounts", "POST", "DUPLICATE_EMAIL")

	snap := m.Snapshot()
	if snap.Requests["/accounts|POST|201"] != 2 {
		t.Fatalf("Requests = %v", snap.Requests)
	}
	if snap.Errors["/accounts|POST|DUPLICATE_EMAIL"] != 1 {
		t.Fatalf("Errors = %v", snap.Errors)
	}

	// Mutating the snapshot must not touch the live counters.
	snap.Requests["/accounts|POST|201"] = 99
	if got := m.Snapshot().Requests["/accounts|POST|201"]; got != 2 {
		t.Fatalf("live counter = %d after snapshot mutation", got)
	}
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordRequest("/x", "GET", 200, 0)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")

	snap := m.Snapshot()
	if len(snap.Requests) != 0 || len(snap.Errors) != 0 {
		t.Fatalf("nil metrics snapshot = %+v", snap)
	}
}
