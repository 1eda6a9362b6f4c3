package refresh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubCoalescesBurst(t *testing.T) {
	hub := NewHub(20 * time.Millisecond)
	events, cleanup := hub.Subscribe("2025-03-10")
	defer cleanup()

	// A burst of notifications inside the quiet period must produce a single
	// event carrying the final generation.
	hub.Notify("2025-03-10")
	hub.Notify("2025-03-10")
	hub.Notify("2025-03-10")

	select {
	case ev := <-events:
		assert.Equal(t, "2025-03-10", ev.Date)
		assert.Equal(t, uint64(3), ev.Generation)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected an event after the quiet period")
	}

	select {
	case ev := <-events:
		t.Fatalf("burst should coalesce into one event, got a second: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubGenerationAdvancesImmediately(t *testing.T) {
	hub := NewHub(time.Hour)

	require.Equal(t, uint64(0), hub.Generation("2025-03-10"))
	hub.Notify("2025-03-10")
	hub.Notify("2025-03-10")

	// The generation moves before any broadcast, so an in-flight fetch can
	// detect that it is already stale.
	assert.Equal(t, uint64(2), hub.Generation("2025-03-10"))
}

func TestHubDatesAreIndependent(t *testing.T) {
	hub := NewHub(10 * time.Millisecond)
	events, cleanup := hub.Subscribe("2025-03-10")
	defer cleanup()

	hub.Notify("2025-03-11")

	select {
	case ev := <-events:
		t.Fatalf("subscriber for another date got an event: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}

	hub.Notify("2025-03-10")
	select {
	case ev := <-events:
		assert.Equal(t, "2025-03-10", ev.Date)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected an event for the subscribed date")
	}
}

func TestHubBurstNeverRepeatsGeneration(t *testing.T) {
	// A near-zero quiet period makes notifications race the expiring timer;
	// each delivered event must still carry a strictly higher generation than
	// the one before it.
	hub := NewHub(time.Nanosecond)
	events, cleanup := hub.Subscribe("2025-03-12")
	defer cleanup()

	for i := 0; i < 50; i++ {
		hub.Notify("2025-03-12")
	}

	var last uint64
	deadline := time.After(300 * time.Millisecond)
	for {
		select {
		case ev := <-events:
			if ev.Generation <= last {
				t.Fatalf("generation %d delivered after %d", ev.Generation, last)
			}
			last = ev.Generation
		case <-deadline:
			require.NotZero(t, last, "expected at least one event")
			return
		}
	}
}

func TestHubCleanupStopsDelivery(t *testing.T) {
	hub := NewHub(10 * time.Millisecond)
	events, cleanup := hub.Subscribe("2025-03-10")
	cleanup()

	hub.Notify("2025-03-10")
	time.Sleep(50 * time.Millisecond)

	// The channel is closed by cleanup; no event may have been delivered.
	ev, ok := <-events
	assert.False(t, ok, "channel should be closed, got %+v", ev)
}
