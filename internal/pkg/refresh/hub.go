package refresh

import (
	"sync"
	"time"
)

// Event tells roster subscribers that sessions changed on a date. Generation
// is the request ordering token: a consumer that started a fetch for
// generation N discards its result once a higher generation exists for the
// same date (last-requested-wins, not last-completed-wins).
type Event struct {
	Date       string
	Generation uint64
}

// Hub coalesces bursts of mutation notifications per date into one event
// after a quiet period, so rapid repeated changes trigger a single refetch.
type Hub struct {
	mu          sync.Mutex
	quiet       time.Duration
	subscribers map[string]map[chan Event]struct{}
	timers      map[string]*time.Timer
	generations map[string]uint64
}

// NewHub creates a hub with the given quiet period between a notification
// burst and the event it emits.
func NewHub(quiet time.Duration) *Hub {
	return &Hub{
		quiet:       quiet,
		subscribers: make(map[string]map[chan Event]struct{}),
		timers:      make(map[string]*time.Timer),
		generations: make(map[string]uint64),
	}
}

// Subscribe registers a subscriber for a date key and returns the event
// channel and a cleanup function.
func (h *Hub) Subscribe(date string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[date] == nil {
		h.subscribers[date] = make(map[chan Event]struct{})
	}
	h.subscribers[date][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[date], ch)
		close(ch)
		if len(h.subscribers[date]) == 0 {
			delete(h.subscribers, date)
		}
	}

	return ch, cleanup
}

// Notify records a change on the date. The generation advances immediately;
// the broadcast happens once the date has been quiet for the configured
// period, carrying whatever generation is current at that moment.
func (h *Hub) Notify(date string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.generations[date]++

	if t, ok := h.timers[date]; ok {
		if !t.Reset(h.quiet) {
			// The timer already fired and its broadcast is waiting on the
			// lock; it will carry the generation bumped above. Reset re-armed
			// the expired timer, so disarm it or the burst emits twice.
			t.Stop()
		}
		return
	}
	h.timers[date] = time.AfterFunc(h.quiet, func() {
		h.broadcast(date)
	})
}

// Generation returns the current request generation for a date. Consumers
// compare it against the generation their fetch started with.
func (h *Hub) Generation(date string) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.generations[date]
}

func (h *Hub) broadcast(date string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.timers, date)
	ev := Event{Date: date, Generation: h.generations[date]}

	for ch := range h.subscribers[date] {
		select {
		case ch <- ev:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}
