package ws

import (
	"sort"
	"sync"
	"time"
)

const (
	defaultBufferMaxLen = 1000
	defaultBufferMaxAge = 1 * time.Hour
)

// EventBuffer stores recent events for replay on reconnect. Sequence IDs are
// monotonically increasing, so the slice is always sorted by ID.
type EventBuffer struct {
	mu     sync.RWMutex
	events []Event
	maxAge time.Duration
	maxLen int
}

// NewEventBuffer creates an EventBuffer with the given limits.
func NewEventBuffer(maxLen int, maxAge time.Duration) *EventBuffer {
	return &EventBuffer{
		maxAge: maxAge,
		maxLen: maxLen,
	}
}

// Append stores an event for potential replay, evicting expired and excess
// entries from the front.
func (eb *EventBuffer) Append(event *Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	cutoff := time.Now().Add(-eb.maxAge)
	buf := eb.events
	for len(buf) > 0 && buf[0].Time.Before(cutoff) {
		buf = buf[1:]
	}

	buf = append(buf, *event)
	if excess := len(buf) - eb.maxLen; excess > 0 {
		buf = buf[excess:]
	}

	eb.events = buf
}

// Since returns a copy of all buffered events with ID > lastEventID, or nil
// if there are none.
func (eb *EventBuffer) Since(lastEventID uint64) []Event {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	buf := eb.events
	first := sort.Search(len(buf), func(i int) bool {
		return buf[i].ID > lastEventID
	})
	if first == len(buf) {
		return nil
	}

	out := make([]Event, len(buf)-first)
	copy(out, buf[first:])

	return out
}

// OldestID returns the oldest buffered event ID, or 0 if the buffer is empty.
func (eb *EventBuffer) OldestID() uint64 {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if len(eb.events) == 0 {
		return 0
	}

	return eb.events[0].ID
}
