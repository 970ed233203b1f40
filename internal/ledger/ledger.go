// Package ledger implements the append-only audit ledger that every mutating
// operation in the engine records into before returning.
package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cephas20k/secops/internal/clock"
	"github.com/cephas20k/secops/internal/models"
)

// DefaultQueryLimit caps query results when the caller passes no limit.
const DefaultQueryLimit = 120

// Ledger is an in-memory, time-ordered, append-only log of security events.
// Entries are never updated or removed; bounded retention belongs to an
// external archiver.
type Ledger struct {
	mu      sync.Mutex
	clock   clock.Clock
	seq     int64
	entries []models.AuditEntry
}

// New creates an empty Ledger.
func New(clk clock.Clock) *Ledger {
	return &Ledger{clock: clk}
}

// Append assigns the next sequence id and the current timestamp, stores the
// entry, and returns an immutable copy.
func (l *Ledger) Append(
	category models.AuditCategory, action, actor, target string,
	status models.AuditStatus, details map[string]any,
) models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := models.AuditEntry{
		ID:        fmt.Sprintf("%06d", l.seq),
		Timestamp: l.clock.Now(),
		Category:  category,
		Action:    action,
		Actor:     actor,
		Target:    target,
		Status:    status,
		Details:   cloneDetails(details),
	}
	l.entries = append(l.entries, entry)

	return copyEntry(entry)
}

// AppendAt is Append with a caller-supplied timestamp, for backfilling
// historical events and for operations that must pin one instant across
// several records.
func (l *Ledger) AppendAt(
	ts time.Time, category models.AuditCategory, action, actor, target string,
	status models.AuditStatus, details map[string]any,
) models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := models.AuditEntry{
		ID:        fmt.Sprintf("%06d", l.seq),
		Timestamp: ts,
		Category:  category,
		Action:    action,
		Actor:     actor,
		Target:    target,
		Status:    status,
		Details:   cloneDetails(details),
	}
	l.entries = append(l.entries, entry)

	return copyEntry(entry)
}

// Query returns entries sorted by timestamp descending, ties broken by
// reverse insertion order, optionally filtered to one category and truncated
// to limit (DefaultQueryLimit when limit <= 0).
func (l *Ledger) Query(category models.AuditCategory, limit int) []models.AuditEntry {
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AuditEntry, 0, limit)
	// Walking backward yields reverse insertion order, which is already
	// timestamp-descending for a monotonic clock; the stable sort below
	// corrects for any caller-injected clock that moved backward.
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, copyEntry(e))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out
}

// All returns a copy of every entry in insertion order, for analytics passes.
func (l *Ledger) All() []models.AuditEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.AuditEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = copyEntry(e)
	}

	return out
}

// Len returns the number of entries appended so far.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

func copyEntry(e models.AuditEntry) models.AuditEntry {
	e.Details = cloneDetails(e.Details)
	return e
}

func cloneDetails(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
