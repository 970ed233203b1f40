// Package security provides abuse-protection primitives for the admin API.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	BruteForceMaxAttempts = 5
	BruteForceWindow      = 15 * time.Minute
	BruteForceLockout     = 5 * time.Minute
	bruteForceSweepEvery  = 60 * time.Second
	bruteForceMaxRecords  = 10000
)

// failureRecord counts auth failures for one source within the tracking
// window. lockedAt is non-zero while the source is locked out.
type failureRecord struct {
	attempts  int
	firstFail time.Time
	lockedAt  time.Time
}

func (r *failureRecord) expired(now time.Time) bool {
	if !r.lockedAt.IsZero() {
		return now.Sub(r.lockedAt) >= BruteForceLockout
	}
	return now.Sub(r.firstFail) >= BruteForceWindow
}

// BruteForceGuard tracks authentication failures per source (client IP) and
// blocks sources that exceed the failure threshold within the tracking window.
// Sources are stored hashed so raw IPs never sit in memory or logs.
type BruteForceGuard struct {
	mu      sync.Mutex
	records map[string]*failureRecord
	log     *logrus.Logger
}

// NewBruteForceGuard creates a guard and starts a background sweep goroutine
// that stops when ctx is cancelled.
func NewBruteForceGuard(ctx context.Context, log *logrus.Logger) *BruteForceGuard {
	g := &BruteForceGuard{
		records: make(map[string]*failureRecord),
		log:     log,
	}
	go g.sweepLoop(ctx)
	return g
}

func sourceHash(source string) string {
	h := sha256.Sum256([]byte(source))
	return hex.EncodeToString(h[:])
}

// IsBlocked returns true if the given source is currently locked out.
func (g *BruteForceGuard) IsBlocked(source string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[sourceHash(source)]

	return ok && !rec.lockedAt.IsZero() && time.Since(rec.lockedAt) < BruteForceLockout
}

// RecordFailure records a failed authentication attempt for the given source.
func (g *BruteForceGuard) RecordFailure(source string) {
	sh := sourceHash(source)
	now := time.Now()

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[sh]
	switch {
	case !ok:
		g.records[sh] = &failureRecord{attempts: 1, firstFail: now}
	case now.Sub(rec.firstFail) > BruteForceWindow:
		// The tracking window elapsed; start over.
		rec.attempts = 1
		rec.firstFail = now
		rec.lockedAt = time.Time{}
	default:
		rec.attempts++
		if rec.attempts >= BruteForceMaxAttempts {
			rec.lockedAt = now
			g.log.WithField("source_hash", sh[:16]+"...").Warn("source locked out due to repeated auth failures")
		}
	}
}

// Reset clears failure tracking for a source (call on successful auth).
func (g *BruteForceGuard) Reset(source string) {
	g.mu.Lock()
	delete(g.records, sourceHash(source))
	g.mu.Unlock()
}

func (g *BruteForceGuard) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(bruteForceSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			g.sweep(now)
		}
	}
}

// sweep drops expired records, then trims the table to its size bound.
func (g *BruteForceGuard) sweep(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for k, rec := range g.records {
		if rec.expired(now) {
			delete(g.records, k)
		}
	}
	if over := len(g.records) - bruteForceMaxRecords; over > 0 {
		g.evictOldest(over)
	}
}

// evictOldest removes n entries with the oldest firstFail times.
// Caller must hold g.mu.
func (g *BruteForceGuard) evictOldest(n int) {
	type entry struct {
		key  string
		time time.Time
	}
	entries := make([]entry, 0, len(g.records))
	for k, rec := range g.records {
		entries = append(entries, entry{k, rec.firstFail})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].time.Before(entries[j].time)
	})
	for i := 0; i < n; i++ {
		delete(g.records, entries[i].key)
	}
}
