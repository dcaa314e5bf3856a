package ratelimit

import (
	"sync"
	"time"
)

// Kind identifies the endpoint family a cooldown applies to.
type Kind string

const (
	KindUpload  Kind = "upload"
	KindContact Kind = "contact"
)

const (
	uploadCooldown  = 30 * time.Second
	contactCooldown = 24 * time.Hour

	sweepInterval = 10 * time.Minute
)

// Cooldown returns the minimum wait between accepted requests for a kind.
// Unknown kinds fall back to the upload cooldown.
func (k Kind) Cooldown() time.Duration {
	if k == KindContact {
		return contactCooldown
	}
	return uploadCooldown
}

type record struct {
	lastSubmission time.Time
	cooldown       time.Duration
}

// Limiter enforces a per-(client, kind) cooldown between accepted requests.
// Check-and-record is atomic so two near-simultaneous requests from the same
// client cannot both be admitted.
type Limiter struct {
	mu      sync.Mutex
	records map[string]record
	now     func() time.Time
	done    chan struct{}
}

// New creates a Limiter and starts its eviction sweep. Callers own the
// lifecycle and must Stop it on shutdown.
func New() *Limiter {
	l := &Limiter{
		records: make(map[string]record),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	go l.sweep()

	return l
}

// NewWithClock creates a Limiter with an injected clock and no eviction sweep.
// For tests.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		records: make(map[string]record),
		now:     now,
		done:    make(chan struct{}),
	}
}

// Stop halts the eviction sweep.
func (l *Limiter) Stop() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

// Check reports whether a request from client may proceed for the given kind.
// When denied, retryAfter is the whole number of seconds to wait, rounded up.
// Admitted requests update the client's last-submission time; denied requests
// leave it untouched.
func (l *Limiter) Check(client string, kind Kind) (allowed bool, retryAfter int) {
	cooldown := kind.Cooldown()
	key := client + "_" + string(kind)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.records[key]; ok {
		elapsed := now.Sub(rec.lastSubmission)
		if elapsed < cooldown {
			return false, ceilSeconds(cooldown - elapsed)
		}
	}

	l.records[key] = record{lastSubmission: now, cooldown: cooldown}
	return true, 0
}

// Len returns the number of tracked keys. For tests and monitoring.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// evictStale drops entries idle for at least twice their cooldown. An entry
// past its cooldown admits the next request anyway, so eviction never changes
// an admission decision.
func (l *Limiter) evictStale() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, rec := range l.records {
		if now.Sub(rec.lastSubmission) >= 2*rec.cooldown {
			delete(l.records, key)
		}
	}
}

func (l *Limiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.evictStale()
		}
	}
}

func ceilSeconds(d time.Duration) int {
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	return int(secs)
}
