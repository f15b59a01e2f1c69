package service

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/vending-server/internal/purchase"
)

type pendingAttempt struct {
	attempt   purchase.Attempt
	expiresAt time.Time
}

// attemptRegistry holds evaluated attempts until they are confirmed, cancelled or expire.
// Each attempt can be taken once.
type attemptRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[uuid.UUID]pendingAttempt
}

func newAttemptRegistry(ttl time.Duration, now func() time.Time) *attemptRegistry {
	return &attemptRegistry{
		ttl:     ttl,
		now:     now,
		pending: make(map[uuid.UUID]pendingAttempt),
	}
}

func (r *attemptRegistry) put(attempt purchase.Attempt) (uuid.UUID, time.Time, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)
	expiresAt := now.Add(r.ttl)
	r.pending[id] = pendingAttempt{attempt: attempt, expiresAt: expiresAt}
	return id, expiresAt, nil
}

// take removes and returns the attempt. Expired attempts are reported as missing.
func (r *attemptRegistry) take(id uuid.UUID) (purchase.Attempt, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.pending[id]
	if !ok {
		return purchase.Attempt{}, false
	}
	delete(r.pending, id)
	if !r.now().Before(entry.expiresAt) {
		return purchase.Attempt{}, false
	}
	return entry.attempt, true
}

func (r *attemptRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *attemptRegistry) sweep(now time.Time) {
	for id, entry := range r.pending {
		if !now.Before(entry.expiresAt) {
			delete(r.pending, id)
		}
	}
}
