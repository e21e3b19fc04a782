package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingEditCache holds edits that wait for a user decision. Entries are
// keyed by a random token and expire after ttl.
type PendingEditCache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]pendingEntry[T]
}

type pendingEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func NewPendingEditCache[T any](ttl time.Duration) *PendingEditCache[T] {
	return &PendingEditCache[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]pendingEntry[T]),
	}
}

// Put stores v and returns its token.
func (c *PendingEditCache[T]) Put(v T) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.sweep(now)
	token := uuid.NewString()
	c.entries[token] = pendingEntry[T]{value: v, expiresAt: now.Add(c.ttl)}
	return token
}

// Take removes and returns the entry for token. A token resolves at most once.
func (c *PendingEditCache[T]) Take(token string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if _, err := uuid.Parse(token); err != nil {
		return zero, false
	}
	e, ok := c.entries[token]
	if !ok {
		return zero, false
	}
	delete(c.entries, token)
	if c.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Len counts entries, including expired ones not yet swept.
func (c *PendingEditCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *PendingEditCache[T]) sweep(now time.Time) {
	for token, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, token)
		}
	}
}
