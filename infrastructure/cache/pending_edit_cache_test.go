package cache

import (
	"testing"
	"time"
)

func TestPendingEditCacheTakeResolvesOnce(t *testing.T) {
	c := NewPendingEditCache[string](time.Minute)
	token := c.Put("rows")

	v, ok := c.Take(token)
	if !ok || v != "rows" {
		t.Fatalf("expected stored value, got %q ok=%v", v, ok)
	}
	if _, ok := c.Take(token); ok {
		t.Fatalf("expected second take to miss")
	}
}

func TestPendingEditCacheExpires(t *testing.T) {
	c := NewPendingEditCache[int](time.Minute)
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	token := c.Put(42)
	now = now.Add(2 * time.Minute)
	if _, ok := c.Take(token); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestPendingEditCachePutSweepsExpired(t *testing.T) {
	c := NewPendingEditCache[int](time.Minute)
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put(1)
	c.Put(2)
	now = now.Add(time.Hour)
	c.Put(3)
	if got := c.Len(); got != 1 {
		t.Fatalf("expected 1 live entry, got %d", got)
	}
}

func TestPendingEditCacheRejectsMalformedToken(t *testing.T) {
	c := NewPendingEditCache[int](time.Minute)
	c.Put(1)
	if _, ok := c.Take("not-a-token"); ok {
		t.Fatalf("expected malformed token to miss")
	}
}
