package cache

import (
	"testing"
	"time"

	"inbound/models"
)

func TestUserSessionCacheEvictsExpired(t *testing.T) {
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	c := NewUserSessionCache()
	c.now = func() time.Time { return now }

	c.AddSession(models.Session{ID: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)})
	c.AddSession(models.Session{ID: "stale", UserID: 1, ExpiresAt: now.Add(-time.Minute)})

	if _, ok := c.FindSessionBySessionToken("live"); !ok {
		t.Fatalf("expected live session")
	}
	if _, ok := c.FindSessionBySessionToken("stale"); ok {
		t.Fatalf("expected stale session to miss")
	}
	if _, ok := c.sessions["stale"]; ok {
		t.Fatalf("expected stale session evicted")
	}
}

func TestUserSessionCacheDeleteSessionsForUser(t *testing.T) {
	c := NewUserSessionCache()
	exp := time.Now().Add(time.Hour)
	c.AddSession(models.Session{ID: "a", UserID: 1, ExpiresAt: exp})
	c.AddSession(models.Session{ID: "b", UserID: 1, ExpiresAt: exp})
	c.AddSession(models.Session{ID: "c", UserID: 2, ExpiresAt: exp})

	if n := c.DeleteSessionsForUser(1); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if _, ok := c.FindSessionBySessionToken("c"); !ok {
		t.Fatalf("expected other user's session to survive")
	}
}
