package session

import (
	"net/http"
	"testing"
	"time"
)

func TestPolicyCookie(t *testing.T) {
	p := Policy{TTL: 2 * time.Hour, Secure: true}
	c := p.Cookie("abc")
	if c.Name != CookieName || c.Value != "abc" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if c.MaxAge != 7200 {
		t.Fatalf("expected max age 7200, got %d", c.MaxAge)
	}
	if !c.Secure || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie flags: %+v", c)
	}

	cleared := p.Clear()
	if cleared.MaxAge != -1 || cleared.Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", cleared)
	}
}

func TestPolicyZeroTTLFallsBackToDefault(t *testing.T) {
	now := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	if got := (Policy{}).Expiry(now); !got.Equal(now.Add(DefaultTTL)) {
		t.Fatalf("expected default ttl expiry, got %v", got)
	}
}

func TestNewTokenIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		tok := NewToken()
		if len(tok) != 43 {
			t.Fatalf("expected 43 char token, got %d", len(tok))
		}
		if seen[tok] {
			t.Fatalf("duplicate token %s", tok)
		}
		seen[tok] = true
	}
}
