package session

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"
)

const CookieName = "X-Session-Token"

// DefaultTTL covers one receiving shift.
const DefaultTTL = 12 * time.Hour

// Policy decides how long a login lasts and how its cookie is issued.
type Policy struct {
	TTL    time.Duration
	Secure bool
}

// DefaultPolicy lasts DefaultTTL and allows plain HTTP cookies.
func DefaultPolicy() Policy {
	return Policy{TTL: DefaultTTL}
}

func (p Policy) ttl() time.Duration {
	if p.TTL <= 0 {
		return DefaultTTL
	}
	return p.TTL
}

// Expiry is the session expiry for a login made at now.
func (p Policy) Expiry(now time.Time) time.Time {
	return now.Add(p.ttl())
}

// Cookie issues the session cookie for token.
func (p Policy) Cookie(token string) *http.Cookie {
	return p.cookie(token, int(p.ttl()/time.Second))
}

// Clear expires the session cookie in the browser.
func (p Policy) Clear() *http.Cookie {
	return p.cookie("", -1)
}

func (p Policy) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   p.Secure,
	}
}

// NewToken returns a random URL-safe token.
func NewToken() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}
