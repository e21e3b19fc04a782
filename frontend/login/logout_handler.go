package login

import (
	"log/slog"
	"net/http"

	"inbound/infrastructure/cache"
	"inbound/infrastructure/session"
	"inbound/infrastructure/sqlite"
)

// LogoutHandler drops the session from cache and storage, then clears the cookie.
func LogoutHandler(db *sqlite.DB, sessionCache *cache.UserSessionCache, policy session.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(session.CookieName); err == nil && cookie.Value != "" {
			sessionCache.DeleteSessionBySessionToken(cookie.Value)
			if err := DeleteSessionByToken(r.Context(), db, cookie.Value); err != nil {
				slog.Error("logout: delete session failed", slog.Any("err", err))
			}
		}
		http.SetCookie(w, policy.Clear())
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
