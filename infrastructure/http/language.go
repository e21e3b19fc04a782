package http

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	sessioncontext "inbound/frontend/shared/context"
	"inbound/infrastructure/i18n"
)

// LanguageMiddleware puts the request translator in the context.
func (s *Server) LanguageMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Catalog == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := sessioncontext.NewContextWithTranslator(r.Context(), s.Catalog.FromRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetLanguageHandler stores the picked language and goes back to the page the
// user came from.
func (s *Server) SetLanguageHandler(w http.ResponseWriter, r *http.Request) {
	code := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "code")))
	if s.Catalog == nil || !slices.Contains(s.Catalog.Languages(), code) {
		http.Error(w, "unsupported language", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, i18n.LanguageCookie(code, 365*24*60*60))
	http.Redirect(w, r, localReferer(r), http.StatusSeeOther)
}

func localReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}
