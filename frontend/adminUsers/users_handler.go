package adminusers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"inbound/frontend/shared/context"
	sharedhtml "inbound/frontend/shared/html"
	"inbound/frontend/shared/nav"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
)

// UsersPageQueryHandler renders the admin users list page.
func UsersPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		data, err := LoadUsersPageData(r.Context(), db)
		if err != nil {
			slog.Error("admin users: failed to load data", slog.Any("err", err))
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}

		data.Status = r.URL.Query().Get("status")
		data.ErrorMessage = r.URL.Query().Get("error")

		t := context.GetTranslatorFromContext(r.Context())
		page := sharedhtml.Page(t.Translate("admin.users.title", "Users"), t.Lang(), nav.TopNav(nav.BuildTopNavData(session, t), t), UsersListPage(data, t))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render users page", http.StatusInternalServerError)
			return
		}
	}
}

func CreateUserCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := context.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/inbound/admin/users?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		role := strings.TrimSpace(r.FormValue("role"))

		if err := CreateUser(r.Context(), db, auditSvc, session.UserID, username, password, role); err != nil {
			if !errors.Is(err, ErrUsernameExists) && !errors.Is(err, ErrInvalidRole) &&
				!errors.Is(err, ErrUsernameRequired) && !errors.Is(err, ErrPasswordRequired) {
				slog.Warn("admin users: create failed", slog.String("username", username), slog.Any("err", err))
			}
			// Password policy errors and other validation messages are safe to return as-is.
			http.Redirect(w, r, "/inbound/admin/users?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, "/inbound/admin/users?status="+url.QueryEscape("user created"), http.StatusSeeOther)
	}
}
