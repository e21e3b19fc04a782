package help

import (
	"net/http"

	sessioncontext "inbound/frontend/shared/context"
	sharedhtml "inbound/frontend/shared/html"
	"inbound/frontend/shared/nav"
	"inbound/infrastructure/rbac"
)

func HelpPageQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		data := PageData{
			IsAdmin:    session.User.Role == rbac.RoleAdmin,
			IsReceiver: session.User.Role == rbac.RoleReceiver,
		}

		t := sessioncontext.GetTranslatorFromContext(r.Context())
		page := sharedhtml.Page(t.Translate("help.title", "Help"), t.Lang(), nav.TopNav(nav.BuildTopNavData(session, t), t), HelpPage(data, t))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render help page", http.StatusInternalServerError)
			return
		}
	}
}
