package settings

import (
	"log/slog"
	"net/http"
	"net/url"

	"inbound/frontend/receiving/editline"
	"inbound/frontend/shared/context"
	sharedhtml "inbound/frontend/shared/html"
	"inbound/frontend/shared/nav"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
)

func ReceivingSettingsPageHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minimum, err := LoadMinimumExpirationDate(r.Context(), db)
		if err != nil {
			slog.Error("load receiving settings failed", slog.Any("err", err))
			http.Error(w, "failed to load settings", http.StatusInternalServerError)
			return
		}
		t := context.GetTranslatorFromContext(r.Context())
		session, _ := context.GetSessionFromContext(r.Context())
		body := ReceivingSettingsPage(editline.FormatDate(&minimum), r.URL.Query().Get("status"), t)
		page := sharedhtml.Page(t.Translate("settings.receiving.title", "Receiving settings"), t.Lang(), nav.TopNav(nav.BuildTopNavData(session, t), t), body)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render settings page", http.StatusInternalServerError)
			return
		}
	}
}

func ReceivingSettingsUpdateHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := context.GetSessionFromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/inbound/settings/receiving?status=invalid+form", http.StatusSeeOther)
			return
		}
		if err := SaveMinimumExpirationDate(r.Context(), db, auditSvc, session.UserID, r.FormValue("minimum_expiration_date")); err != nil {
			slog.Warn("save receiving settings failed", slog.Any("err", err))
			http.Redirect(w, r, "/inbound/settings/receiving?status="+url.QueryEscape("save failed: use MM/DD/YYYY"), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/inbound/settings/receiving?status=saved", http.StatusSeeOther)
	}
}
