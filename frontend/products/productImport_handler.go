package products

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	sessioncontext "inbound/frontend/shared/context"
	sharedhtml "inbound/frontend/shared/html"
	"inbound/frontend/shared/nav"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
)

func ProductImportPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := sessioncontext.GetTranslatorFromContext(r.Context())
		session, _ := sessioncontext.GetSessionFromContext(r.Context())

		message := r.URL.Query().Get("status")
		if message == "" {
			message = t.Translate("products.import.help", "Upload CSV with header: code,name,lot_and_expiry_control")
		}
		rows, err := ListProducts(r.Context(), db)
		if err != nil {
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}

		title := t.Translate("products.import.title", "Import products")
		page := sharedhtml.Page(title, t.Lang(), nav.TopNav(nav.BuildTopNavData(session, t), t), ProductImportPage(PageData{Message: message, Records: rows}, t))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render product import page", http.StatusInternalServerError)
			return
		}
	}
}

func ProductImportCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Redirect(w, r, "/inbound/products/import?status="+url.QueryEscape("Error: invalid upload"), http.StatusSeeOther)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Redirect(w, r, "/inbound/products/import?status="+url.QueryEscape("Error: file is required"), http.StatusSeeOther)
			return
		}
		defer file.Close()

		summary, err := ImportCSV(r.Context(), db, auditSvc, session.UserID, file)
		if err != nil {
			slog.Warn("product import failed", slog.Any("err", err))
			http.Redirect(w, r, "/inbound/products/import?status="+url.QueryEscape("Error: "+err.Error()), http.StatusSeeOther)
			return
		}
		msg := fmt.Sprintf("Import complete: inserted=%d updated=%d errors=%d", summary.Inserted, summary.Updated, summary.Errors)
		http.Redirect(w, r, "/inbound/products/import?status="+url.QueryEscape(msg), http.StatusSeeOther)
	}
}
