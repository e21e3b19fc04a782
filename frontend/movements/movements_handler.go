package movements

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	sessioncontext "inbound/frontend/shared/context"
	sharedhtml "inbound/frontend/shared/html"
	"inbound/frontend/shared/nav"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/rbac"
	"inbound/infrastructure/sqlite"
	"inbound/infrastructure/stockmovement"
)

func MovementsPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := NormalizeFilter(r.URL.Query().Get("filter"))
		rows, err := List(r.Context(), db, filter)
		if err != nil {
			slog.Error("list stock movements failed", slog.Any("err", err))
			http.Error(w, "failed to load stock movements", http.StatusInternalServerError)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		t := sessioncontext.GetTranslatorFromContext(r.Context())
		data := PageData{
			Filter:   filter,
			IsAdmin:  session.HasRole(rbac.RoleAdmin),
			Message:  strings.TrimSpace(r.URL.Query().Get("status")),
			Statuses: stockmovement.Statuses(),
			Rows:     rows,
		}

		title := t.Translate("stockMovement.list.title", "Stock movements")
		page := sharedhtml.Page(title, t.Lang(), nav.TopNav(nav.BuildTopNavData(session, t), t), MovementsPage(data, t))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render stock movements page", http.StatusInternalServerError)
			return
		}
	}
}

func UpdateMovementStatusCommandHandler(db *sqlite.DB, auditSvc *audit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/inbound/movements?status="+url.QueryEscape("Invalid form data"), http.StatusSeeOther)
			return
		}
		movementID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || movementID <= 0 {
			http.Redirect(w, r, "/inbound/movements?status="+url.QueryEscape("Invalid stock movement id"), http.StatusSeeOther)
			return
		}
		status, err := stockmovement.Parse(r.FormValue("status"))
		if err != nil {
			http.Redirect(w, r, "/inbound/movements?status="+url.QueryEscape("Unknown status"), http.StatusSeeOther)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		if err := SetStatus(r.Context(), db, auditSvc, session.UserID, movementID, status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Redirect(w, r, "/inbound/movements?status="+url.QueryEscape("Stock movement not found"), http.StatusSeeOther)
				return
			}
			slog.Error("update stock movement status failed", slog.Int64("movement_id", movementID), slog.Any("err", err))
			http.Redirect(w, r, "/inbound/movements?status="+url.QueryEscape("Failed to update status"), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/inbound/movements?status="+url.QueryEscape("Status updated: "+string(status)), http.StatusSeeOther)
	}
}
