package lines

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	sessioncontext "inbound/frontend/shared/context"
	sharedhtml "inbound/frontend/shared/html"
	"inbound/frontend/shared/nav"
	"inbound/infrastructure/sqlite"
)

// ReceivingPageQueryHandler renders the lines of a movement by bin location.
func ReceivingPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid movement id", http.StatusBadRequest)
			return
		}
		data, err := LoadReceiving(r.Context(), db, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "stock movement not found", http.StatusNotFound)
				return
			}
			slog.Error("load receiving page failed", slog.Int64("movement_id", id), slog.Any("err", err))
			http.Error(w, "failed to load receiving page", http.StatusInternalServerError)
			return
		}

		t := sessioncontext.GetTranslatorFromContext(r.Context())
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		if !data.CanEdit {
			data.Message = t.Translate("receiving.page.readOnly", "Only dispatched stock movements can be received. This movement is read-only.")
			data.IsError = true
		}
		if msg := strings.TrimSpace(r.URL.Query().Get("status")); msg != "" {
			data.Message, data.IsError = msg, false
		}
		if msg := strings.TrimSpace(r.URL.Query().Get("error")); msg != "" {
			data.Message, data.IsError = msg, true
		}

		title := t.Translate("receiving.page.title", "Partial receiving")
		page := sharedhtml.Page(title, t.Lang(), nav.TopNav(nav.BuildTopNavData(session, t), t), ReceivingPage(data, t))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render receiving page", http.StatusInternalServerError)
			return
		}
	}
}
