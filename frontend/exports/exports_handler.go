package exports

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	sessioncontext "inbound/frontend/shared/context"
	"inbound/infrastructure/sqlite"
)

func ReceivingExportCSVHandler(db *sqlite.DB) http.HandlerFunc {
	return exportHandler(db, "receiving_csv", "text/csv", "csv", writeCSV)
}

func ReceivingExportXLSXHandler(db *sqlite.DB) http.HandlerFunc {
	return exportHandler(db, "receiving_xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", writeXLSX)
}

func exportHandler(db *sqlite.DB, exportType, contentType, ext string, write func(io.Writer, Table) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movementID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
		if err != nil || movementID <= 0 {
			http.Error(w, "invalid movement id", http.StatusBadRequest)
			return
		}
		table, err := ReceivingTable(r.Context(), db, movementID)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "movement not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "failed to load receiving lines", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := write(&buf, table); err != nil {
			slog.Error("export failed", slog.String("type", exportType), slog.Any("err", err))
			http.Error(w, "failed to export", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receiving-%d.%s", movementID, ext))
		_, _ = w.Write(buf.Bytes())

		if err := recordExportRun(r.Context(), db, sessionUserIDFromContext(r), movementID, exportType, len(table.Rows)); err != nil {
			slog.Error("record export run failed", slog.String("type", exportType), slog.Any("err", err))
		}
	}
}

func sessionUserIDFromContext(r *http.Request) *int64 {
	session, ok := sessioncontext.GetSessionFromContext(r.Context())
	if !ok || session.UserID <= 0 {
		return nil
	}
	id := session.UserID
	return &id
}
