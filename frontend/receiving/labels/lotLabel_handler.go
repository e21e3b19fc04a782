package labels

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"inbound/frontend/receiving/editline"
	"inbound/infrastructure/sqlite"
)

// LotLabelQueryHandler streams the lot label PDF of one shipment line.
func LotLabelQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movementID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
		if err != nil || movementID <= 0 {
			http.Error(w, "invalid movement id", http.StatusBadRequest)
			return
		}
		lineID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "lineID")), 10, 64)
		if err != nil || lineID <= 0 {
			http.Error(w, "invalid line id", http.StatusBadRequest)
			return
		}

		label, err := LoadLotLabel(r.Context(), db, movementID, lineID)
		if errors.Is(err, editline.ErrLineNotFound) {
			http.Error(w, "line not found", http.StatusNotFound)
			return
		}
		if err != nil {
			slog.Error("load lot label", slog.Int64("line_id", lineID), slog.Any("err", err))
			http.Error(w, "failed to load line", http.StatusInternalServerError)
			return
		}

		pdfBytes, err := renderLotLabelPDF(label, time.Now())
		if err != nil {
			http.Error(w, "failed to build label pdf", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=lot-%d-label.pdf", label.ShipmentItemID))
		_, _ = w.Write(pdfBytes)
	}
}
