package editline

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	sessioncontext "inbound/frontend/shared/context"
	sharedhtml "inbound/frontend/shared/html"
	"inbound/frontend/shared/nav"
	"inbound/infrastructure/cache"
)

// PendingEdit is an edit waiting for the expiry confirmation.
type PendingEdit struct {
	UserID         int64
	MovementID     int64
	ShipmentItemID int64
	State          State
	Target         SaveTarget
}

// DefaultPendingTTL bounds how long a confirmation dialog stays answerable.
const DefaultPendingTTL = 10 * time.Minute

// PendingEdits is the confirmation store shared by the edit handlers.
type PendingEdits = cache.PendingEditCache[PendingEdit]

func NewPendingEdits(ttl time.Duration) *PendingEdits {
	return cache.NewPendingEditCache[PendingEdit](ttl)
}

// EditLineModalQueryHandler opens the modal on one shipment line.
func EditLineModalQueryHandler(source LineSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movementID, lineID, err := parseLineRoute(r)
		if err != nil {
			http.Error(w, "invalid line id", http.StatusBadRequest)
			return
		}
		src, ok := loadSource(w, r, source, movementID, lineID)
		if !ok {
			return
		}
		state := Reduce(State{}, ActionOpen{Source: src.Line})
		renderModal(w, r, http.StatusOK, state, src, movementID, lineID)
	}
}

// EditLineCommandHandler handles "add line" and "save" posts of the modal.
func EditLineCommandHandler(source LineSource, saver Saver, minimum MinimumDateFunc, pending *PendingEdits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movementID, lineID, err := parseLineRoute(r)
		if err != nil {
			http.Error(w, "invalid line id", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		src, ok := loadSource(w, r, source, movementID, lineID)
		if !ok {
			return
		}

		rows, err := ParseRows(r.PostForm, src.Line, src.Products)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		state := Reduce(Reduce(State{}, ActionOpen{Source: src.Line}), ActionSetRows{Rows: rows})
		if r.PostFormValue("action") == "add_row" {
			renderModal(w, r, http.StatusOK, Reduce(state, ActionAddRow{}), src, movementID, lineID)
			return
		}

		var minDate time.Time
		if minimum != nil {
			if minDate, err = minimum(r.Context()); err != nil {
				slog.Error("load minimum expiration date failed", slog.Any("err", err))
				http.Error(w, "failed to load settings", http.StatusInternalServerError)
				return
			}
		}

		ctrl := NewController(saver, src.Target, state)
		next, err := ctrl.Dispatch(r.Context(), ActionSubmit{Rows: rows, Minimum: minDate})
		if err != nil {
			handleSaveError(w, r, err, movementID)
			return
		}

		switch next.Phase {
		case PhaseSaved:
			redirectReceiving(w, r, movementID, "status", "line saved")
		case PhaseAwaitingConfirmation:
			session, _ := sessioncontext.GetSessionFromContext(r.Context())
			token := pending.Put(PendingEdit{
				UserID:         session.UserID,
				MovementID:     movementID,
				ShipmentItemID: lineID,
				State:          next,
				Target:         src.Target,
			})
			renderConfirm(w, r, movementID, lineID, token)
		default:
			renderModal(w, r, http.StatusUnprocessableEntity, next, src, movementID, lineID)
		}
	}
}

// ConfirmEditLineCommandHandler resolves a pending expiry confirmation.
func ConfirmEditLineCommandHandler(source LineSource, saver Saver, pending *PendingEdits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movementID, lineID, err := parseLineRoute(r)
		if err != nil {
			http.Error(w, "invalid line id", http.StatusBadRequest)
			return
		}

		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		edit, ok := pending.Take(chi.URLParam(r, "token"))
		if !ok || edit.UserID != session.UserID || edit.MovementID != movementID || edit.ShipmentItemID != lineID {
			slog.Warn("edit confirmation rejected", slog.Int64("movement_id", movementID), slog.Int64("line_id", lineID), slog.Any("err", ErrNoPendingEdit))
			redirectReceiving(w, r, movementID, "error", "edit expired, please try again")
			return
		}

		ctrl := NewController(saver, edit.Target, edit.State)
		next, err := ctrl.Dispatch(r.Context(), ActionResolve{Yes: r.PostFormValue("answer") == "yes"})
		if err != nil {
			handleSaveError(w, r, err, movementID)
			return
		}
		if next.Phase == PhaseSaved {
			redirectReceiving(w, r, movementID, "status", "line saved")
			return
		}

		src, ok := loadSource(w, r, source, movementID, lineID)
		if !ok {
			return
		}
		renderModal(w, r, http.StatusOK, next, src, movementID, lineID)
	}
}

func loadSource(w http.ResponseWriter, r *http.Request, source LineSource, movementID, lineID int64) (Source, bool) {
	src, err := source.LoadEditSource(r.Context(), movementID, lineID)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			http.Error(w, "line not found", http.StatusNotFound)
			return Source{}, false
		}
		slog.Error("load edit line source failed", slog.Int64("line_id", lineID), slog.Any("err", err))
		http.Error(w, "failed to load line", http.StatusInternalServerError)
		return Source{}, false
	}
	if src.ReadOnly {
		redirectReceiving(w, r, movementID, "error", "stock movement is read-only")
		return Source{}, false
	}
	return src, true
}

func handleSaveError(w http.ResponseWriter, r *http.Request, err error, movementID int64) {
	switch {
	case errors.Is(err, ErrReadOnly):
		redirectReceiving(w, r, movementID, "error", "stock movement is read-only")
	case errors.Is(err, ErrLineNotFound):
		http.Error(w, "line not found", http.StatusNotFound)
	default:
		slog.Error("save edit line failed", slog.Int64("movement_id", movementID), slog.Any("err", err))
		redirectReceiving(w, r, movementID, "error", "failed to save line")
	}
}

func renderModal(w http.ResponseWriter, r *http.Request, status int, state State, src Source, movementID, lineID int64) {
	t := sessioncontext.GetTranslatorFromContext(r.Context())
	body := EditLineModal(ModalView{
		State:      state,
		Fields:     NewLineFields(src.Products),
		Translator: t,
		ActionURL:  editURL(movementID, lineID),
		CancelURL:  receivingURL(movementID),
	})
	writePage(w, r, status, translate(t, "receiving.editLine.title", "Edit line"), body)
}

func renderConfirm(w http.ResponseWriter, r *http.Request, movementID, lineID int64, token string) {
	t := sessioncontext.GetTranslatorFromContext(r.Context())
	c := NewConfirmation(t)
	body := ConfirmDialog(c, editURL(movementID, lineID)+"/confirm/"+url.PathEscape(token))
	writePage(w, r, http.StatusOK, c.Title, body)
}

func writePage(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	t := sessioncontext.GetTranslatorFromContext(r.Context())
	session, _ := sessioncontext.GetSessionFromContext(r.Context())
	page := sharedhtml.Page(title, t.Lang(), nav.TopNav(nav.BuildTopNavData(session, t), t), body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(r.Context(), w); err != nil {
		slog.Error("render edit line page failed", slog.Any("err", err))
	}
}

func redirectReceiving(w http.ResponseWriter, r *http.Request, movementID int64, key, msg string) {
	http.Redirect(w, r, receivingURL(movementID)+"?"+key+"="+url.QueryEscape(msg), http.StatusSeeOther)
}

func receivingURL(movementID int64) string {
	return "/inbound/movements/" + strconv.FormatInt(movementID, 10) + "/receiving"
}

func editURL(movementID, lineID int64) string {
	return receivingURL(movementID) + "/lines/" + strconv.FormatInt(lineID, 10) + "/edit"
}

func parseLineRoute(r *http.Request) (int64, int64, error) {
	movementID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	lineID, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "lineID")), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return movementID, lineID, nil
}
