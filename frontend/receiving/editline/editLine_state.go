package editline

import (
	"context"
	"fmt"
	"time"
)

// Phase is the stage of one modal interaction.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseEditing
	PhaseAwaitingConfirmation
	PhaseSaved
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseEditing:
		return "editing"
	case PhaseAwaitingConfirmation:
		return "awaiting_confirmation"
	case PhaseSaved:
		return "saved"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the view model of the modal. Reduce never mutates it in place.
type State struct {
	Phase    Phase
	Source   Line
	Snapshot []Line
	Rows     []Line
	Errors   Errors
	Pending  []Line
}

// Action is an input to Reduce.
type Action interface {
	action()
}

// ActionOpen seeds the modal from the line's current value.
type ActionOpen struct {
	Source Line
}

// ActionAddRow appends a new row for the source product.
type ActionAddRow struct{}

// ActionSetRows replaces the working rows with the submitted form rows.
type ActionSetRows struct {
	Rows []Line
}

// ActionSubmit validates rows and decides between saving and confirming.
type ActionSubmit struct {
	Rows    []Line
	Minimum time.Time
}

// ActionResolve answers the expiry confirmation dialog. Dismissal is Yes=false.
type ActionResolve struct {
	Yes bool
}

// ActionClose discards the modal state.
type ActionClose struct{}

func (ActionOpen) action()    {}
func (ActionAddRow) action()  {}
func (ActionSetRows) action() {}
func (ActionSubmit) action()  {}
func (ActionResolve) action() {}
func (ActionClose) action()   {}

// Reduce is the single transition function of the modal.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ActionOpen:
		rows := Open(a.Source)
		return State{
			Phase:    PhaseEditing,
			Source:   a.Source,
			Snapshot: cloneLines(rows),
			Rows:     rows,
			Errors:   Errors{},
		}

	case ActionAddRow:
		if s.Phase != PhaseEditing {
			return s
		}
		s.Rows = AddRow(s.Rows, s.Source)
		return s

	case ActionSetRows:
		if s.Phase != PhaseEditing {
			return s
		}
		s.Rows = cloneLines(a.Rows)
		return s

	case ActionSubmit:
		if s.Phase != PhaseEditing {
			return s
		}
		s.Rows = cloneLines(a.Rows)
		s.Pending = nil
		s.Errors = Validate(s.Rows, a.Minimum)
		if !s.Errors.Empty() {
			return s
		}
		pending := NormalizeQuantities(s.Rows)
		s.Pending = pending
		if NeedsExpiryConfirmation(s.Snapshot, pending) {
			s.Phase = PhaseAwaitingConfirmation
			return s
		}
		s.Phase = PhaseSaved
		return s

	case ActionResolve:
		if s.Phase != PhaseAwaitingConfirmation {
			return s
		}
		if a.Yes {
			s.Phase = PhaseSaved
			return s
		}
		s.Phase = PhaseEditing
		s.Pending = nil
		return s

	case ActionClose:
		return State{Phase: PhaseClosed}
	}
	return s
}

func cloneLines(rows []Line) []Line {
	if rows == nil {
		return nil
	}
	out := make([]Line, len(rows))
	copy(out, rows)
	return out
}

// Controller runs Reduce and calls the Saver when an edit reaches PhaseSaved.
type Controller struct {
	saver  Saver
	target SaveTarget
	state  State
}

// NewController resumes an interaction at state.
func NewController(saver Saver, target SaveTarget, state State) *Controller {
	return &Controller{saver: saver, target: target, state: state}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Target returns where the edit will be saved.
func (c *Controller) Target() SaveTarget {
	return c.target
}

// Dispatch applies a and returns the state it entered. Entering PhaseSaved
// saves the pending rows once and closes the controller. When the save fails
// the controller keeps its previous state.
func (c *Controller) Dispatch(ctx context.Context, a Action) (State, error) {
	next := Reduce(c.state, a)
	if next.Phase != PhaseSaved || c.state.Phase == PhaseSaved {
		c.state = next
		return next, nil
	}
	if c.saver == nil {
		return c.state, fmt.Errorf("save edit line: no saver configured")
	}
	if err := c.saver.SaveEditLine(ctx, next.Pending, c.target.ParentIndex, c.target.Values, c.target.RowIndex); err != nil {
		return c.state, fmt.Errorf("save edit line: %w", err)
	}
	c.state = Reduce(next, ActionClose{})
	return next, nil
}

// Confirmation describes the expiry update dialog.
type Confirmation struct {
	Title   string
	Message string
	Yes     string
	No      string
}

// NewConfirmation translates the dialog texts.
func NewConfirmation(t Translator) Confirmation {
	return Confirmation{
		Title:   translate(t, "receiving.confirmSave.title", "Confirm save"),
		Message: translate(t, "receiving.confirmExpiryDateUpdate.message", "This will update the expiry date across all depots in the system. Are you sure you want to proceed?"),
		Yes:     translate(t, "default.yes", "Yes"),
		No:      translate(t, "default.no", "No"),
	}
}

// ErrorMessage translates an error code.
func ErrorMessage(t Translator, code string) string {
	def, ok := codeDefaults[code]
	if !ok {
		def = code
	}
	return translate(t, code, def)
}

func translate(t Translator, key, def string) string {
	if t == nil {
		return def
	}
	return t.Translate(key, def)
}
