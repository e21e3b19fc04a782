package stockmovement

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle stage of a stock movement.
type Status string

const (
	StatusCreated         Status = "CREATED"
	StatusRequesting      Status = "REQUESTING"
	StatusRequested       Status = "REQUESTED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusValidating      Status = "VALIDATING"
	StatusValidated       Status = "VALIDATED"
	StatusApproved        Status = "APPROVED"
	StatusPicking         Status = "PICKING"
	StatusPicked          Status = "PICKED"
	StatusChecking        Status = "CHECKING"
	StatusChecked         Status = "CHECKED"
	StatusPacked          Status = "PACKED"
	StatusReviewing       Status = "REVIEWING"
	StatusDispatched      Status = "DISPATCHED"
	StatusCanceled        Status = "CANCELED"
	StatusRejected        Status = "REJECTED"
)

// ErrUnknownStatus is returned by Parse for values outside the vocabulary.
var ErrUnknownStatus = errors.New("unknown stock movement status")

var statuses = []Status{
	StatusCreated,
	StatusRequesting,
	StatusRequested,
	StatusPendingApproval,
	StatusValidating,
	StatusValidated,
	StatusApproved,
	StatusPicking,
	StatusPicked,
	StatusChecking,
	StatusChecked,
	StatusPacked,
	StatusReviewing,
	StatusDispatched,
	StatusCanceled,
	StatusRejected,
}

// Statuses returns the vocabulary in lifecycle order.
func Statuses() []Status {
	return append([]Status(nil), statuses...)
}

// Parse maps a raw tag onto the vocabulary.
func Parse(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return s, nil
}

func (s Status) Valid() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the movement was canceled or rejected.
func (s Status) Terminal() bool {
	return s == StatusCanceled || s == StatusRejected
}

// Receivable reports whether lines of the movement can be edited at receiving.
func (s Status) Receivable() bool {
	return s == StatusDispatched
}

// LabelKey is the translation key of the status label.
func (s Status) LabelKey() string {
	return "stockMovement.status." + string(s)
}

func (s Status) String() string {
	return string(s)
}
