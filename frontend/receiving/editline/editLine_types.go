package editline

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Field keys used in validation results.
const (
	FieldProduct         = "product"
	FieldLotNumber       = "lotNumber"
	FieldExpirationDate  = "expirationDate"
	FieldQuantityShipped = "quantityShipped"
)

// Error codes are translation keys.
const (
	CodeEnterQuantityShipped    = "receiving.error.enterQuantityShipped"
	CodeQuantityShippedNegative = "receiving.error.quantityShippedNegative"
	CodeInvalidDate             = "receiving.error.invalidDate"
	CodeExpiryWithoutLot        = "receiving.error.expiryWithoutLot"
	CodeLotAndExpiryControl     = "receiving.error.lotAndExpiryControl"
	CodeProductRequired         = "receiving.error.productRequired"
)

var codeDefaults = map[string]string{
	CodeEnterQuantityShipped:    "Enter quantity shipped",
	CodeQuantityShippedNegative: "Quantity shipped can't be negative",
	CodeInvalidDate:             "Invalid date",
	CodeExpiryWithoutLot:        "Items with an expiry date must also have a lot number",
	CodeLotAndExpiryControl:     "Both lot number and expiry date are required for this product",
	CodeProductRequired:         "Select a product",
}

var (
	// ErrNoPendingEdit is returned when a confirmation token is unknown,
	// expired or already resolved.
	ErrNoPendingEdit = errors.New("no pending edit for confirmation")
	ErrLineNotFound  = errors.New("shipment line not found")
	ErrReadOnly      = errors.New("stock movement is not receivable")
)

// ProductRef identifies the product of a line.
type ProductRef struct {
	ID                  int64
	Code                string
	Name                string
	LotAndExpiryControl bool
}

// Label is "CODE - Name".
func (p ProductRef) Label() string {
	if p.Name == "" {
		return p.Code
	}
	return p.Code + " - " + p.Name
}

// Line is one editable row of the modal.
type Line struct {
	ShipmentItemID    int64
	BinLocation       string
	Product           *ProductRef
	LotNumber         string
	ExpirationDate    string
	QuantityShipped   decimal.NullDecimal
	QuantityReceiving decimal.NullDecimal
	QuantityOnHand    decimal.NullDecimal
	Disabled          bool
	OriginalLine      bool
	NewLine           bool
}

// FieldErrors maps a field key to an error code.
type FieldErrors map[string]string

// Errors maps a row index to the errors of that row.
type Errors map[int]FieldErrors

// Empty reports whether no row has an error.
func (e Errors) Empty() bool {
	for _, fe := range e {
		if len(fe) > 0 {
			return false
		}
	}
	return true
}

// Container is one bin location of the receiving form.
type Container struct {
	BinLocation string
	Lines       []Line
}

// FormValues are the values of the whole receiving form the modal belongs to.
type FormValues struct {
	StockMovementID int64
	Containers      []Container
}

// SaveTarget locates the edited line inside the receiving form.
type SaveTarget struct {
	ParentIndex int
	RowIndex    int
	Values      FormValues
}

// Line returns the form line at the target position.
func (t SaveTarget) Line() (Line, bool) {
	if t.ParentIndex < 0 || t.ParentIndex >= len(t.Values.Containers) {
		return Line{}, false
	}
	lines := t.Values.Containers[t.ParentIndex].Lines
	if t.RowIndex < 0 || t.RowIndex >= len(lines) {
		return Line{}, false
	}
	return lines[t.RowIndex], true
}

// Saver persists the rows of a confirmed edit.
type Saver interface {
	SaveEditLine(ctx context.Context, rows []Line, parentIndex int, values FormValues, rowIndex int) error
}

// Translator resolves a message key, returning defaultMessage when unresolved.
type Translator interface {
	Translate(key, defaultMessage string) string
}

// Source is everything needed to open the modal on one shipment line.
type Source struct {
	Line     Line
	Target   SaveTarget
	Products []ProductRef
	ReadOnly bool
}

// LineSource loads the current value of a receiving line.
type LineSource interface {
	LoadEditSource(ctx context.Context, movementID, shipmentItemID int64) (Source, error)
}

// MinimumDateFunc returns the minimum expiration date of the session. A zero
// time disables the check.
type MinimumDateFunc func(ctx context.Context) (time.Time, error)
