package editline

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the display and form format of expiry dates.
const DateLayout = "01/02/2006"

const (
	// inputDateLayout takes month and day with or without a leading zero.
	inputDateLayout = "1/2/2006"
	isoDateLayout   = "2006-01-02"
)

// ParseDate accepts M/D/YYYY, MM/DD/YYYY and ISO dates.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(inputDateLayout, v); err == nil {
		return t, nil
	}
	return time.Parse(isoDateLayout, v)
}

// FormatDate renders t as MM/DD/YYYY, or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// NormalizeDate rewrites a parseable date as MM/DD/YYYY and leaves anything
// else trimmed but untouched so validation can flag it.
func NormalizeDate(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	t, err := ParseDate(v)
	if err != nil {
		return v
	}
	return t.Format(DateLayout)
}

// Open returns the initial row set for source: exactly one disabled original row.
func Open(source Line) []Line {
	row := source
	row.Disabled = true
	row.OriginalLine = true
	row.NewLine = false
	return []Line{row}
}

// AddRow appends an enabled row for the same product and bin location as source.
func AddRow(rows []Line, source Line) []Line {
	out := make([]Line, 0, len(rows)+1)
	out = append(out, rows...)
	row := Line{
		BinLocation: source.BinLocation,
		NewLine:     true,
	}
	if source.Product != nil {
		p := *source.Product
		row.Product = &p
	}
	return append(out, row)
}

// NormalizeQuantities clears QuantityReceiving on rows whose shipped quantity
// is absent or has a zero integer part.
func NormalizeQuantities(rows []Line) []Line {
	out := make([]Line, len(rows))
	for i, row := range rows {
		if !row.QuantityShipped.Valid || row.QuantityShipped.Decimal.Truncate(0).IsZero() {
			row.QuantityReceiving = decimal.NullDecimal{}
		}
		out[i] = row
	}
	return out
}

// Validate checks every row against minimum. Each rule that applies replaces
// the row's errors, so the last applicable rule wins.
func Validate(rows []Line, minimum time.Time) Errors {
	errs := make(Errors)
	for i, row := range rows {
		var fe FieldErrors

		if !row.QuantityShipped.Valid {
			fe = FieldErrors{FieldQuantityShipped: CodeEnterQuantityShipped}
		}
		if row.QuantityShipped.Valid && row.QuantityShipped.Decimal.IsNegative() {
			fe = FieldErrors{FieldQuantityShipped: CodeQuantityShippedNegative}
		}

		expiry := strings.TrimSpace(row.ExpirationDate)
		lotBlank := strings.TrimSpace(row.LotNumber) == ""

		if expiry != "" {
			d, err := ParseDate(expiry)
			if err != nil || (!minimum.IsZero() && d.Before(minimum)) {
				fe = FieldErrors{FieldExpirationDate: CodeInvalidDate}
			}
		}
		if expiry != "" && lotBlank {
			fe = FieldErrors{FieldLotNumber: CodeExpiryWithoutLot}
		}
		if row.Product != nil && row.Product.LotAndExpiryControl {
			switch {
			case expiry == "" && lotBlank:
				fe = FieldErrors{
					FieldExpirationDate: CodeLotAndExpiryControl,
					FieldLotNumber:      CodeLotAndExpiryControl,
				}
			case expiry == "":
				fe = FieldErrors{FieldExpirationDate: CodeLotAndExpiryControl}
			case lotBlank:
				fe = FieldErrors{FieldLotNumber: CodeLotAndExpiryControl}
			}
		}

		if row.NewLine && row.Product == nil {
			fe = FieldErrors{FieldProduct: CodeProductRequired}
		}

		if fe != nil {
			errs[i] = fe
		}
	}
	return errs
}

// NeedsExpiryConfirmation reports whether saving rows would change the expiry
// of a lot that has stock on hand. Each row is compared with the first prior
// row of the same product and lot.
func NeedsExpiryConfirmation(prior, rows []Line) bool {
	for _, row := range rows {
		if row.Product == nil {
			continue
		}
		old, ok := findPrior(prior, row)
		if !ok {
			continue
		}
		if old.QuantityOnHand.Valid && !old.QuantityOnHand.Decimal.IsZero() && old.ExpirationDate != row.ExpirationDate {
			return true
		}
	}
	return false
}

func findPrior(prior []Line, row Line) (Line, bool) {
	for _, old := range prior {
		if old.Product == nil {
			continue
		}
		if old.Product.ID == row.Product.ID && old.LotNumber == row.LotNumber {
			return old, true
		}
	}
	return Line{}, false
}
