package editline

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const maxRows = 50

var (
	ErrInvalidRowCount = errors.New("invalid line count")
	ErrUnknownProduct  = errors.New("unknown product")
)

// ParseRows reads the indexed row inputs of the modal form. Row 0 is always
// the original line; its identity and product come from source, not the form.
func ParseRows(form url.Values, source Line, products []ProductRef) ([]Line, error) {
	count, err := strconv.Atoi(strings.TrimSpace(form.Get("line_count")))
	if err != nil || count < 1 || count > maxRows {
		return nil, ErrInvalidRowCount
	}

	byID := make(map[int64]ProductRef, len(products)+1)
	for _, p := range products {
		byID[p.ID] = p
	}
	if source.Product != nil {
		byID[source.Product.ID] = *source.Product
	}

	rows := make([]Line, 0, count)
	for i := 0; i < count; i++ {
		get := func(name string) string {
			return strings.TrimSpace(form.Get(rowInputName(i, name)))
		}

		var row Line
		if i == 0 {
			row = Open(source)[0]
			row.QuantityReceiving = source.QuantityReceiving
		} else {
			row = Line{BinLocation: source.BinLocation, NewLine: true}
			if raw := get("product_id"); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", i, ErrUnknownProduct)
				}
				p, ok := byID[id]
				if !ok {
					return nil, fmt.Errorf("row %d: %w", i, ErrUnknownProduct)
				}
				row.Product = &p
			}
		}

		row.LotNumber = get("lot_number")
		row.ExpirationDate = NormalizeDate(get("expiration_date"))
		row.QuantityShipped = parseQuantity(get("quantity_shipped"))
		rows = append(rows, row)
	}
	return rows, nil
}

// parseQuantity treats blank and non-numeric input as absent.
func parseQuantity(v string) decimal.NullDecimal {
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
