package editline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func qty(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := ParseDate(v)
	if err != nil {
		t.Fatalf("parse %q: %v", v, err)
	}
	return d
}

func TestOpenMarksSingleOriginalRow(t *testing.T) {
	src := Line{ShipmentItemID: 7, BinLocation: "A-1", Product: &ProductRef{ID: 1}, QuantityShipped: qty(5)}
	rows := Open(src)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if !rows[0].Disabled || !rows[0].OriginalLine || rows[0].NewLine {
		t.Fatalf("unexpected flags: %+v", rows[0])
	}
	if rows[0].ShipmentItemID != 7 || rows[0].BinLocation != "A-1" {
		t.Fatalf("expected source values to be kept, got %+v", rows[0])
	}
}

func TestAddRowCopiesProductAndBin(t *testing.T) {
	src := Line{ShipmentItemID: 7, BinLocation: "A-1", Product: &ProductRef{ID: 3, Code: "P3"}, LotNumber: "L1"}
	rows := AddRow(Open(src), src)
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}
	added := rows[1]
	if !added.NewLine || added.Disabled || added.OriginalLine {
		t.Fatalf("unexpected flags on added row: %+v", added)
	}
	if added.ShipmentItemID != 0 || added.LotNumber != "" || added.BinLocation != "A-1" {
		t.Fatalf("unexpected added row: %+v", added)
	}
	if added.Product == nil || added.Product.ID != 3 {
		t.Fatalf("expected product copy, got %+v", added.Product)
	}
	added.Product.Code = "changed"
	if src.Product.Code != "P3" {
		t.Fatalf("added row shares product pointer with source")
	}
}

func TestNormalizeQuantities(t *testing.T) {
	half, _ := decimal.NewFromString("0.5")
	huge, _ := decimal.NewFromString("18446744073709551616")
	rows := []Line{
		{QuantityShipped: decimal.NullDecimal{}, QuantityReceiving: qty(3)},
		{QuantityShipped: qty(0), QuantityReceiving: qty(3)},
		{QuantityShipped: decimal.NewNullDecimal(half), QuantityReceiving: qty(3)},
		{QuantityShipped: qty(4), QuantityReceiving: qty(3)},
		{QuantityShipped: qty(-2), QuantityReceiving: qty(1)},
		{QuantityShipped: decimal.NewNullDecimal(huge), QuantityReceiving: qty(1)},
	}
	out := NormalizeQuantities(rows)

	for i, wantNull := range []bool{true, true, true, false, false, false} {
		if got := !out[i].QuantityReceiving.Valid; got != wantNull {
			t.Fatalf("row %d: expected null=%v, got %+v", i, wantNull, out[i].QuantityReceiving)
		}
	}
	if !rows[0].QuantityReceiving.Valid {
		t.Fatalf("input rows were mutated")
	}
}

func TestValidate(t *testing.T) {
	minimum := mustDate(t, "01/01/2020")
	controlled := &ProductRef{ID: 2, LotAndExpiryControl: true}

	tests := []struct {
		name string
		row  Line
		want FieldErrors
	}{
		{
			name: "valid",
			row:  Line{QuantityShipped: qty(5), LotNumber: "L1", ExpirationDate: "01/01/2030"},
			want: nil,
		},
		{
			name: "missing quantity",
			row:  Line{},
			want: FieldErrors{FieldQuantityShipped: CodeEnterQuantityShipped},
		},
		{
			name: "negative quantity",
			row:  Line{QuantityShipped: qty(-1)},
			want: FieldErrors{FieldQuantityShipped: CodeQuantityShippedNegative},
		},
		{
			name: "expiry before minimum",
			row:  Line{QuantityShipped: qty(1), LotNumber: "L1", ExpirationDate: "12/31/2019"},
			want: FieldErrors{FieldExpirationDate: CodeInvalidDate},
		},
		{
			name: "expiry without leading zeros",
			row:  Line{QuantityShipped: qty(1), LotNumber: "L1", ExpirationDate: "1/5/2030"},
			want: nil,
		},
		{
			name: "unparseable expiry",
			row:  Line{QuantityShipped: qty(1), LotNumber: "L1", ExpirationDate: "soon"},
			want: FieldErrors{FieldExpirationDate: CodeInvalidDate},
		},
		{
			name: "expiry without lot",
			row:  Line{QuantityShipped: qty(5), LotNumber: "", ExpirationDate: "01/01/2030"},
			want: FieldErrors{FieldLotNumber: CodeExpiryWithoutLot},
		},
		{
			name: "expiry without lot replaces quantity error",
			row:  Line{ExpirationDate: "01/01/2030"},
			want: FieldErrors{FieldLotNumber: CodeExpiryWithoutLot},
		},
		{
			name: "controlled product missing both",
			row:  Line{QuantityShipped: qty(1), Product: controlled},
			want: FieldErrors{FieldExpirationDate: CodeLotAndExpiryControl, FieldLotNumber: CodeLotAndExpiryControl},
		},
		{
			name: "controlled product missing expiry",
			row:  Line{QuantityShipped: qty(1), Product: controlled, LotNumber: "L1"},
			want: FieldErrors{FieldExpirationDate: CodeLotAndExpiryControl},
		},
		{
			name: "controlled product missing lot",
			row:  Line{QuantityShipped: qty(1), Product: controlled, ExpirationDate: "01/01/2030"},
			want: FieldErrors{FieldLotNumber: CodeLotAndExpiryControl},
		},
		{
			name: "controlled product replaces negative quantity",
			row:  Line{QuantityShipped: qty(-1), Product: controlled},
			want: FieldErrors{FieldExpirationDate: CodeLotAndExpiryControl, FieldLotNumber: CodeLotAndExpiryControl},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate([]Line{tt.row}, minimum)
			got := errs[0]
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Fatalf("field %s: expected %q, got %q", k, v, got[k])
				}
			}
		})
	}
}

func TestValidateWithoutMinimumOnlyRejectsUnparseableDates(t *testing.T) {
	rows := []Line{
		{QuantityShipped: qty(1), LotNumber: "L1", ExpirationDate: "01/01/1990"},
		{QuantityShipped: qty(1), LotNumber: "L1", ExpirationDate: "13/45/2030"},
	}
	errs := Validate(rows, time.Time{})
	if _, ok := errs[0]; ok {
		t.Fatalf("expected no error on row 0, got %v", errs[0])
	}
	if errs[1][FieldExpirationDate] != CodeInvalidDate {
		t.Fatalf("expected invalid date on row 1, got %v", errs[1])
	}
}

func TestValidateReportsPerRow(t *testing.T) {
	rows := []Line{
		{QuantityShipped: qty(1)},
		{},
		{QuantityShipped: qty(2), ExpirationDate: "01/01/2030"},
	}
	errs := Validate(rows, time.Time{})
	if errs.Empty() {
		t.Fatalf("expected errors")
	}
	if _, ok := errs[0]; ok {
		t.Fatalf("row 0 should be valid, got %v", errs[0])
	}
	if errs[1][FieldQuantityShipped] != CodeEnterQuantityShipped {
		t.Fatalf("unexpected row 1 errors: %v", errs[1])
	}
	if errs[2][FieldLotNumber] != CodeExpiryWithoutLot {
		t.Fatalf("unexpected row 2 errors: %v", errs[2])
	}
}

func TestValidateRequiresProductOnAddedRows(t *testing.T) {
	rows := []Line{
		{QuantityShipped: qty(1), OriginalLine: true},
		{QuantityShipped: qty(2), NewLine: true},
		{QuantityShipped: qty(3), NewLine: true, Product: &ProductRef{ID: 1}},
	}
	errs := Validate(rows, time.Time{})
	if _, ok := errs[0]; ok {
		t.Fatalf("row 0 should be valid, got %v", errs[0])
	}
	if errs[1][FieldProduct] != CodeProductRequired || len(errs[1]) != 1 {
		t.Fatalf("unexpected row 1 errors: %v", errs[1])
	}
	if _, ok := errs[2]; ok {
		t.Fatalf("row 2 should be valid, got %v", errs[2])
	}
}

func TestNeedsExpiryConfirmation(t *testing.T) {
	prior := []Line{{Product: &ProductRef{ID: 1}, LotNumber: "L1", QuantityOnHand: qty(10), ExpirationDate: "01/01/2030"}}

	changed := []Line{{Product: &ProductRef{ID: 1}, LotNumber: "L1", ExpirationDate: "02/01/2030"}}
	if !NeedsExpiryConfirmation(prior, changed) {
		t.Fatalf("expected confirmation for expiry change with stock on hand")
	}

	same := []Line{{Product: &ProductRef{ID: 1}, LotNumber: "L1", ExpirationDate: "01/01/2030"}}
	if NeedsExpiryConfirmation(prior, same) {
		t.Fatalf("unchanged expiry must not need confirmation")
	}

	otherLot := []Line{{Product: &ProductRef{ID: 1}, LotNumber: "L2", ExpirationDate: "02/01/2030"}}
	if NeedsExpiryConfirmation(prior, otherLot) {
		t.Fatalf("different lot must not need confirmation")
	}

	noStock := []Line{{Product: &ProductRef{ID: 1}, LotNumber: "L1", QuantityOnHand: qty(0), ExpirationDate: "01/01/2030"}}
	if NeedsExpiryConfirmation(noStock, changed) {
		t.Fatalf("zero on hand must not need confirmation")
	}

	unknownStock := []Line{{Product: &ProductRef{ID: 1}, LotNumber: "L1", ExpirationDate: "01/01/2030"}}
	if NeedsExpiryConfirmation(unknownStock, changed) {
		t.Fatalf("absent on hand must not need confirmation")
	}
}

func TestNeedsExpiryConfirmationUsesFirstPriorMatch(t *testing.T) {
	prior := []Line{
		{Product: &ProductRef{ID: 1}, LotNumber: "L1", QuantityOnHand: qty(0), ExpirationDate: "01/01/2030"},
		{Product: &ProductRef{ID: 1}, LotNumber: "L1", QuantityOnHand: qty(9), ExpirationDate: "01/01/2030"},
	}
	rows := []Line{{Product: &ProductRef{ID: 1}, LotNumber: "L1", ExpirationDate: "03/01/2030"}}
	if NeedsExpiryConfirmation(prior, rows) {
		t.Fatalf("expected the first matching prior row to decide")
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"":            "",
		" 2030-02-01": "02/01/2030",
		"02/01/2030":  "02/01/2030",
		"1/5/2030":    "01/05/2030",
		"12/5/2030":   "12/05/2030",
		"tomorrow":    "tomorrow",
	}
	for in, want := range cases {
		if got := NormalizeDate(in); got != want {
			t.Fatalf("NormalizeDate(%q): expected %q, got %q", in, want, got)
		}
	}
}
