package editline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func renderField(t *testing.T, f Field, index int, row Line, errs FieldErrors) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Render(nil, index, row, errs).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render %s: %v", f.Name(), err)
	}
	return buf.String()
}

func TestNewLineFieldsOrderAndAttributes(t *testing.T) {
	products := []ProductRef{{ID: 1, Code: "P1", Name: "Paracetamol"}, {ID: 2, Code: "P2", Name: "Gauze"}}
	fields := NewLineFields(products)

	var names []string
	for _, f := range fields {
		names = append(names, f.Name())
	}
	want := []string{FieldProduct, FieldLotNumber, FieldExpirationDate, FieldQuantityShipped}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected field order: %v", names)
	}

	original := Line{Product: &products[0], Disabled: true, OriginalLine: true}
	added := Line{Product: &products[0], NewLine: true}

	if _, ok := fields[0].Attributes(original)["disabled"]; !ok {
		t.Fatalf("product field must be disabled on the original row")
	}
	if _, ok := fields[0].Attributes(added)["disabled"]; ok {
		t.Fatalf("product field must be enabled on added rows")
	}

	date := fields[2].Attributes(added)
	if date["data-date-format"] != "MM/DD/YYYY" || date["autocomplete"] != "off" {
		t.Fatalf("unexpected date attributes: %v", date)
	}
	if fields[3].Attributes(added)["type"] != "number" {
		t.Fatalf("quantity field must be numeric")
	}
	if fields[1].Label(nil) != "Lot" {
		t.Fatalf("expected default label, got %q", fields[1].Label(nil))
	}
}

func TestFieldRenderCarriesValuesAndErrors(t *testing.T) {
	products := []ProductRef{{ID: 1, Code: "P1", Name: "Paracetamol"}}
	fields := NewLineFields(products)
	row := Line{
		Product:         &products[0],
		Disabled:        true,
		LotNumber:       "L<1>",
		ExpirationDate:  "01/31/2030",
		QuantityShipped: decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
	}
	errs := FieldErrors{FieldLotNumber: CodeExpiryWithoutLot}

	product := renderField(t, fields[0], 0, row, nil)
	if !strings.Contains(product, `name="lines.0.product_id"`) || !strings.Contains(product, `type="hidden"`) {
		t.Fatalf("disabled product select must submit a hidden value: %s", product)
	}

	lot := renderField(t, fields[1], 2, row, errs)
	if !strings.Contains(lot, `name="lines.2.lot_number"`) || !strings.Contains(lot, "L&lt;1&gt;") {
		t.Fatalf("unexpected lot markup: %s", lot)
	}
	if !strings.Contains(lot, "input-error") || !strings.Contains(lot, CodeExpiryWithoutLot) {
		t.Fatalf("expected lot error markup: %s", lot)
	}
	if fields[1].ErrorFor(errs) != CodeExpiryWithoutLot || fields[2].ErrorFor(errs) != "" {
		t.Fatalf("unexpected ErrorFor results")
	}

	qty := renderField(t, fields[3], 0, row, nil)
	if !strings.Contains(qty, `value="4.5"`) {
		t.Fatalf("unexpected quantity markup: %s", qty)
	}
}
