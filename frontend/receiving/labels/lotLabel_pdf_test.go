package labels

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRenderLotLabelPDF_GeneratesPDF(t *testing.T) {
	t.Parallel()

	pdf, err := renderLotLabelPDF(LotLabelData{
		ShipmentItemID:     10,
		MovementIdentifier: "SM-1",
		Destination:        "Clinic B",
		BinLocation:        "A",
		ProductCode:        "P1",
		ProductName:        "Paracetamol 500mg",
		LotNumber:          "L1",
		ExpirationDate:     "01/01/2030",
		QuantityShipped:    decimal.NewNullDecimal(decimal.NewFromInt(10)),
	}, time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("renderLotLabelPDF returned error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("expected pdf header")
	}
}

func TestRenderLotLabelsPDF_RejectsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := renderLotLabelsPDF(nil, time.Now()); err == nil {
		t.Fatalf("expected error for empty label list")
	}
}

func TestBarcodeValue(t *testing.T) {
	if got := (LotLabelData{ShipmentItemID: 42}).BarcodeValue(); got != "L00000042" {
		t.Fatalf("unexpected barcode value %q", got)
	}
}
