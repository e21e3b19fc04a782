package labels

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LotLabelData is one shipment line printed as a lot label.
type LotLabelData struct {
	ShipmentItemID     int64               `bun:"id"`
	MovementIdentifier string              `bun:"movement_identifier"`
	Destination        string              `bun:"destination"`
	BinLocation        string              `bun:"bin_location"`
	ProductCode        string              `bun:"product_code"`
	ProductName        string              `bun:"product_name"`
	LotNumber          string              `bun:"lot_number"`
	ExpirationDate     string              `bun:"expiration_date"`
	QuantityShipped    decimal.NullDecimal `bun:"quantity_shipped"`
}

// BarcodeValue is the code128 payload identifying the shipment line.
func (d LotLabelData) BarcodeValue() string {
	return fmt.Sprintf("L%08d", d.ShipmentItemID)
}
