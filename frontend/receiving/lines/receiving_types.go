package lines

import (
	"github.com/shopspring/decimal"

	"inbound/frontend/receiving/editline"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/stockmovement"
	"inbound/models"
)

var (
	ErrLineNotFound = editline.ErrLineNotFound
	ErrReadOnly     = editline.ErrReadOnly
)

// LineView is one shipment line with the on-hand quantity of its lot.
type LineView struct {
	ShipmentItemID      int64               `bun:"id"`
	ProductID           int64               `bun:"product_id"`
	ProductCode         string              `bun:"product_code"`
	ProductName         string              `bun:"product_name"`
	LotAndExpiryControl bool                `bun:"lot_and_expiry_control"`
	BinLocation         string              `bun:"bin_location"`
	LotNumber           string              `bun:"lot_number"`
	ExpirationDate      string              `bun:"expiration_date"`
	QuantityShipped     decimal.NullDecimal `bun:"quantity_shipped"`
	QuantityReceiving   decimal.NullDecimal `bun:"quantity_receiving"`
	QuantityOnHand      decimal.NullDecimal `bun:"quantity_on_hand"`
}

// ContainerView groups the lines of one bin location.
type ContainerView struct {
	BinLocation string
	Lines       []LineView
}

// PageData feeds the receiving page.
type PageData struct {
	Movement   models.StockMovement
	Status     stockmovement.Status
	Containers []ContainerView
	CanEdit    bool
	History    []audit.Entry
	Message    string
	IsError    bool
}

// EditLine converts v to the modal's line model.
func (v LineView) EditLine() editline.Line {
	return editline.Line{
		ShipmentItemID: v.ShipmentItemID,
		BinLocation:    v.BinLocation,
		Product: &editline.ProductRef{
			ID:                  v.ProductID,
			Code:                v.ProductCode,
			Name:                v.ProductName,
			LotAndExpiryControl: v.LotAndExpiryControl,
		},
		LotNumber:         v.LotNumber,
		ExpirationDate:    v.ExpirationDate,
		QuantityShipped:   v.QuantityShipped,
		QuantityReceiving: v.QuantityReceiving,
		QuantityOnHand:    v.QuantityOnHand,
	}
}

// FormValues converts the page to the receiving form values.
func (d PageData) FormValues() editline.FormValues {
	values := editline.FormValues{
		StockMovementID: d.Movement.ID,
		Containers:      make([]editline.Container, 0, len(d.Containers)),
	}
	for _, c := range d.Containers {
		container := editline.Container{BinLocation: c.BinLocation, Lines: make([]editline.Line, 0, len(c.Lines))}
		for _, l := range c.Lines {
			container.Lines = append(container.Lines, l.EditLine())
		}
		values.Containers = append(values.Containers, container)
	}
	return values
}

// Locate returns the container and row index of a shipment item.
func (d PageData) Locate(shipmentItemID int64) (parentIndex, rowIndex int, ok bool) {
	for ci, c := range d.Containers {
		for li, l := range c.Lines {
			if l.ShipmentItemID == shipmentItemID {
				return ci, li, true
			}
		}
	}
	return 0, 0, false
}
