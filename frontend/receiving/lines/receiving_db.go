package lines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/uptrace/bun"

	"inbound/frontend/receiving/editline"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
	"inbound/infrastructure/stockmovement"
	"inbound/models"
)

const linesQuery = `
SELECT shi.id, shi.product_id, pd.code AS product_code, pd.name AS product_name, pd.lot_and_expiry_control,
       shi.bin_location, shi.lot_number,
       COALESCE(strftime('%m/%d/%Y', shi.expiration_date), '') AS expiration_date,
       shi.quantity_shipped, shi.quantity_receiving,
       ii.quantity_on_hand
FROM shipment_items shi
JOIN products pd ON pd.id = shi.product_id
LEFT JOIN inventory_items ii ON ii.product_id = shi.product_id AND ii.lot_number = shi.lot_number
WHERE shi.stock_movement_id = ?
ORDER BY shi.bin_location ASC, shi.id ASC`

const historyLimit = 15

// LoadReceiving loads a movement and its lines grouped by bin location.
func LoadReceiving(ctx context.Context, db *sqlite.DB, movementID int64) (PageData, error) {
	var data PageData
	var rows []LineView
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&data.Movement).Where("id = ?", movementID).Scan(ctx); err != nil {
			return err
		}
		if err := tx.NewRaw(linesQuery, movementID).Scan(ctx, &rows); err != nil {
			return err
		}
		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, strconv.FormatInt(row.ShipmentItemID, 10))
		}
		var err error
		data.History, err = audit.Recent(ctx, tx, "shipment_item", ids, historyLimit)
		return err
	})
	if err != nil {
		return data, err
	}

	status, err := stockmovement.Parse(data.Movement.Status)
	if err != nil {
		return data, fmt.Errorf("movement %d: %w", movementID, err)
	}
	data.Status = status
	data.CanEdit = status.Receivable()
	data.Containers = groupByBin(rows)
	return data, nil
}

func groupByBin(rows []LineView) []ContainerView {
	containers := make([]ContainerView, 0)
	for _, row := range rows {
		if n := len(containers); n > 0 && containers[n-1].BinLocation == row.BinLocation {
			containers[n-1].Lines = append(containers[n-1].Lines, row)
			continue
		}
		containers = append(containers, ContainerView{BinLocation: row.BinLocation, Lines: []LineView{row}})
	}
	return containers
}

// LoadProducts returns the product choices of the edit modal.
func LoadProducts(ctx context.Context, db *sqlite.DB) ([]editline.ProductRef, error) {
	var products []models.Product
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&products).OrderExpr("code ASC").Scan(ctx)
	})
	if err != nil {
		return nil, err
	}
	out := make([]editline.ProductRef, 0, len(products))
	for _, p := range products {
		out = append(out, editline.ProductRef{
			ID:                  p.ID,
			Code:                p.Code,
			Name:                p.Name,
			LotAndExpiryControl: p.LotAndExpiryControl,
		})
	}
	return out, nil
}

// EditLineSource loads modal sources from the database.
type EditLineSource struct {
	DB *sqlite.DB
}

func (s EditLineSource) LoadEditSource(ctx context.Context, movementID, shipmentItemID int64) (editline.Source, error) {
	data, err := LoadReceiving(ctx, s.DB, movementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return editline.Source{}, ErrLineNotFound
		}
		return editline.Source{}, err
	}
	parentIndex, rowIndex, ok := data.Locate(shipmentItemID)
	if !ok {
		return editline.Source{}, ErrLineNotFound
	}
	products, err := LoadProducts(ctx, s.DB)
	if err != nil {
		return editline.Source{}, err
	}
	return editline.Source{
		Line: data.Containers[parentIndex].Lines[rowIndex].EditLine(),
		Target: editline.SaveTarget{
			ParentIndex: parentIndex,
			RowIndex:    rowIndex,
			Values:      data.FormValues(),
		},
		Products: products,
		ReadOnly: !data.CanEdit,
	}, nil
}
