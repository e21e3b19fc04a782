package labels

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"inbound/frontend/receiving/editline"
	"inbound/infrastructure/sqlite"
)

func LoadLotLabel(ctx context.Context, db *sqlite.DB, movementID, shipmentItemID int64) (LotLabelData, error) {
	var label LotLabelData
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT shi.id, sm.identifier AS movement_identifier, sm.destination,
       shi.bin_location, pd.code AS product_code, pd.name AS product_name,
       shi.lot_number,
       COALESCE(strftime('%m/%d/%Y', shi.expiration_date), '') AS expiration_date,
       shi.quantity_shipped
FROM shipment_items shi
JOIN stock_movements sm ON sm.id = shi.stock_movement_id
JOIN products pd ON pd.id = shi.product_id
WHERE shi.stock_movement_id = ? AND shi.id = ?`, movementID, shipmentItemID).Scan(ctx, &label)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return label, editline.ErrLineNotFound
	}
	return label, err
}
