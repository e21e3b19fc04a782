package exports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"inbound/frontend/receiving/lines"
	"inbound/infrastructure/sqlite"
)

// ReceivingTable flattens the receiving lines of a movement in bin order.
func ReceivingTable(ctx context.Context, db *sqlite.DB, movementID int64) (Table, error) {
	data, err := lines.LoadReceiving(ctx, db, movementID)
	if err != nil {
		return Table{}, err
	}
	table := Table{Name: data.Movement.Identifier, Headers: receivingHeaders, Rows: make([][]string, 0)}
	for _, c := range data.Containers {
		for _, l := range c.Lines {
			table.Rows = append(table.Rows, []string{
				data.Movement.Identifier,
				c.BinLocation,
				l.ProductCode,
				l.ProductName,
				l.LotNumber,
				l.ExpirationDate,
				qty(l.QuantityShipped),
				qty(l.QuantityReceiving),
				qty(l.QuantityOnHand),
			})
		}
	}
	return table, nil
}

func recordExportRun(ctx context.Context, db *sqlite.DB, userID *int64, movementID int64, exportType string, rowCount int) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var uid any = nil
		if userID != nil {
			uid = *userID
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO export_runs (user_id, stock_movement_id, export_type, row_count, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`, uid, movementID, exportType, rowCount)
		return err
	})
}

func qty(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.String()
}
