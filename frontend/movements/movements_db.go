package movements

import (
	"context"
	"strconv"
	"time"

	"github.com/uptrace/bun"

	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
	"inbound/infrastructure/stockmovement"
	"inbound/models"
)

// List returns movements matching filter, newest first.
func List(ctx context.Context, db *sqlite.DB, filter string) ([]MovementRow, error) {
	rows := make([]MovementRow, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().
			TableExpr("stock_movements AS sm").
			ColumnExpr("sm.id, sm.identifier, sm.name, sm.origin, sm.destination, sm.status").
			ColumnExpr("COALESCE(strftime('%m/%d/%Y', sm.date_shipped), '') AS date_shipped").
			ColumnExpr("(SELECT COUNT(*) FROM shipment_items shi WHERE shi.stock_movement_id = sm.id) AS line_count").
			OrderExpr("sm.id DESC")
		switch NormalizeFilter(filter) {
		case FilterOpen:
			q = q.Where("sm.status NOT IN (?)", bun.In([]string{string(stockmovement.StatusCanceled), string(stockmovement.StatusRejected)}))
		case FilterReceivable:
			q = q.Where("sm.status = ?", string(stockmovement.StatusDispatched))
		}
		return q.Scan(ctx, &rows)
	})
	return rows, err
}

// SetStatus moves a movement to status and audits the change.
func SetStatus(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID, movementID int64, status stockmovement.Status) error {
	if !status.Valid() {
		return stockmovement.ErrUnknownStatus
	}
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.StockMovement
		if err := tx.NewSelect().Model(&before).Where("id = ?", movementID).Scan(ctx); err != nil {
			return err
		}
		after := before
		after.Status = string(status)
		after.UpdatedAt = time.Now().UTC()
		if status == stockmovement.StatusDispatched && after.DateShipped == nil {
			shipped := after.UpdatedAt
			after.DateShipped = &shipped
		}
		if _, err := tx.NewUpdate().Model(&after).Column("status", "date_shipped", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		if auditSvc == nil {
			return nil
		}
		return auditSvc.Write(ctx, tx, userID, "stock_movement.status", "stock_movement", strconv.FormatInt(movementID, 10),
			map[string]any{"status": before.Status},
			map[string]any{"status": after.Status},
		)
	})
}
