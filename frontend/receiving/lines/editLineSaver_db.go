package lines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"inbound/frontend/receiving/editline"
	sessioncontext "inbound/frontend/shared/context"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
	"inbound/infrastructure/stockmovement"
	"inbound/models"
)

var ErrProductRequired = errors.New("product is required")

// EditLineSaver persists modal edits: the original shipment item is updated,
// added rows become new shipment items of the same movement and bin, and the
// expiry of every lot is written to the shared inventory record.
type EditLineSaver struct {
	DB    *sqlite.DB
	Audit *audit.Service
}

func (s EditLineSaver) SaveEditLine(ctx context.Context, rows []editline.Line, parentIndex int, values editline.FormValues, rowIndex int) error {
	target, ok := editline.SaveTarget{ParentIndex: parentIndex, RowIndex: rowIndex, Values: values}.Line()
	if !ok {
		return ErrLineNotFound
	}
	session, _ := sessioncontext.GetSessionFromContext(ctx)

	return s.DB.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var movement models.StockMovement
		if err := tx.NewSelect().Model(&movement).Where("id = ?", values.StockMovementID).Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrLineNotFound
			}
			return err
		}
		if status, err := stockmovement.Parse(movement.Status); err != nil || !status.Receivable() {
			return ErrReadOnly
		}

		var original models.ShipmentItem
		if err := tx.NewSelect().Model(&original).
			Where("id = ?", target.ShipmentItemID).
			Where("stock_movement_id = ?", movement.ID).
			Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrLineNotFound
			}
			return err
		}

		now := time.Now().UTC()
		for i, row := range rows {
			expiry, err := expiryTime(row.ExpirationDate)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}

			if row.OriginalLine {
				if row.ShipmentItemID != original.ID {
					return fmt.Errorf("row %d: %w", i, ErrLineNotFound)
				}
				before := original
				updated := original
				updated.LotNumber = strings.TrimSpace(row.LotNumber)
				updated.ExpirationDate = expiry
				updated.QuantityShipped = row.QuantityShipped
				updated.QuantityReceiving = row.QuantityReceiving
				updated.UpdatedAt = now
				if _, err := tx.NewUpdate().Model(&updated).
					Column("lot_number", "expiration_date", "quantity_shipped", "quantity_receiving", "updated_at").
					WherePK().
					Exec(ctx); err != nil {
					return fmt.Errorf("update shipment item %d: %w", original.ID, err)
				}
				if err := s.audit(ctx, tx, session.UserID, "receiving.line.update", "shipment_item", original.ID, before, updated); err != nil {
					return err
				}
			} else {
				if row.Product == nil {
					return fmt.Errorf("row %d: %w", i, ErrProductRequired)
				}
				split := models.ShipmentItem{
					StockMovementID:   movement.ID,
					ProductID:         row.Product.ID,
					BinLocation:       original.BinLocation,
					LotNumber:         strings.TrimSpace(row.LotNumber),
					ExpirationDate:    expiry,
					QuantityShipped:   row.QuantityShipped,
					QuantityReceiving: row.QuantityReceiving,
					CreatedAt:         now,
					UpdatedAt:         now,
				}
				if _, err := tx.NewInsert().Model(&split).Exec(ctx); err != nil {
					return fmt.Errorf("insert split line: %w", err)
				}
				if err := s.audit(ctx, tx, session.UserID, "receiving.line.split", "shipment_item", split.ID, nil, split); err != nil {
					return err
				}
			}

			productID := original.ProductID
			if !row.OriginalLine {
				productID = row.Product.ID
			}
			if err := s.upsertLotExpiry(ctx, tx, session.UserID, productID, strings.TrimSpace(row.LotNumber), expiry, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// upsertLotExpiry writes the expiry of (product, lot) system wide. Lines
// without a lot number have no shared inventory record.
func (s EditLineSaver) upsertLotExpiry(ctx context.Context, tx bun.Tx, userID, productID int64, lot string, expiry *time.Time, now time.Time) error {
	if lot == "" {
		return nil
	}

	var existing models.InventoryItem
	err := tx.NewSelect().Model(&existing).
		Where("product_id = ?", productID).
		Where("lot_number = ?", lot).
		Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		item := models.InventoryItem{
			ProductID:      productID,
			LotNumber:      lot,
			ExpirationDate: expiry,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := tx.NewInsert().Model(&item).Exec(ctx); err != nil {
			return fmt.Errorf("insert inventory item: %w", err)
		}
		return s.audit(ctx, tx, userID, "inventory_item.create", "inventory_item", item.ID, nil, item)
	case err != nil:
		return err
	}

	if sameDate(existing.ExpirationDate, expiry) {
		return nil
	}
	updated := existing
	updated.ExpirationDate = expiry
	updated.UpdatedAt = now
	if _, err := tx.NewUpdate().Model(&updated).Column("expiration_date", "updated_at").WherePK().Exec(ctx); err != nil {
		return fmt.Errorf("update inventory item %d: %w", existing.ID, err)
	}
	return s.audit(ctx, tx, userID, "inventory_item.expiry.update", "inventory_item", existing.ID, existing, updated)
}

func (s EditLineSaver) audit(ctx context.Context, tx bun.Tx, userID int64, action, entityType string, id int64, before, after any) error {
	if s.Audit == nil {
		return nil
	}
	if err := s.Audit.Write(ctx, tx, userID, action, entityType, strconv.FormatInt(id, 10), before, after); err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

func expiryTime(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := editline.ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
