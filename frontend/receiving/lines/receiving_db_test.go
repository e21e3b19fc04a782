package lines

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"inbound/frontend/receiving/editline"
	sessioncontext "inbound/frontend/shared/context"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
	"inbound/models"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := sqlite.ApplyMigrations(context.Background(), db, ""); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func exec(t *testing.T, db *sqlite.DB, query string, args ...any) {
	t.Helper()
	err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

// seedMovement creates movement 1 with three lines: two in bin A and one in bin B.
func seedMovement(t *testing.T, db *sqlite.DB, status string) {
	t.Helper()
	exec(t, db, `INSERT INTO products (id, code, name, lot_and_expiry_control) VALUES (1, 'P1', 'Paracetamol', 1), (2, 'P2', 'Gauze', 0)`)
	exec(t, db, `INSERT INTO stock_movements (id, identifier, name, origin, destination, status) VALUES (1, 'SM-1', 'Weekly', 'Depot A', 'Clinic B', ?)`, status)
	exec(t, db, `INSERT INTO shipment_items (id, stock_movement_id, product_id, bin_location, lot_number, expiration_date, quantity_shipped, quantity_receiving) VALUES
		(10, 1, 1, 'A', 'L1', '2030-01-01', 10, 10),
		(11, 1, 2, 'B', '', NULL, 5, 5),
		(12, 1, 2, 'A', 'G1', NULL, 3, NULL)`)
	exec(t, db, `INSERT INTO inventory_items (product_id, lot_number, expiration_date, quantity_on_hand) VALUES (1, 'L1', '2030-01-01', 10)`)
}

func withUser(ctx context.Context) context.Context {
	return sessioncontext.NewContextWithSession(ctx, models.Session{UserID: 7})
}

func TestLoadReceivingGroupsByBin(t *testing.T) {
	db := openTestDB(t)
	seedMovement(t, db, "DISPATCHED")

	data, err := LoadReceiving(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("load receiving: %v", err)
	}
	if !data.CanEdit {
		t.Fatalf("dispatched movement should be editable")
	}
	if len(data.Containers) != 2 || data.Containers[0].BinLocation != "A" || data.Containers[1].BinLocation != "B" {
		t.Fatalf("unexpected containers: %+v", data.Containers)
	}
	if len(data.Containers[0].Lines) != 2 {
		t.Fatalf("expected two lines in bin A, got %d", len(data.Containers[0].Lines))
	}
	first := data.Containers[0].Lines[0]
	if first.ExpirationDate != "01/01/2030" || !first.LotAndExpiryControl {
		t.Fatalf("unexpected first line: %+v", first)
	}
	if !first.QuantityOnHand.Valid || !first.QuantityOnHand.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected on hand 10, got %+v", first.QuantityOnHand)
	}
	if data.Containers[0].Lines[1].QuantityOnHand.Valid {
		t.Fatalf("expected no on hand for lot without inventory record")
	}
	if data.Containers[0].Lines[1].QuantityReceiving.Valid {
		t.Fatalf("expected null receiving quantity")
	}
}

func TestEditLineSourceLocatesLine(t *testing.T) {
	db := openTestDB(t)
	seedMovement(t, db, "DISPATCHED")

	src, err := EditLineSource{DB: db}.LoadEditSource(context.Background(), 1, 11)
	if err != nil {
		t.Fatalf("load edit source: %v", err)
	}
	if src.Target.ParentIndex != 1 || src.Target.RowIndex != 0 {
		t.Fatalf("unexpected target: %+v", src.Target)
	}
	if src.Line.ShipmentItemID != 11 || src.Line.Product.ID != 2 {
		t.Fatalf("unexpected line: %+v", src.Line)
	}
	if len(src.Products) != 2 || src.ReadOnly {
		t.Fatalf("unexpected source: %+v", src)
	}
}

func TestEditLineSourceErrors(t *testing.T) {
	db := openTestDB(t)
	seedMovement(t, db, "PICKED")

	src, err := EditLineSource{DB: db}.LoadEditSource(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("load edit source: %v", err)
	}
	if !src.ReadOnly {
		t.Fatalf("picked movement must be read-only")
	}
	if _, err := (EditLineSource{DB: db}).LoadEditSource(context.Background(), 1, 999); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected line not found, got %v", err)
	}
	if _, err := (EditLineSource{DB: db}).LoadEditSource(context.Background(), 404, 10); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected line not found for missing movement, got %v", err)
	}
}

func TestEditLineSaverUpdatesSplitsAndPropagatesExpiry(t *testing.T) {
	db := openTestDB(t)
	seedMovement(t, db, "DISPATCHED")
	ctx := withUser(context.Background())

	src, err := EditLineSource{DB: db}.LoadEditSource(ctx, 1, 10)
	if err != nil {
		t.Fatalf("load edit source: %v", err)
	}
	rows := editline.Open(src.Line)
	rows[0].ExpirationDate = "02/01/2030"
	rows[0].QuantityShipped = decimal.NewNullDecimal(decimal.NewFromInt(6))
	rows = editline.AddRow(rows, src.Line)
	rows[1].LotNumber = "L2"
	rows[1].ExpirationDate = "06/30/2031"
	rows[1].QuantityShipped = decimal.NewNullDecimal(decimal.NewFromInt(4))
	rows = editline.NormalizeQuantities(rows)

	saver := EditLineSaver{DB: db, Audit: audit.NewService()}
	if err := saver.SaveEditLine(ctx, rows, src.Target.ParentIndex, src.Target.Values, src.Target.RowIndex); err != nil {
		t.Fatalf("save edit line: %v", err)
	}

	data, err := LoadReceiving(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	binA := data.Containers[0].Lines
	if len(binA) != 3 {
		t.Fatalf("expected split line in bin A, got %+v", binA)
	}
	if binA[0].ExpirationDate != "02/01/2030" || !binA[0].QuantityShipped.Decimal.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("original line not updated: %+v", binA[0])
	}
	if len(data.History) != 2 || data.History[0].Action != "receiving.line.split" || data.History[1].Action != "receiving.line.update" {
		t.Fatalf("unexpected line history: %+v", data.History)
	}
	split := binA[2]
	if split.LotNumber != "L2" || split.ExpirationDate != "06/30/2031" || split.ProductID != 1 {
		t.Fatalf("unexpected split line: %+v", split)
	}

	var inventory []models.InventoryItem
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&inventory).OrderExpr("lot_number ASC").Scan(ctx)
	})
	if err != nil {
		t.Fatalf("load inventory: %v", err)
	}
	if len(inventory) != 2 {
		t.Fatalf("expected two inventory lots, got %d", len(inventory))
	}
	if editline.FormatDate(inventory[0].ExpirationDate) != "02/01/2030" {
		t.Fatalf("expected propagated expiry, got %v", inventory[0].ExpirationDate)
	}
	if !inventory[0].QuantityOnHand.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("on hand must not change, got %s", inventory[0].QuantityOnHand)
	}

	var audits int
	err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(*) FROM audit_logs WHERE user_id = 7`).Scan(ctx, &audits)
	})
	if err != nil {
		t.Fatalf("count audits: %v", err)
	}
	if audits != 4 {
		t.Fatalf("expected 4 audit rows, got %d", audits)
	}
}

func TestEditLineSaverRejectsReadOnlyMovement(t *testing.T) {
	db := openTestDB(t)
	seedMovement(t, db, "DISPATCHED")
	ctx := withUser(context.Background())

	src, err := EditLineSource{DB: db}.LoadEditSource(ctx, 1, 10)
	if err != nil {
		t.Fatalf("load edit source: %v", err)
	}
	exec(t, db, `UPDATE stock_movements SET status = 'CANCELED' WHERE id = 1`)

	err = EditLineSaver{DB: db}.SaveEditLine(ctx, editline.Open(src.Line), src.Target.ParentIndex, src.Target.Values, src.Target.RowIndex)
	if !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected read-only error, got %v", err)
	}
}

func TestEditLineSaverRejectsForeignOriginalRow(t *testing.T) {
	db := openTestDB(t)
	seedMovement(t, db, "DISPATCHED")
	ctx := withUser(context.Background())

	src, err := EditLineSource{DB: db}.LoadEditSource(ctx, 1, 10)
	if err != nil {
		t.Fatalf("load edit source: %v", err)
	}
	rows := editline.Open(src.Line)
	rows[0].ShipmentItemID = 11

	err = EditLineSaver{DB: db}.SaveEditLine(ctx, rows, src.Target.ParentIndex, src.Target.Values, src.Target.RowIndex)
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected line not found, got %v", err)
	}
}
