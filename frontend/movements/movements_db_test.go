package movements

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
	"inbound/infrastructure/stockmovement"
	"inbound/models"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "movements-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO stock_movements (id, identifier, name, origin, destination, status) VALUES
			(1, 'SM-1', 'One', 'A', 'B', 'DISPATCHED'),
			(2, 'SM-2', 'Two', 'A', 'B', 'PICKED'),
			(3, 'SM-3', 'Three', 'A', 'B', 'CANCELED')`)
		return err
	}); err != nil {
		t.Fatalf("seed movements: %v", err)
	}
	return db
}

func TestListFilters(t *testing.T) {
	db := openTestDB(t)
	cases := map[string]int{
		FilterOpen:       2,
		FilterReceivable: 1,
		FilterAll:        3,
		"bogus":          2,
	}
	for filter, want := range cases {
		rows, err := List(context.Background(), db, filter)
		if err != nil {
			t.Fatalf("list %s: %v", filter, err)
		}
		if len(rows) != want {
			t.Fatalf("filter %s: expected %d rows, got %d", filter, want, len(rows))
		}
	}
}

func TestSetStatusAuditsAndStampsDispatch(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := SetStatus(ctx, db, audit.NewService(), 5, 2, stockmovement.StatusDispatched); err != nil {
		t.Fatalf("set status: %v", err)
	}

	var m models.StockMovement
	var audits int
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(&m).Where("id = ?", 2).Scan(ctx); err != nil {
			return err
		}
		return tx.NewRaw(`SELECT COUNT(*) FROM audit_logs WHERE action = 'stock_movement.status'`).Scan(ctx, &audits)
	})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m.Status != "DISPATCHED" || m.DateShipped == nil {
		t.Fatalf("unexpected movement: %+v", m)
	}
	if audits != 1 {
		t.Fatalf("expected one audit row, got %d", audits)
	}
}

func TestSetStatusErrors(t *testing.T) {
	db := openTestDB(t)
	if err := SetStatus(context.Background(), db, nil, 1, 404, stockmovement.StatusPicked); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected no rows, got %v", err)
	}
	if err := SetStatus(context.Background(), db, nil, 1, 1, stockmovement.Status("LOST")); !errors.Is(err, stockmovement.ErrUnknownStatus) {
		t.Fatalf("expected unknown status, got %v", err)
	}
}
