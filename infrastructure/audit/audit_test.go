package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"inbound/infrastructure/sqlite"
)

func openAuditTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestWriteAndRecent(t *testing.T) {
	db := openAuditTestDB(t)
	ctx := context.Background()
	svc := NewService()
	svc.now = func() time.Time { return time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC) }

	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, role) VALUES (7, 'dock', 'x', 'receiver')`); err != nil {
			return err
		}
		if err := svc.Write(ctx, tx, 7, "receiving.line.update", "shipment_item", "10", map[string]string{"lot": "A"}, map[string]string{"lot": "B"}); err != nil {
			return err
		}
		if err := svc.Write(ctx, tx, 7, "receiving.line.split", "shipment_item", "12", nil, map[string]string{"lot": "C"}); err != nil {
			return err
		}
		if err := svc.Write(ctx, tx, 7, "receiving.line.update", "shipment_item", "99", nil, nil); err != nil {
			return err
		}
		// Unchanged values are skipped.
		return svc.Write(ctx, tx, 7, "receiving.line.update", "shipment_item", "10", map[string]string{"lot": "B"}, map[string]string{"lot": "B"})
	})
	if err != nil {
		t.Fatalf("write audit: %v", err)
	}

	var entries []Entry
	err = db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		entries, err = Recent(ctx, tx, "shipment_item", []string{"10", "12"}, 10)
		return err
	})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].EntityID != "12" || entries[0].Username != "dock" || entries[1].Action != "receiving.line.update" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if !entries[0].CreatedAt.Equal(time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected created_at: %v", entries[0].CreatedAt)
	}
}

func TestRecentWithoutIDs(t *testing.T) {
	db := openAuditTestDB(t)
	var entries []Entry
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		var err error
		entries, err = Recent(ctx, tx, "shipment_item", nil, 5)
		return err
	})
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty result, got %v %v", entries, err)
	}
}
