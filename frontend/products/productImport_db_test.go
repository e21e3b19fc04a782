package products

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
)

func openTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.OpenDB(filepath.Join(t.TempDir(), "products-test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func TestImportCSVUpsertsByCode(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := "code,name,lot_and_expiry_control\nP1,Paracetamol,yes\nP2,Gauze,\n,Missing code,0\nP3,Bad flag,maybe\n"
	summary, err := ImportCSV(ctx, db, audit.NewService(), 1, strings.NewReader(first))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if summary.Inserted != 2 || summary.Updated != 0 || summary.Errors != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	second := "code,name,lot_and_expiry_control\nP2,Sterile gauze,1\n"
	summary, err = ImportCSV(ctx, db, nil, 1, strings.NewReader(second))
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	if summary.Updated != 1 || summary.Inserted != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	rows, err := ListProducts(ctx, db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[1].Name != "Sterile gauze" || !rows[1].LotAndExpiryControl {
		t.Fatalf("unexpected products: %+v", rows)
	}
}

func TestImportCSVRejectsHeader(t *testing.T) {
	db := openTestDB(t)
	if _, err := ImportCSV(context.Background(), db, nil, 1, strings.NewReader("sku,description\nA,B\n")); err == nil {
		t.Fatalf("expected header error")
	}
}
