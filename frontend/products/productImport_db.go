package products

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/uptrace/bun"

	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
)

type ImportSummary struct {
	Inserted int
	Updated  int
	Errors   int
}

type ProductRecord struct {
	ID                  int64  `bun:"id"`
	Code                string `bun:"code"`
	Name                string `bun:"name"`
	LotAndExpiryControl bool   `bun:"lot_and_expiry_control"`
	UpdatedAt           string `bun:"updated_at"`
}

func ListProducts(ctx context.Context, db *sqlite.DB) ([]ProductRecord, error) {
	rows := make([]ProductRecord, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT id, code, name, lot_and_expiry_control,
       strftime('%m/%d/%Y %H:%M', updated_at) AS updated_at
FROM products
ORDER BY code COLLATE NOCASE ASC`).Scan(ctx, &rows)
	})
	return rows, err
}

// ImportCSV upserts products by code from a code,name,lot_and_expiry_control file.
// Bad rows are counted and skipped.
func ImportCSV(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, reader io.Reader) (ImportSummary, error) {
	summary := ImportSummary{}
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return summary, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "code") || !strings.EqualFold(strings.TrimSpace(header[1]), "name") {
		return summary, fmt.Errorf("invalid CSV header; expected code,name,lot_and_expiry_control")
	}

	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		for {
			record, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil || len(record) < 2 {
				summary.Errors++
				continue
			}
			code := strings.TrimSpace(record[0])
			name := strings.TrimSpace(record[1])
			if code == "" || name == "" {
				summary.Errors++
				continue
			}
			controlled := false
			if len(record) > 2 {
				var ok bool
				if controlled, ok = parseFlag(record[2]); !ok {
					summary.Errors++
					continue
				}
			}

			var exists int
			if err := tx.NewRaw("SELECT COUNT(1) FROM products WHERE code = ?", code).Scan(ctx, &exists); err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, `
INSERT INTO products (code, name, lot_and_expiry_control, created_at, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT(code) DO UPDATE SET
  name = excluded.name,
  lot_and_expiry_control = excluded.lot_and_expiry_control,
  updated_at = CURRENT_TIMESTAMP`, code, name, controlled); err != nil {
				summary.Errors++
				continue
			}
			if exists > 0 {
				summary.Updated++
			} else {
				summary.Inserted++
			}
		}

		if auditSvc != nil {
			after := map[string]any{"inserted": summary.Inserted, "updated": summary.Updated, "errors": summary.Errors}
			if err := auditSvc.Write(ctx, tx, userID, "product.import", "products", "import", nil, after); err != nil {
				return err
			}
		}
		return nil
	})
	return summary, err
}

func parseFlag(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "n":
		return false, true
	case "1", "true", "yes", "y":
		return true, true
	default:
		return false, false
	}
}
