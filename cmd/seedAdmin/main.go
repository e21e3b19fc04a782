package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/uptrace/bun"

	"inbound/frontend/login"
	"inbound/infrastructure/config"
	"inbound/infrastructure/rbac"
	"inbound/infrastructure/sqlite"
	"inbound/infrastructure/stockmovement"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	migrationsDir := cfg.MigrationsDir
	if migrationsDir == "" {
		if migrationsDir, err = resolveMigrationsDir(); err != nil {
			log.Fatalf("resolve migrations dir: %v", err)
		}
	}

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlite.ApplyMigrations(ctx, db, migrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	if err := login.UpsertUserPasswordHash(ctx, db, "admin", rbac.RoleAdmin, cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedDemoMovement(ctx, db); err != nil {
		log.Fatalf("seed demo movement: %v", err)
	}

	fmt.Println("seeded admin user (username=admin) and demo movement DEMO-1")
}

// seedDemoMovement adds a dispatched movement with lines in two bins. It is a
// no-op when DEMO-1 already exists.
func seedDemoMovement(ctx context.Context, db *sqlite.DB) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var exists int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM stock_movements WHERE identifier = 'DEMO-1'`).Scan(ctx, &exists); err != nil {
			return err
		}
		if exists > 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO products (code, name, lot_and_expiry_control) VALUES
  ('PARA500', 'Paracetamol 500mg tablets', 1),
  ('GAUZE10', 'Gauze swabs 10x10cm', 0)
ON CONFLICT(code) DO NOTHING`); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
INSERT INTO stock_movements (identifier, name, origin, destination, status, date_shipped)
VALUES ('DEMO-1', 'Demo replenishment', 'Central warehouse', 'District depot', ?, CURRENT_TIMESTAMP)`, string(stockmovement.StatusDispatched))
		if err != nil {
			return err
		}
		movementID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO shipment_items (stock_movement_id, product_id, bin_location, lot_number, expiration_date, quantity_shipped, quantity_receiving)
SELECT ?, id, 'A-01', 'LOT-2401', '2030-06-30', 120, 120 FROM products WHERE code = 'PARA500'
UNION ALL
SELECT ?, id, 'B-02', '', NULL, 40, 40 FROM products WHERE code = 'GAUZE10'`, movementID, movementID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
INSERT INTO inventory_items (product_id, lot_number, expiration_date, quantity_on_hand)
SELECT id, 'LOT-2401', '2030-06-30', 300 FROM products WHERE code = 'PARA500'
ON CONFLICT(product_id, lot_number) DO NOTHING`)
		return err
	})
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		filepath.Join("infrastructure", "sqlite", "migrations"),
		filepath.Join("..", "..", "infrastructure", "sqlite", "migrations"),
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations"))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("migrations dir not found; tried: %s", strings.Join(tried, ", "))
}
