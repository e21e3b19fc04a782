package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"inbound/frontend/receiving/editline"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/sqlite"
	"inbound/models"
)

// KeyMinimumExpirationDate stores the minimum expiry as MM/DD/YYYY.
const KeyMinimumExpirationDate = "receiving.minimum_expiration_date"

// LoadMinimumExpirationDate returns the stored minimum expiry, or the zero
// time when none is stored.
func LoadMinimumExpirationDate(ctx context.Context, db *sqlite.DB) (time.Time, error) {
	var setting models.AppSetting
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().Model(&setting).Where("key = ?", KeyMinimumExpirationDate).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	if strings.TrimSpace(setting.Value) == "" {
		return time.Time{}, nil
	}
	t, err := editline.ParseDate(setting.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored minimum expiration date %q: %w", setting.Value, err)
	}
	return t, nil
}

// SaveMinimumExpirationDate stores value; an empty value clears the minimum.
func SaveMinimumExpirationDate(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, userID int64, value string) error {
	value = strings.TrimSpace(value)
	if value != "" {
		t, err := editline.ParseDate(value)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", value, err)
		}
		value = t.Format(editline.DateLayout)
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var before models.AppSetting
		if err := tx.NewSelect().Model(&before).Where("key = ?", KeyMinimumExpirationDate).Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		after := models.AppSetting{Key: KeyMinimumExpirationDate, Value: value, UpdatedAt: time.Now().UTC()}
		if _, err := tx.NewInsert().Model(&after).
			On("CONFLICT (key) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx); err != nil {
			return err
		}
		if auditSvc == nil {
			return nil
		}
		return auditSvc.Write(ctx, tx, userID, "settings.update", "app_setting", KeyMinimumExpirationDate, before, after)
	})
}

// MinimumDate reads the stored minimum on every call and falls back to
// fallback when nothing is stored.
func MinimumDate(db *sqlite.DB, fallback time.Time) editline.MinimumDateFunc {
	return func(ctx context.Context) (time.Time, error) {
		t, err := LoadMinimumExpirationDate(ctx, db)
		if err != nil {
			return time.Time{}, err
		}
		if t.IsZero() {
			return fallback, nil
		}
		return t, nil
	}
}
