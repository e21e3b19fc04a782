package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"inbound/models"
)

// Service writes audit records inside the caller transaction, so a change and
// its audit row commit or roll back together.
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Write records action on entityType/entityID. When before and after encode
// to the same JSON nothing is written.
func (s *Service) Write(ctx context.Context, tx bun.Tx, userID int64, action, entityType, entityID string, before, after any) error {
	beforeJSON, err := marshal(before)
	if err != nil {
		return fmt.Errorf("audit %s before: %w", action, err)
	}
	afterJSON, err := marshal(after)
	if err != nil {
		return fmt.Errorf("audit %s after: %w", action, err)
	}
	if before != nil && after != nil && beforeJSON == afterJSON {
		return nil
	}

	now := time.Now
	if s != nil && s.now != nil {
		now = s.now
	}
	_, err = tx.NewInsert().Model(&models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		BeforeJSON: beforeJSON,
		AfterJSON:  afterJSON,
		CreatedAt:  now().UTC(),
	}).Exec(ctx)
	return err
}

// Entry is an audit row joined with the acting username.
type Entry struct {
	ID         int64     `bun:"id"`
	Username   string    `bun:"username"`
	Action     string    `bun:"action"`
	EntityType string    `bun:"entity_type"`
	EntityID   string    `bun:"entity_id"`
	AfterJSON  string    `bun:"after_json"`
	CreatedAt  time.Time `bun:"created_at"`
}

// Recent returns the newest entries for the given entities, newest first.
func Recent(ctx context.Context, db bun.IDB, entityType string, entityIDs []string, limit int) ([]Entry, error) {
	entries := make([]Entry, 0)
	if len(entityIDs) == 0 {
		return entries, nil
	}
	if limit <= 0 {
		limit = 20
	}
	err := db.NewRaw(`
SELECT al.id, COALESCE(u.username, '') AS username, al.action, al.entity_type, al.entity_id,
       COALESCE(al.after_json, '') AS after_json, al.created_at
FROM audit_logs al
LEFT JOIN users u ON u.id = al.user_id
WHERE al.entity_type = ? AND al.entity_id IN (?)
ORDER BY al.id DESC
LIMIT ?`, entityType, bun.In(entityIDs), limit).Scan(ctx, &entries)
	return entries, err
}

func marshal(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
