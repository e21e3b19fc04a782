package adminusers

import (
	"context"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"inbound/frontend/login"
	"inbound/infrastructure/argon"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/rbac"
	"inbound/infrastructure/sqlite"
	"inbound/models"
)

func LoadUsersPageData(ctx context.Context, db *sqlite.DB) (PageData, error) {
	data := PageData{Users: make([]UserView, 0), Roles: rbac.Roles()}
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT id, username, role, strftime('%m/%d/%Y', created_at) AS created_at
FROM users
ORDER BY id ASC`).Scan(ctx, &data.Users)
	})
	return data, err
}

// CreateUser adds a user with an argon2id password hash. Usernames are unique
// regardless of case.
func CreateUser(ctx context.Context, db *sqlite.DB, auditSvc *audit.Service, actorID int64, username, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	role = strings.ToLower(strings.TrimSpace(role))
	if !rbac.ValidRole(role) {
		return ErrInvalidRole
	}
	if err := login.ValidatePasswordForUser(username, password); err != nil {
		return err
	}
	hash, err := argon.CreateHash(password, argon.DefaultParams)
	if err != nil {
		return err
	}

	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var exists int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM users WHERE LOWER(username) = LOWER(?)`, username).Scan(ctx, &exists); err != nil {
			return err
		}
		if exists > 0 {
			return ErrUsernameExists
		}

		now := time.Now()
		user := &models.User{Username: username, PasswordHash: hash, Role: role, CreatedAt: now, UpdatedAt: now}
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return err
		}
		if auditSvc == nil {
			return nil
		}
		return auditSvc.Write(ctx, tx, actorID, "user.create", "users", username, nil, map[string]any{"id": user.ID, "role": role})
	})
}
