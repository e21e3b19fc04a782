package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotInitialized is returned when a transaction is requested on a closed or zero DB.
var ErrNotInitialized = errors.New("sqlite db is not initialized")

// DB holds one serialized writer and a small pool of query-only readers
// over the same database file.
type DB struct {
	WriteSQL *sql.DB
	ReadSQL  *sql.DB
	W        *bun.DB
	R        *bun.DB
}

const (
	busyTimeoutMillis = 5000
	readPoolSize      = 8
	connMaxLifetime   = 15 * time.Minute
	connMaxIdleTime   = 5 * time.Minute
)

func dsn(path string, params map[string]string) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	q.Set("_busy_timeout", fmt.Sprint(busyTimeoutMillis))
	for k, v := range params {
		q.Set(k, v)
	}
	return "file:" + path + "?" + q.Encode()
}

// OpenDB opens the writer (immediate transactions, one connection) and the
// reader pool. A missing file is created by the writer before the readers
// attach in query-only mode.
func OpenDB(path string) (*DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	wsql, err := sql.Open("sqlite3", dsn(path, map[string]string{"_txlock": "immediate"}))
	if err != nil {
		return nil, fmt.Errorf("open write db: %w", err)
	}
	wsql.SetMaxOpenConns(1)
	wsql.SetConnMaxLifetime(connMaxLifetime)
	if err := wsql.Ping(); err != nil {
		wsql.Close()
		return nil, fmt.Errorf("ping write db: %w", err)
	}

	rsql, err := sql.Open("sqlite3", dsn(path, map[string]string{"_query_only": "1"}))
	if err != nil {
		wsql.Close()
		return nil, fmt.Errorf("open read db: %w", err)
	}
	rsql.SetMaxOpenConns(readPoolSize)
	rsql.SetConnMaxIdleTime(connMaxIdleTime)
	rsql.SetConnMaxLifetime(connMaxLifetime)

	if _, err := rsql.Exec("PRAGMA query_only = ON"); err != nil {
		wsql.Close()
		rsql.Close()
		return nil, fmt.Errorf("enable read query_only: %w", err)
	}

	return &DB{
		WriteSQL: wsql,
		ReadSQL:  rsql,
		W:        bun.NewDB(wsql, sqlitedialect.New()),
		R:        bun.NewDB(rsql, sqlitedialect.New()),
	}, nil
}

// Close closes read and write handles and reports the first failure.
func (db *DB) Close() error {
	if db == nil {
		return nil
	}
	var errs []error
	if db.W != nil {
		errs = append(errs, db.W.Close())
	}
	if db.R != nil {
		errs = append(errs, db.R.Close())
	}
	return errors.Join(errs...)
}

// PingContext checks both handles.
func (db *DB) PingContext(ctx context.Context) error {
	if db == nil || db.WriteSQL == nil || db.ReadSQL == nil {
		return ErrNotInitialized
	}
	if err := db.WriteSQL.PingContext(ctx); err != nil {
		return err
	}
	return db.ReadSQL.PingContext(ctx)
}
