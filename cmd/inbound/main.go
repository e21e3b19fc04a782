package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inbound/frontend/login"
	"inbound/frontend/receiving/editline"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/cache"
	"inbound/infrastructure/config"
	httpserver "inbound/infrastructure/http"
	"inbound/infrastructure/i18n"
	"inbound/infrastructure/rbac"
	"inbound/infrastructure/session"
	"inbound/infrastructure/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	catalog, err := i18n.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		log.Fatalf("load translations: %v", err)
	}

	if n, err := login.PurgeExpiredSessions(context.Background(), db, time.Now()); err != nil {
		slog.Warn("purge expired sessions failed", slog.Any("err", err))
	} else if n > 0 {
		slog.Info("purged expired sessions", slog.Int64("count", n))
	}

	sessionCache := cache.NewUserSessionCache()
	rbacCache := cache.NewRbacRolesCache()
	rbacSvc := rbac.New(rbacCache)
	auditSvc := audit.NewService()

	server := httpserver.NewServer(cfg.Addr, db, sessionCache, rbacSvc, rbacCache, auditSvc, httpserver.Options{
		Catalog:               catalog,
		PendingEdits:          editline.NewPendingEdits(cfg.PendingEditTTL),
		MinimumExpirationDate: cfg.MinimumExpirationDate,
		Sessions:              session.Policy{TTL: cfg.SessionTTL, Secure: cfg.CookieSecure},
	})
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	slog.Info("inbound listening", slog.String("addr", cfg.Addr), slog.Any("languages", catalog.Languages()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		slog.Error("graceful shutdown error", slog.Any("err", err))
	}
}
