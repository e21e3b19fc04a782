package http

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	loginflow "inbound/frontend/login"
	"inbound/frontend/receiving/editline"
	sessioncontext "inbound/frontend/shared/context"
	"inbound/infrastructure/audit"
	"inbound/infrastructure/cache"
	"inbound/infrastructure/i18n"
	"inbound/infrastructure/rbac"
	"inbound/infrastructure/session"
	"inbound/infrastructure/sqlite"
	"inbound/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 2 * time.Second

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	DB           *sqlite.DB
	SessionCache *cache.UserSessionCache
	RbacCache    *cache.RbacRolesCache
	Rbac         *rbac.Rbac
	Audit        *audit.Service
	Catalog      *i18n.Catalog
	PendingEdits *editline.PendingEdits
	Sessions     session.Policy

	// MinimumExpirationDate is used when no minimum is stored in settings.
	MinimumExpirationDate time.Time
}

// Options carries the receiving and session settings of the server.
type Options struct {
	Catalog               *i18n.Catalog
	PendingEdits          *editline.PendingEdits
	MinimumExpirationDate time.Time
	Sessions              session.Policy
}

// NewServer creates a new http server.
func NewServer(addr string, db *sqlite.DB, sessionCache *cache.UserSessionCache, r *rbac.Rbac, rbacCache *cache.RbacRolesCache, auditSvc *audit.Service, opts Options) *Server {
	if opts.Sessions.TTL <= 0 {
		opts.Sessions.TTL = session.DefaultTTL
	}
	s := &Server{
		Addr:                  addr,
		router:                chi.NewRouter(),
		DB:                    db,
		SessionCache:          sessionCache,
		RbacCache:             rbacCache,
		Rbac:                  r,
		Audit:                 auditSvc,
		Catalog:               opts.Catalog,
		PendingEdits:          opts.PendingEdits,
		Sessions:              opts.Sessions,
		MinimumExpirationDate: opts.MinimumExpirationDate,
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	s.router.Use(secureHeaders)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.CSRFMiddleware)
	s.router.Use(s.LanguageMiddleware)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessionFromRequest(r); !ok {
			http.SetCookie(w, s.Sessions.Clear())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/inbound/movements", http.StatusSeeOther)
	})

	s.router.Get("/lang/{code}", s.SetLanguageHandler)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := s.DB.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.RegisterLoginRoutes()

	s.router.Route("/inbound", func(r chi.Router) {
		r.Use(s.AuthenticateMiddleware)
		s.RegisterFrontendRoutes(r)
		s.RegisterAdminRoutes(r)
	})

	s.server.Handler = s.router
	return s
}

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// AuthenticateMiddleware loads the session and applies RBAC checks. Failures
// send the browser back to the login screen.
func (s *Server) AuthenticateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessionFromRequest(r)
		if !ok {
			http.SetCookie(w, s.Sessions.Clear())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if !s.Rbac.Allows(sess.UserRoles, r.URL.Path, r.Method) {
			slog.Warn("rbac denied",
				slog.String("user", sess.User.Username),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		sess.ScreenPermissions = s.Rbac.Permissions(sess.UserRoles)

		ctx := sessioncontext.NewContextWithSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromRequest resolves the cookie token through the cache, then the
// sessions table. Expired sessions are removed from both.
func (s *Server) sessionFromRequest(r *http.Request) (models.Session, bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return models.Session{}, false
	}
	token := cookie.Value

	if cached, found := s.SessionCache.FindSessionBySessionToken(token); found {
		return cached, true
	}

	dbSession, err := loginflow.LoadSessionByToken(r.Context(), s.DB, token)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("load session from db failed", slog.Any("err", err))
		}
		return models.Session{}, false
	}
	s.SessionCache.AddSession(dbSession)
	return dbSession, true
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}
	s.ln = nil
	return nil
}
