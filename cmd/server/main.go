package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bamdigital/site-backend/internal/config"
	"github.com/bamdigital/site-backend/internal/handler"
	"github.com/bamdigital/site-backend/internal/logging"
	"github.com/bamdigital/site-backend/internal/metrics"
	"github.com/bamdigital/site-backend/internal/repository"
	"github.com/bamdigital/site-backend/internal/service"
	"github.com/bamdigital/site-backend/pkg/auth"
)

func main() {
	cfg := config.Load()
	logging.Setup()

	ctx := context.Background()

	// Admin accounts always live in Postgres; the submission store is
	// selected by STORE_DRIVER.
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("database connect failed", "error", err)
	}
	defer pool.Close()
	userRepo := repository.NewPgUserRepository(pool)

	var submissionRepo repository.SubmissionRepository
	switch cfg.StoreDriver {
	case "postgres":
		submissionRepo = repository.NewPgSubmissionRepository(pool)
	case "mongo":
		client, err := repository.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			logging.Fatal("mongo connect failed", "error", err)
		}
		defer func() { _ = client.Disconnect(ctx) }()
		submissionRepo = repository.NewMongoSubmissionRepository(client.Database(cfg.MongoDB))
	case "memory":
		submissionRepo = repository.NewMemorySubmissionRepository()
	default:
		logging.Fatal("unknown store driver", "driver", cfg.StoreDriver)
	}
	slog.Info("submission store ready", "driver", cfg.StoreDriver)

	authService := service.NewAuthService(userRepo)
	submissionService := service.NewSubmissionService(submissionRepo)

	sessionSecret := auth.SessionSecretBytes(cfg.SessionSecret)

	h := handler.New(pool, cfg.FrontendURL)
	authHandler := handler.NewAuthHandler(authService, userRepo, sessionSecret, cfg.SecureCookies)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	oauthHandler := handler.NewOAuthHandler(authService, handler.OAuthConfig{
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
		RedirectURL:        cfg.GoogleRedirectURL,
		SessionSecret:      sessionSecret,
		FrontendURL:        cfg.FrontendURL,
		SecureCookies:      cfg.SecureCookies,
	})

	emailLookup := func(ctx context.Context, userID string) (string, error) {
		u, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return "", err
		}
		return u.Email, nil
	}
	adminGate := auth.AdminMiddleware(cfg.AdminEmails, emailLookup)

	// With AUTH_REQUIRED=false every request runs as the dev user with
	// admin rights, for local frontend work against the memory store.
	wrapAdmin := func(next http.Handler) http.Handler {
		if cfg.AuthRequired {
			return auth.RequireAuth(sessionSecret)(adminGate(next))
		}
		return auth.DevAuth(devAdmin(next))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.HandleFunc("POST /api/contact", submissionHandler.Submit)

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/me", authHandler.Me)
	if oauthHandler.Enabled() {
		mux.HandleFunc("GET /api/auth/google/login", oauthHandler.GoogleLoginURL)
		mux.HandleFunc("GET /api/auth/google/callback", oauthHandler.GoogleCallback)
	}

	mux.Handle("GET /api/admin/submissions", wrapAdmin(http.HandlerFunc(submissionHandler.AdminList)))
	mux.Handle("PATCH /api/admin/submissions/{id}/read", wrapAdmin(http.HandlerFunc(submissionHandler.AdminMarkRead)))
	mux.Handle("DELETE /api/admin/submissions/{id}", wrapAdmin(http.HandlerFunc(submissionHandler.AdminDelete)))
	mux.Handle("GET /api/admin/stats", wrapAdmin(http.HandlerFunc(submissionHandler.AdminStats)))

	m := metrics.New()
	mux.Handle("GET /metrics", m.Handler())

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.RequestLogger(h.CORS(m.Middleware(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

func devAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.WithIsAdmin(r.Context(), true)))
	})
}
