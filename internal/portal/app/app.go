package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/familyportal/internal/portal/http"
	"github.com/aussiebroadwan/familyportal/internal/portal/llm"
	"github.com/aussiebroadwan/familyportal/internal/portal/metrics"
	"github.com/aussiebroadwan/familyportal/internal/portal/service"
	"github.com/aussiebroadwan/familyportal/internal/portal/store"
	"github.com/aussiebroadwan/familyportal/internal/portal/store/drivers/sqlite"
	"github.com/aussiebroadwan/familyportal/pkg/cryptox"
	"github.com/aussiebroadwan/familyportal/pkg/httpx"
	"github.com/aussiebroadwan/familyportal/pkg/jwtx"
	"github.com/aussiebroadwan/familyportal/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	serviceName = "family-portal"
)

// Application encapsulates the portal with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	sessions  *jwtx.SessionManager
	completer llm.Completer
	metrics   *metrics.Metrics

	// Services
	inviteService  *service.InviteService
	accountService *service.AccountService
	usageService   *service.UsageService
	chatService    *service.ChatService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load password pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler exposes the fully wired router, for in-process use and tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("family portal starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"llm_configured", app.completer.Configured(),
		"allow_registration", app.cfg.AllowRegistration,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application. In-flight chat turns get
// the grace period to finish their completion call.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down family portal...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("family portal stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initSessions() error {
	if app.cfg.JWTSecret == DevJWTSecret {
		app.logger.Warn("JWT_SECRET is not set, sessions are signed with the development secret")
	}

	sessions, err := jwtx.NewSessionManager(jwtx.SessionOptions{
		Secret: app.cfg.JWTSecret,
		Issuer: serviceName,
		TTL:    jwtx.DefaultSessionTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}
	app.sessions = sessions
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.completer = llm.NewOpenAI(llm.OpenAIConfig{
		APIKey:  app.cfg.OpenAIAPIKey,
		BaseURL: app.cfg.OpenAIBaseURL,
		Model:   app.cfg.OpenAIModel,
	})
	if !app.completer.Configured() {
		app.logger.Warn("OPENAI_API_KEY is not set, chat requests will fail")
	}

	app.inviteService = &service.InviteService{Store: app.db}
	app.accountService = &service.AccountService{
		Store:             app.db,
		Invites:           app.inviteService,
		Sessions:          app.sessions,
		AllowRegistration: app.cfg.AllowRegistration,
	}
	app.usageService = &service.UsageService{
		Store:     app.db,
		PeriodKey: service.UTCDay,
	}
	app.chatService = &service.ChatService{
		Store:     app.db,
		Usage:     app.usageService,
		Completer: app.completer,
		Quota: service.Quota{
			MaxRequestsPerDay: app.cfg.MaxRequestsPerDay,
			MaxTokensPerDay:   app.cfg.MaxTokensPerDay,
		},
		SystemPrompt: app.cfg.SystemPrompt,
		Timeout:      app.cfg.ChatTimeout,
	}

	app.metrics = metrics.New(serviceName)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() error {
	proxies, err := httpx.ParseTrustedProxies(app.cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("failed to parse TRUSTED_PROXIES: %w", err)
	}

	router := httpapi.NewRouter(BuildVersion, app.db, app.metrics, app.logger)

	router.AccountService = app.accountService
	router.InviteService = app.inviteService
	router.UsageService = app.usageService
	router.ChatService = app.chatService
	router.SecureCookies = app.cfg.SecureCookies
	router.StaticDir = app.cfg.StaticDir
	router.GlobalLimit = app.cfg.GlobalLimit
	router.AuthLimit = app.cfg.AuthLimit
	router.ChatLimit = app.cfg.ChatLimit
	router.TrustedProxies = proxies
	router.ApplyRoutes()

	app.router = router

	// WriteTimeout must outlast a chat turn.
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      app.cfg.ChatTimeout + 15*time.Second,
	}
	return nil
}
