package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"technest_backend/database"
	"technest_backend/internal/config"
	"technest_backend/internal/email"
	"technest_backend/internal/handlers"
	"technest_backend/internal/logger"
	"technest_backend/internal/middleware"
	"technest_backend/internal/routes"
	"technest_backend/internal/services"
	"technest_backend/internal/session"
	"technest_backend/internal/storage"
	"technest_backend/internal/workers"
	"technest_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// Run boots the whole application: config, database, services, background
// workers and the HTTP server. It blocks until SIGINT/SIGTERM and then
// shuts down gracefully.
func Run() error {
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	mailer := buildEmailProvider(cfg)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.CookieDomain, cfg.Session.Secure)
	container := services.NewServiceContainer(cfg, store, mailer)

	if err := seedFirstAdmin(db, cfg, container); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	go hub.Run(ctx)
	go workers.NewChatPruner(db, container.Chat).Start(ctx)

	router := SetupRouter(cfg, db, container, sessions, hub)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// SetupRouter assembles the gin engine with the full middleware chain and
// every route. Split out so tests can drive the API in-process.
func SetupRouter(cfg *config.Config, db *gorm.DB, container *services.ServiceContainer, sessions *session.Manager, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.App.BaseURL))
	r.Use(middleware.DBMiddleware(db))
	r.Use(middleware.SessionMiddleware(sessions))

	appHandlers := handlers.NewAppHandlers(container, sessions)
	wsHandler := ws.NewHandler(hub, container.Chat, sessions)
	routes.RegisterRoutes(r, appHandlers, wsHandler, sessions)

	return r
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("no SMTP host configured, using mock email provider")
		return &MockEmailProvider{}
	}
	return email.NewSMTPProvider(cfg)
}

// seedFirstAdmin creates the bootstrap admin account from config when no
// admin exists yet.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config, container *services.ServiceContainer) error {
	if cfg.App.FirstAdminUsername == "" || cfg.App.FirstAdminPassword == "" {
		return nil
	}
	return container.Admin.SeedAdmin(db, cfg.App.FirstAdminUsername, cfg.App.FirstAdminEmail, cfg.App.FirstAdminPassword)
}
