package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/config"
	"github.com/LaBanHSPO/premium-bio-website/internal/handlers"
	"github.com/LaBanHSPO/premium-bio-website/internal/models"
	"github.com/LaBanHSPO/premium-bio-website/internal/repository"
	"github.com/LaBanHSPO/premium-bio-website/internal/services"
	"github.com/LaBanHSPO/premium-bio-website/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Setup Logger
	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// 3. Initialize Database
	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 4. Initialize Redis. Sessions, rate limiting and the config cache
	// all live there, so unlike the database a failure here is fatal.
	rdb, err := repository.InitRedis(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// 5. Run Migrations
	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		if err := repository.AutoMigrateSchema(db); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}

	// 6. Seed the admin account on first boot
	if err := ensureAdminUser(db, cfg, logger); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	// 7. Initialize Services
	cache := services.NewConfigCache(rdb, logger)
	profileService := services.NewProfileService(db, cache, logger)
	sessions := services.NewSessionStore(rdb)
	loginLimiter := services.NewLoginRateLimiter(rdb)
	auditService := services.NewAuditService(db, logger)
	rateLimiter := services.NewIPRateLimiter(5, 10, logger)

	// 8. Initialize Handler
	h := handlers.NewHandler(cfg, logger, db, profileService, sessions, loginLimiter, auditService)

	// 9. Setup Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter(rateLimiter)

	// 10. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Background Context for workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// Start Background Workers
	go auditService.Start(workerCtx)
	rateLimiter.StartCleanup(10 * time.Minute)

	// Initializing server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	// Graceful shutdown timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	// Wait a tiny bit for workers
	time.Sleep(100 * time.Millisecond)

	logger.Info("Server exiting")
	return nil
}

// ensureAdminUser creates the configured admin account if no account with
// that username exists yet. The password is never updated here: rotating
// credentials on a live deployment is an explicit operation, not a restart
// side effect.
func ensureAdminUser(db *gorm.DB, cfg config.Config, logger *slog.Logger) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		logger.Warn("No admin credentials configured, skipping admin seeding")
		return nil
	}

	var existing models.AdminUser
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		ID:           uuid.NewString(),
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logger.Info("Seeded admin user", "username", cfg.AdminUsername)
	return nil
}
