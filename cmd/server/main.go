package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/realtydesk/transaction-manager-backend/internal/api"
	"github.com/realtydesk/transaction-manager-backend/internal/auth"
	"github.com/realtydesk/transaction-manager-backend/internal/config"
	"github.com/realtydesk/transaction-manager-backend/internal/database"
	"github.com/realtydesk/transaction-manager-backend/internal/repository"
	"github.com/realtydesk/transaction-manager-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Token issuer for login and the transaction-route guard
	tokenIssuer, err := auth.NewTokenIssuer(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}
	if cfg.Auth.SecretKey == "" {
		log.Println("AUTH_SECRET_KEY not set; generated an ephemeral token key")
	}

	// Create repositories
	agentRepo := repository.NewAgentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	agentService := service.NewAgentService(agentRepo)
	authService := service.NewAuthService(agentRepo, tokenIssuer)
	transactionService := service.NewTransactionService(
		transactionRepo,
		historyRepo,
		agentRepo,
	)

	// Pipeline digest on a schedule
	digest := cron.New()
	if _, err := digest.AddFunc(cfg.Digest.Schedule, func() {
		transactionService.LogPipelineDigest(context.Background())
	}); err != nil {
		log.Fatalf("Failed to schedule pipeline digest: %v", err)
	}
	digest.Start()
	defer digest.Stop()

	// Create router
	router := api.NewRouter(systemService, agentService, authService, transactionService, tokenIssuer, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
