package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/realtydesk/transaction-manager-backend/internal/api/handlers"
	custommiddleware "github.com/realtydesk/transaction-manager-backend/internal/api/middleware"
	"github.com/realtydesk/transaction-manager-backend/internal/auth"
	"github.com/realtydesk/transaction-manager-backend/internal/config"
	"github.com/realtydesk/transaction-manager-backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	agentService *service.AgentService,
	authService *service.AuthService,
	transactionService *service.TransactionService,
	tokenIssuer *auth.TokenIssuer,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(authService)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/agents", func(r chi.Router) {
			agentHandler := handlers.NewAgentHandler(agentService)
			r.Post("/", agentHandler.CreateAgent)
			r.Get("/", agentHandler.AllAgents)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", agentHandler.GetAgent)
				r.Put("/", agentHandler.UpdateAgent)
				r.Delete("/", agentHandler.DeleteAgent)
			})
		})

		// Transaction routes require a bearer token
		r.Route("/transactions", func(r chi.Router) {
			r.Use(custommiddleware.BearerAuth(tokenIssuer))

			transactionHandler := handlers.NewTransactionHandler(transactionService)
			r.Post("/", transactionHandler.CreateTransaction)
			r.Get("/", transactionHandler.AllTransactions)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Patch("/", transactionHandler.UpdateTransaction)
				r.Patch("/status", transactionHandler.UpdateTransactionStatus)
				r.Get("/financials", transactionHandler.GetFinancials)
				r.Get("/history", transactionHandler.GetHistory)
			})
		})
	})

	return r
}
