package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/realtydesk/transaction-manager-backend/internal/auth"
	"github.com/realtydesk/transaction-manager-backend/internal/repository"
	"github.com/realtydesk/transaction-manager-backend/internal/service"
)

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	agentRepo := repository.NewAgentRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		historyRepo,
		agentRepo,
	)
}

func NewTestAgentService(t *testing.T, db *sql.DB) *service.AgentService {
	t.Helper()

	return service.NewAgentService(repository.NewAgentRepository(db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestAuthService(t *testing.T, db *sql.DB) (*service.AuthService, *auth.TokenIssuer) {
	t.Helper()

	issuer, err := auth.NewTokenIssuer("", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create test token issuer: %v", err)
	}

	return service.NewAuthService(repository.NewAgentRepository(db), issuer), issuer
}
