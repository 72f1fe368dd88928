package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
)

// AgentBuilder provides a fluent interface for creating test agents.
//
// Example usage:
//
//	// Simple creation with defaults
//	agent := testutil.NewAgent().Build(t, db)
//
//	// Customized agent
//	agent := testutil.NewAgent().
//	    WithName("Jordan Blake").
//	    WithPassword("hunter2").
//	    Build(t, db)
type AgentBuilder struct {
	ID       string
	Name     string
	Email    string
	Password string
	IsActive bool
}

// NewAgent creates an AgentBuilder with sensible defaults.
func NewAgent() *AgentBuilder {
	id := MakeID()
	return &AgentBuilder{
		ID:       id,
		Name:     "Test Agent " + id[:8],
		Email:    fmt.Sprintf("agent-%s@example.com", id[:8]),
		IsActive: true,
	}
}

// WithID sets a custom ID.
func (b *AgentBuilder) WithID(id string) *AgentBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AgentBuilder) WithName(name string) *AgentBuilder {
	b.Name = name
	return b
}

// WithEmail sets a custom email.
func (b *AgentBuilder) WithEmail(email string) *AgentBuilder {
	b.Email = email
	return b
}

// WithPassword sets a login password, stored as a bcrypt hash.
func (b *AgentBuilder) WithPassword(password string) *AgentBuilder {
	b.Password = password
	return b
}

// Deactivated marks the agent as soft-deleted.
func (b *AgentBuilder) Deactivated() *AgentBuilder {
	b.IsActive = false
	return b
}

// Build creates the agent in the database and returns it.
func (b *AgentBuilder) Build(t *testing.T, db *sql.DB) model.Agent {
	t.Helper()

	var passwordHash string
	if b.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		passwordHash = string(hash)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	query := `
		INSERT INTO agent (id, name, email, password_hash, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Email, passwordHash, b.IsActive, now, now)
	if err != nil {
		t.Fatalf("Failed to create test agent: %v", err)
	}

	return model.Agent{
		ID:           b.ID,
		Name:         b.Name,
		Email:        b.Email,
		IsActive:     b.IsActive,
		PasswordHash: passwordHash,
	}
}

// TransactionBuilder provides a fluent interface for creating test
// transactions.
//
// Example usage:
//
//	txn := testutil.NewTransaction(listing.ID, selling.ID).
//	    WithStatus(lifecycle.StageTitleDeed).
//	    WithTotalServiceFee("10000").
//	    Build(t, db)
type TransactionBuilder struct {
	ID              string
	PropertyAddress string
	ContractPrice   string
	TotalServiceFee string
	Status          lifecycle.Stage
	ListingAgentID  string
	SellingAgentID  string
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(listingAgentID, sellingAgentID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:              MakeID(),
		PropertyAddress: "1 Test Street",
		ContractPrice:   "250000",
		TotalServiceFee: "10000",
		Status:          lifecycle.First(),
		ListingAgentID:  listingAgentID,
		SellingAgentID:  sellingAgentID,
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithPropertyAddress sets a custom property address.
func (b *TransactionBuilder) WithPropertyAddress(address string) *TransactionBuilder {
	b.PropertyAddress = address
	return b
}

// WithContractPrice sets a custom contract price, as a decimal string.
func (b *TransactionBuilder) WithContractPrice(price string) *TransactionBuilder {
	b.ContractPrice = price
	return b
}

// WithTotalServiceFee sets a custom service fee, as a decimal string.
func (b *TransactionBuilder) WithTotalServiceFee(fee string) *TransactionBuilder {
	b.TotalServiceFee = fee
	return b
}

// WithStatus sets a custom lifecycle stage.
func (b *TransactionBuilder) WithStatus(status lifecycle.Stage) *TransactionBuilder {
	b.Status = status
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	now := time.Now().UTC()
	query := `
		INSERT INTO "transaction"
			(id, property_address, contract_price, total_service_fee, status,
			 listing_agent_id, selling_agent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.PropertyAddress,
		b.ContractPrice,
		b.TotalServiceFee,
		string(b.Status),
		b.ListingAgentID,
		b.SellingAgentID,
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:              b.ID,
		PropertyAddress: b.PropertyAddress,
		ContractPrice:   mustDecimal(t, b.ContractPrice),
		TotalServiceFee: mustDecimal(t, b.TotalServiceFee),
		Status:          b.Status,
		ListingAgentID:  b.ListingAgentID,
		SellingAgentID:  b.SellingAgentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func mustDecimal(t *testing.T, str string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(str)
	if err != nil {
		t.Fatalf("Failed to parse test decimal %q: %v", str, err)
	}
	return d
}
