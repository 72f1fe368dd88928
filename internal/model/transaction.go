package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
)

// AgentRole tags a commission distribution row with the capacity in which the
// agent earned it.
type AgentRole string

// Distribution roles. RoleBoth is used when the listing and selling agent are
// the same person; the full agent pool goes to them undivided.
const (
	RoleListing AgentRole = "listing"
	RoleSelling AgentRole = "selling"
	RoleBoth    AgentRole = "both"
)

// CommissionDistribution is one row of the commission split: the share one
// agent receives from the agent pool. AgentID and AgentName are snapshots
// taken at completion time, not live references.
type CommissionDistribution struct {
	AgentID   string          `json:"agentId"`
	AgentName string          `json:"agentName"`
	Role      AgentRole       `json:"role"`
	Amount    decimal.Decimal `json:"amount"`
}

// FinancialBreakdown is the immutable financial snapshot computed when a
// transaction reaches the completed stage. AgencyAmount + AgentPoolAmount
// equals the total service fee, and the distribution amounts sum to
// AgentPoolAmount.
type FinancialBreakdown struct {
	AgencyAmount       decimal.Decimal          `json:"agencyAmount"`
	AgentPoolAmount    decimal.Decimal          `json:"agentPoolAmount"`
	AgentDistributions []CommissionDistribution `json:"agentDistributions"`
}

// Transaction represents one brokered property sale moving through the
// lifecycle. FinancialBreakdown is nil until the transaction completes and is
// written exactly once.
type Transaction struct {
	ID                 string              `json:"id"`
	PropertyAddress    string              `json:"propertyAddress"`
	ContractPrice      decimal.Decimal     `json:"contractPrice"`
	TotalServiceFee    decimal.Decimal     `json:"totalServiceFee"`
	Status             lifecycle.Stage     `json:"status"`
	ListingAgentID     string              `json:"listingAgentId"`
	SellingAgentID     string              `json:"sellingAgentId"`
	FinancialBreakdown *FinancialBreakdown `json:"financialBreakdown,omitempty"`
	CreatedAt          time.Time           `json:"createdAt,omitempty"`
	UpdatedAt          time.Time           `json:"updatedAt,omitempty"`
}

// TransactionResponse is a transaction enriched with agent names for API
// responses, replacing the bare agent id references.
type TransactionResponse struct {
	ID                 string              `json:"id"`
	PropertyAddress    string              `json:"propertyAddress"`
	ContractPrice      decimal.Decimal     `json:"contractPrice"`
	TotalServiceFee    decimal.Decimal     `json:"totalServiceFee"`
	Status             lifecycle.Stage     `json:"status"`
	ListingAgentID     string              `json:"listingAgentId"`
	ListingAgentName   string              `json:"listingAgentName"`
	SellingAgentID     string              `json:"sellingAgentId"`
	SellingAgentName   string              `json:"sellingAgentName"`
	FinancialBreakdown *FinancialBreakdown `json:"financialBreakdown,omitempty"`
	CreatedAt          time.Time           `json:"createdAt,omitempty"`
	UpdatedAt          time.Time           `json:"updatedAt,omitempty"`
}
