package model

import (
	"time"

	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
)

// TransactionHistory is one append-only audit record: a single accepted status
// transition. Records are never mutated or deleted.
type TransactionHistory struct {
	ID             string          `json:"id"`
	TransactionID  string          `json:"transactionId"`
	PreviousStatus lifecycle.Stage `json:"previousStatus"`
	NewStatus      lifecycle.Stage `json:"newStatus"`
	Metadata       map[string]any  `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}
