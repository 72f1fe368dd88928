package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
)

func TestValidateCreateTransaction(t *testing.T) {
	valid := request.CreateTransactionRequest{
		PropertyAddress: "42 Harbour View",
		ContractPrice:   decimal.NewFromInt(500000),
		TotalServiceFee: decimal.NewFromInt(20000),
		ListingAgentID:  "5f3e9a6e-0b1c-4a77-9c41-9e1d2b3c4d5e",
		SellingAgentID:  "1a2b3c4d-5e6f-4a77-9c41-0b1c2d3e4f5a",
	}

	t.Run("accepts a valid request", func(t *testing.T) {
		if err := ValidateCreateTransaction(valid); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("requires a property address", func(t *testing.T) {
		req := valid
		req.PropertyAddress = "   "
		err := ValidateCreateTransaction(req)
		if err == nil || !strings.Contains(err.Error(), "propertyAddress") {
			t.Errorf("Expected propertyAddress error, got %v", err)
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		req := valid
		req.ContractPrice = decimal.NewFromInt(-1)
		req.TotalServiceFee = decimal.NewFromInt(-1)
		err := ValidateCreateTransaction(req)
		if err == nil {
			t.Fatal("Expected error for negative amounts")
		}
		if !strings.Contains(err.Error(), "contractPrice") || !strings.Contains(err.Error(), "totalServiceFee") {
			t.Errorf("Expected both amount errors, got %v", err)
		}
	})

	t.Run("accepts zero amounts", func(t *testing.T) {
		req := valid
		req.ContractPrice = decimal.Zero
		req.TotalServiceFee = decimal.Zero
		if err := ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error for zero amounts, got %v", err)
		}
	})

	t.Run("rejects malformed agent ids", func(t *testing.T) {
		req := valid
		req.ListingAgentID = "not-a-uuid"
		err := ValidateCreateTransaction(req)
		if err == nil || !strings.Contains(err.Error(), "listingAgentId") {
			t.Errorf("Expected listingAgentId error, got %v", err)
		}
	})
}

func TestValidateUpdateTransactionStatus(t *testing.T) {
	t.Run("accepts every lifecycle stage", func(t *testing.T) {
		for _, status := range []string{"agreement", "earnest_money", "title_deed", "completed"} {
			err := ValidateUpdateTransactionStatus(request.UpdateTransactionStatusRequest{Status: status})
			if err != nil {
				t.Errorf("Status %q rejected: %v", status, err)
			}
		}
	})

	t.Run("requires a status", func(t *testing.T) {
		err := ValidateUpdateTransactionStatus(request.UpdateTransactionStatusRequest{})
		if err == nil {
			t.Error("Expected error for empty status")
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		err := ValidateUpdateTransactionStatus(request.UpdateTransactionStatusRequest{Status: "escrow"})
		if err == nil || !strings.Contains(err.Error(), "invalid status") {
			t.Errorf("Expected invalid status error, got %v", err)
		}
	})

	t.Run("rejects uppercase stage names", func(t *testing.T) {
		err := ValidateUpdateTransactionStatus(request.UpdateTransactionStatusRequest{Status: "COMPLETED"})
		if err == nil {
			t.Error("Expected error for uppercase status")
		}
	})
}
