package validation

import (
	"fmt"
	"strings"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
)

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - propertyAddress: must be non-empty
//   - contractPrice: must be non-negative
//   - totalServiceFee: must be non-negative
//   - listingAgentId, sellingAgentId: must be valid UUIDs
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.PropertyAddress) == "" {
		errors["propertyAddress"] = "propertyAddress is required"
	}

	if req.ContractPrice.IsNegative() {
		errors["contractPrice"] = "contractPrice cannot be negative"
	}

	if req.TotalServiceFee.IsNegative() {
		errors["totalServiceFee"] = "totalServiceFee cannot be negative"
	}

	if err := ValidateUUID(req.ListingAgentID); err != nil {
		errors["listingAgentId"] = err.Error()
	}

	if err := ValidateUUID(req.SellingAgentID); err != nil {
		errors["sellingAgentId"] = err.Error()
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a partial transaction update request.
// All fields are optional, but if provided, they must meet the same
// constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.PropertyAddress != nil && strings.TrimSpace(*req.PropertyAddress) == "" {
		errors["propertyAddress"] = "propertyAddress cannot be empty"
	}
	if req.ContractPrice != nil && req.ContractPrice.IsNegative() {
		errors["contractPrice"] = "contractPrice cannot be negative"
	}
	if req.TotalServiceFee != nil && req.TotalServiceFee.IsNegative() {
		errors["totalServiceFee"] = "totalServiceFee cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransactionStatus validates a status change request. The
// status must be a member of the lifecycle; whether the transition itself is
// allowed is the orchestrator's decision, not the request's.
func ValidateUpdateTransactionStatus(req request.UpdateTransactionStatusRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Status) == "" {
		errors["status"] = "status is required"
	} else if !lifecycle.IsValid(lifecycle.Stage(req.Status)) {
		errors["status"] = fmt.Sprintf("invalid status: %s", req.Status)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
