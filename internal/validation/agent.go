package validation

import (
	"net/mail"
	"strings"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
)

// ValidateCreateAgent validates an agent creation request.
//
// Required fields:
//   - name: must be non-empty
//   - email: must parse as an address
//
// Password is optional; agents without one cannot log in.
func ValidateCreateAgent(req request.CreateAgentRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errors["email"] = "invalid email address"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAgent validates a partial agent update request.
func ValidateUpdateAgent(req request.UpdateAgentRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			errors["email"] = "invalid email address"
		}
	}
	if req.Password != nil && *req.Password == "" {
		errors["password"] = "password cannot be empty"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateLogin validates a login request.
func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	}
	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
