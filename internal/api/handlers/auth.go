package handlers

import (
	"errors"
	"net/http"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
	"github.com/realtydesk/transaction-manager-backend/internal/api/response"
	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/service"
	"github.com/realtydesk/transaction-manager-backend/internal/validation"
)

// AuthHandler handles HTTP requests for authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login handles POST requests to exchange agent credentials for a token.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if validation fails
// Error: 401 Unauthorized if the credentials are wrong
// Error: 500 Internal Server Error if token issuing fails
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, apperrors.ErrInvalidCredentials.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{AccessToken: token})
}
