package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/auth"
	"github.com/realtydesk/transaction-manager-backend/internal/repository"
)

// AuthService verifies agent credentials and issues bearer tokens.
type AuthService struct {
	agentRepo *repository.AgentRepository
	issuer    *auth.TokenIssuer
}

// NewAuthService creates a new AuthService with the provided dependencies.
func NewAuthService(agentRepo *repository.AgentRepository, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{
		agentRepo: agentRepo,
		issuer:    issuer,
	}
}

// Login verifies the email/password pair and returns a token for the agent.
// A wrong email, a missing password hash and a wrong password all surface as
// the same apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	agent, err := s.agentRepo.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrAgentNotFound) {
		return "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if agent.PasswordHash == "" {
		return "", apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.issuer.Issue(auth.Claims{AgentID: agent.ID, Email: agent.Email})
}
