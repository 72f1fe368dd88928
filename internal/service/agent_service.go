package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
	"github.com/realtydesk/transaction-manager-backend/internal/repository"
)

// AgentService handles agent account business logic.
type AgentService struct {
	agentRepo *repository.AgentRepository
}

// NewAgentService creates a new AgentService with the provided repository dependency.
func NewAgentService(agentRepo *repository.AgentRepository) *AgentService {
	return &AgentService{agentRepo: agentRepo}
}

// CreateAgent registers a new agent. The email must be unique; the password,
// when given, is stored as a bcrypt hash.
func (s *AgentService) CreateAgent(ctx context.Context, req request.CreateAgentRequest) (*model.Agent, error) {
	if err := s.checkEmailAvailable(ctx, req.Email, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	agent := &model.Agent{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		agent.PasswordHash = string(hash)
	}

	if err := s.agentRepo.Insert(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return agent, nil
}

// GetAgents retrieves all active agents.
func (s *AgentService) GetAgents(ctx context.Context) ([]model.Agent, error) {
	return s.agentRepo.List(ctx)
}

// GetAgent retrieves one agent by id.
func (s *AgentService) GetAgent(ctx context.Context, agentID string) (*model.Agent, error) {
	return s.agentRepo.GetByID(ctx, agentID)
}

// UpdateAgent applies a partial update to an agent's profile.
func (s *AgentService) UpdateAgent(ctx context.Context, agentID string, req request.UpdateAgentRequest) (*model.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		agent.Name = *req.Name
	}
	if req.Email != nil && *req.Email != agent.Email {
		if err := s.checkEmailAvailable(ctx, *req.Email, agentID); err != nil {
			return nil, err
		}
		agent.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		agent.PasswordHash = string(hash)
	}

	if err := s.agentRepo.Update(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// DeactivateAgent soft-deletes an agent. Historical transactions referencing
// the agent remain intact.
func (s *AgentService) DeactivateAgent(ctx context.Context, agentID string) error {
	return s.agentRepo.Deactivate(ctx, agentID)
}

func (s *AgentService) checkEmailAvailable(ctx context.Context, email, exceptAgentID string) error {
	existing, err := s.agentRepo.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrAgentNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != exceptAgentID {
		return apperrors.ErrDuplicateEmail
	}
	return nil
}
