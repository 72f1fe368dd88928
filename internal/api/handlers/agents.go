package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
	"github.com/realtydesk/transaction-manager-backend/internal/api/response"
	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/service"
	"github.com/realtydesk/transaction-manager-backend/internal/validation"
)

// AgentHandler handles HTTP requests for agent endpoints.
type AgentHandler struct {
	agentService *service.AgentService
}

// NewAgentHandler creates a new AgentHandler with the provided service dependency.
func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
	}
}

// CreateAgent handles POST requests to register a new agent.
//
// Endpoint: POST /api/agents
// Request Body: CreateAgentRequest
// Response: 201 Created with Agent
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the email is already in use
// Error: 500 Internal Server Error if creation fails
func (h *AgentHandler) CreateAgent(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAgentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAgent(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	agent, err := h.agentService.CreateAgent(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEmail.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create agent", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, agent)
}

// AllAgents handles GET requests to retrieve all active agents.
//
// Endpoint: GET /api/agents
// Response: 200 OK with array of Agent
// Error: 500 Internal Server Error if retrieval fails
func (h *AgentHandler) AllAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentService.GetAgents(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAgents.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, agents)
}

// GetAgent handles GET requests to retrieve a single agent by ID.
//
// Endpoint: GET /api/agents/{uuid}
// Response: 200 OK with Agent
// Error: 404 Not Found if agent not found
// Error: 500 Internal Server Error if retrieval fails
func (h *AgentHandler) GetAgent(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "uuid")

	agent, err := h.agentService.GetAgent(r.Context(), agentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAgentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAgentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAgent.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, agent)
}

// UpdateAgent handles PUT requests to update an agent's profile.
//
// Endpoint: PUT /api/agents/{uuid}
// Request Body: UpdateAgentRequest (all fields optional)
// Response: 200 OK with updated Agent
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if agent not found
// Error: 409 Conflict if the new email is already in use
// Error: 500 Internal Server Error if update fails
func (h *AgentHandler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateAgentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateAgent(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	agent, err := h.agentService.UpdateAgent(r.Context(), agentID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAgentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAgentNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateEmail):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEmail.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to update agent", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, agent)
}

// DeleteAgent handles DELETE requests to deactivate an agent. The agent is
// soft-deleted; completed transactions keep their snapshots.
//
// Endpoint: DELETE /api/agents/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if agent not found
// Error: 500 Internal Server Error if deactivation fails
func (h *AgentHandler) DeleteAgent(w http.ResponseWriter, r *http.Request) {
	agentID := chi.URLParam(r, "uuid")

	if err := h.agentService.DeactivateAgent(r.Context(), agentID); err != nil {
		if errors.Is(err, apperrors.ErrAgentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAgentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete agent", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
