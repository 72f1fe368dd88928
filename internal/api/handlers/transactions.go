package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
	"github.com/realtydesk/transaction-manager-backend/internal/api/response"
	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
	"github.com/realtydesk/transaction-manager-backend/internal/service"
	"github.com/realtydesk/transaction-manager-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It parses requests and delegates business logic to the TransactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// CreateTransaction handles POST requests to open a new sale transaction.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest
// Response: 201 Created with Transaction (status = agreement, no breakdown)
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if either referenced agent does not exist
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrAgentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAgentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// AllTransactions handles GET requests to retrieve all transactions with
// agent names attached.
//
// Endpoint: GET /api/transactions
// Response: 200 OK with array of TransactionResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transactions/{uuid}
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if the transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// UpdateTransaction handles PATCH requests to update a transaction's editable
// fields. Status is not updatable here; use UpdateTransactionStatus.
//
// Endpoint: PATCH /api/transactions/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated Transaction
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), transactionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// UpdateTransactionStatus handles PATCH requests to move a transaction to the
// next lifecycle stage.
//
// Endpoint: PATCH /api/transactions/{uuid}/status
// Request Body: UpdateTransactionStatusRequest
// Response: 200 OK with updated Transaction (breakdown attached when completed)
// Error: 400 Bad Request if the status value or the transition is invalid
// Error: 404 Not Found if the transaction or a referenced agent is missing
// Error: 500 Internal Server Error on stored stage corruption or store faults
func (h *TransactionHandler) UpdateTransactionStatus(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateTransactionStatusRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateTransactionStatus(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateStatus(r.Context(), transactionID, lifecycle.Stage(req.Status))
	if err != nil {
		var transitionErr *lifecycle.TransitionError
		switch {
		case errors.Is(err, apperrors.ErrTransactionNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrAgentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAgentNotFound.Error(), err.Error())
		case errors.As(err, &transitionErr):
			response.RespondError(w, http.StatusBadRequest, "invalid status transition", transitionErr.Error())
		default:
			// includes lifecycle.ErrUnknownStage: a corrupt stored status is a
			// server fault, not caller input
			response.RespondError(w, http.StatusInternalServerError, "failed to update transaction status", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// GetFinancials handles GET requests for a completed transaction's financial
// breakdown.
//
// Endpoint: GET /api/transactions/{uuid}/financials
// Response: 200 OK with FinancialBreakdown
// Error: 400 Bad Request if the transaction has not completed
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetFinancials(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	breakdown, err := h.transactionService.GetFinancials(r.Context(), transactionID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTransactionNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrFinancialsUnavailable):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrFinancialsUnavailable.Error(), "")
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFinancials.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, breakdown)
}

// GetHistory handles GET requests for a transaction's status audit trail,
// most recent first.
//
// Endpoint: GET /api/transactions/{uuid}/history
// Response: 200 OK with array of TransactionHistory
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	records, err := h.transactionService.GetHistory(r.Context(), transactionID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, records)
}
