package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/realtydesk/transaction-manager-backend/internal/api/request"
	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/commission"
	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
	"github.com/realtydesk/transaction-manager-backend/internal/repository"
)

// TransactionService orchestrates the transaction lifecycle: creation, status
// transitions with their audit trail, and the commission split computed when
// a transaction completes.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	historyRepo     *repository.HistoryRepository
	agentRepo       *repository.AgentRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	historyRepo *repository.HistoryRepository,
	agentRepo *repository.AgentRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		historyRepo:     historyRepo,
		agentRepo:       agentRepo,
	}
}

// CreateTransaction creates a new transaction in the first lifecycle stage.
// Both referenced agents must resolve; returns apperrors.ErrAgentNotFound
// otherwise.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	if _, _, err := s.resolveAgents(ctx, req.ListingAgentID, req.SellingAgentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := &model.Transaction{
		ID:              uuid.New().String(),
		PropertyAddress: req.PropertyAddress,
		ContractPrice:   req.ContractPrice,
		TotalServiceFee: req.TotalServiceFee,
		Status:          lifecycle.First(),
		ListingAgentID:  req.ListingAgentID,
		SellingAgentID:  req.SellingAgentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.transactionRepo.Insert(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return txn, nil
}

// UpdateStatus moves a transaction to the proposed stage. The transition must
// be one step forward in the lifecycle. Every accepted transition appends one
// history record; entering the terminal stage additionally computes the
// financial breakdown from agent snapshots taken at that moment. The status,
// the breakdown and the history record are persisted atomically.
func (s *TransactionService) UpdateStatus(ctx context.Context, transactionID string, proposed lifecycle.Stage) (*model.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.ValidateTransition(txn.Status, proposed); err != nil {
		return nil, err
	}

	previous := txn.Status
	txn.Status = proposed

	if proposed == lifecycle.Terminal() && txn.FinancialBreakdown == nil {
		listing, selling, err := s.resolveAgents(ctx, txn.ListingAgentID, txn.SellingAgentID)
		if err != nil {
			return nil, err
		}

		breakdown, err := commission.Split(txn.TotalServiceFee, listing.Snapshot(), selling.Snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to compute financial breakdown: %w", err)
		}
		txn.FinancialBreakdown = breakdown
	}

	record := &model.TransactionHistory{
		ID:             uuid.New().String(),
		TransactionID:  txn.ID,
		PreviousStatus: previous,
		NewStatus:      proposed,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.transactionRepo.ApplyStatusChange(ctx, txn, record); err != nil {
		return nil, err
	}

	return txn, nil
}

// GetFinancials returns the financial breakdown of a completed transaction.
// Returns apperrors.ErrFinancialsUnavailable while the transaction has not
// reached the terminal stage.
func (s *TransactionService) GetFinancials(ctx context.Context, transactionID string) (*model.FinancialBreakdown, error) {
	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if txn.Status != lifecycle.Terminal() || txn.FinancialBreakdown == nil {
		return nil, apperrors.ErrFinancialsUnavailable
	}

	return txn.FinancialBreakdown, nil
}

// GetHistory returns a transaction's audit records, most recent first.
func (s *TransactionService) GetHistory(ctx context.Context, transactionID string) ([]model.TransactionHistory, error) {
	return s.historyRepo.ListByTransaction(ctx, transactionID)
}

// GetTransactions retrieves all transactions enriched with agent names.
func (s *TransactionService) GetTransactions(ctx context.Context) ([]model.TransactionResponse, error) {
	return s.transactionRepo.GetAll(ctx)
}

// GetTransaction retrieves a single transaction enriched with agent names.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (*model.TransactionResponse, error) {
	return s.transactionRepo.GetResponse(ctx, transactionID)
}

// UpdateTransaction applies a partial update to a transaction's editable
// fields. Status changes go through UpdateStatus only.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	txn, err := s.transactionRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.PropertyAddress != nil {
		txn.PropertyAddress = *req.PropertyAddress
	}
	if req.ContractPrice != nil {
		txn.ContractPrice = *req.ContractPrice
	}
	if req.TotalServiceFee != nil {
		txn.TotalServiceFee = *req.TotalServiceFee
	}

	if err := s.transactionRepo.Update(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// LogPipelineDigest logs the number of open transactions per lifecycle stage.
// Invoked on a schedule from the cron runner in main.
func (s *TransactionService) LogPipelineDigest(ctx context.Context) {
	counts, err := s.transactionRepo.CountByStage(ctx)
	if err != nil {
		log.Printf("pipeline digest failed: %v", err)
		return
	}

	for _, stage := range lifecycle.Stages() {
		log.Printf("pipeline digest: %s=%d", stage, counts[stage])
	}
}

// resolveAgents loads both agent references concurrently. An unresolvable id
// surfaces as apperrors.ErrAgentNotFound.
func (s *TransactionService) resolveAgents(ctx context.Context, listingAgentID, sellingAgentID string) (*model.Agent, *model.Agent, error) {
	var listing, selling *model.Agent

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listing, err = s.agentRepo.GetByID(ctx, listingAgentID)
		return err
	})
	g.Go(func() error {
		var err error
		selling, err = s.agentRepo.GetByID(ctx, sellingAgentID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return listing, selling, nil
}
