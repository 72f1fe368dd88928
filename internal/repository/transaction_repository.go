package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction
// table and the commission_distribution rows owned by it.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Insert stores a new transaction. A new transaction never carries a
// financial breakdown.
func (r *TransactionRepository) Insert(ctx context.Context, txn *model.Transaction) error {
	query := `
		INSERT INTO "transaction"
			(id, property_address, contract_price, total_service_fee, status,
			 listing_agent_id, selling_agent_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		txn.ID,
		txn.PropertyAddress,
		txn.ContractPrice.String(),
		txn.TotalServiceFee.String(),
		string(txn.Status),
		txn.ListingAgentID,
		txn.SellingAgentID,
		FormatTime(txn.CreatedAt),
		FormatTime(txn.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetByID retrieves one transaction with its financial breakdown, if any.
// Returns apperrors.ErrTransactionNotFound if the id does not resolve.
func (r *TransactionRepository) GetByID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	query := `
		SELECT id, property_address, contract_price, total_service_fee, status,
		       listing_agent_id, selling_agent_id, agency_amount, agent_pool_amount,
		       created_at, updated_at
		FROM "transaction"
		WHERE id = ?
	`

	var t model.Transaction
	var priceStr, feeStr, statusStr, createdAtStr, updatedAtStr string
	var agencyStr, poolStr sql.NullString

	err := r.db.QueryRowContext(ctx, query, transactionID).Scan(
		&t.ID,
		&t.PropertyAddress,
		&priceStr,
		&feeStr,
		&statusStr,
		&t.ListingAgentID,
		&t.SellingAgentID,
		&agencyStr,
		&poolStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}

	t.Status = lifecycle.Stage(statusStr)
	if t.ContractPrice, err = ParseDecimal(priceStr); err != nil {
		return nil, err
	}
	if t.TotalServiceFee, err = ParseDecimal(feeStr); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return nil, err
	}

	// agency_amount and agent_pool_amount are set together at completion
	if agencyStr.Valid && poolStr.Valid {
		breakdown, err := r.loadBreakdown(ctx, t.ID, agencyStr.String, poolStr.String)
		if err != nil {
			return nil, err
		}
		t.FinancialBreakdown = breakdown
	}

	return &t, nil
}

// GetAll retrieves all transactions enriched with agent names, ordered by
// creation time ascending.
func (r *TransactionRepository) GetAll(ctx context.Context) ([]model.TransactionResponse, error) {
	return r.queryResponses(ctx, "", nil)
}

// GetResponse retrieves one transaction enriched with agent names.
// Returns apperrors.ErrTransactionNotFound if the id does not resolve.
func (r *TransactionRepository) GetResponse(ctx context.Context, transactionID string) (*model.TransactionResponse, error) {
	responses, err := r.queryResponses(ctx, `WHERE t.id = ?`, []any{transactionID})
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &responses[0], nil
}

func (r *TransactionRepository) queryResponses(ctx context.Context, where string, args []any) ([]model.TransactionResponse, error) {
	query := `
		SELECT t.id, t.property_address, t.contract_price, t.total_service_fee,
		       t.status, t.listing_agent_id, la.name, t.selling_agent_id, sa.name,
		       t.agency_amount, t.agent_pool_amount, t.created_at, t.updated_at
		FROM "transaction" t
		JOIN agent la ON t.listing_agent_id = la.id
		JOIN agent sa ON t.selling_agent_id = sa.id
		` + where + `
		ORDER BY t.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	responses := []model.TransactionResponse{}
	for rows.Next() {
		var t model.TransactionResponse
		var priceStr, feeStr, statusStr, createdAtStr, updatedAtStr string
		var agencyStr, poolStr sql.NullString

		err := rows.Scan(
			&t.ID,
			&t.PropertyAddress,
			&priceStr,
			&feeStr,
			&statusStr,
			&t.ListingAgentID,
			&t.ListingAgentName,
			&t.SellingAgentID,
			&t.SellingAgentName,
			&agencyStr,
			&poolStr,
			&createdAtStr,
			&updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Status = lifecycle.Stage(statusStr)
		if t.ContractPrice, err = ParseDecimal(priceStr); err != nil {
			return nil, err
		}
		if t.TotalServiceFee, err = ParseDecimal(feeStr); err != nil {
			return nil, err
		}
		if t.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}
		if t.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
			return nil, err
		}

		if agencyStr.Valid && poolStr.Valid {
			breakdown, err := r.loadBreakdown(ctx, t.ID, agencyStr.String, poolStr.String)
			if err != nil {
				return nil, err
			}
			t.FinancialBreakdown = breakdown
		}

		responses = append(responses, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return responses, nil
}

func (r *TransactionRepository) loadBreakdown(ctx context.Context, transactionID, agencyStr, poolStr string) (*model.FinancialBreakdown, error) {
	var breakdown model.FinancialBreakdown
	var err error

	if breakdown.AgencyAmount, err = ParseDecimal(agencyStr); err != nil {
		return nil, err
	}
	if breakdown.AgentPoolAmount, err = ParseDecimal(poolStr); err != nil {
		return nil, err
	}

	query := `
		SELECT agent_id, agent_name, role, amount
		FROM commission_distribution
		WHERE transaction_id = ?
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query commission_distribution table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d model.CommissionDistribution
		var roleStr, amountStr string

		if err := rows.Scan(&d.AgentID, &d.AgentName, &roleStr, &amountStr); err != nil {
			return nil, fmt.Errorf("failed to scan commission_distribution results: %w", err)
		}
		d.Role = model.AgentRole(roleStr)
		if d.Amount, err = ParseDecimal(amountStr); err != nil {
			return nil, err
		}

		breakdown.AgentDistributions = append(breakdown.AgentDistributions, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating commission_distribution table: %w", err)
	}

	return &breakdown, nil
}

// ApplyStatusChange persists an accepted status transition: the new status,
// the financial breakdown when one was just computed, and exactly one history
// record, all in a single database transaction. Running these together means a
// stored status change and its audit record can never diverge.
func (r *TransactionRepository) ApplyStatusChange(ctx context.Context, txn *model.Transaction, record *model.TransactionHistory) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	updateQuery := `
		UPDATE "transaction"
		SET status = ?, agency_amount = ?, agent_pool_amount = ?, updated_at = ?
		WHERE id = ?
	`

	var agencyAmount, poolAmount any
	if txn.FinancialBreakdown != nil {
		agencyAmount = txn.FinancialBreakdown.AgencyAmount.String()
		poolAmount = txn.FinancialBreakdown.AgentPoolAmount.String()
	}

	result, err := dbTx.ExecContext(ctx, updateQuery,
		string(txn.Status),
		agencyAmount,
		poolAmount,
		FormatTime(time.Now()),
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	if txn.FinancialBreakdown != nil {
		distributionQuery := `
			INSERT INTO commission_distribution
				(id, transaction_id, position, agent_id, agent_name, role, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		for i, d := range txn.FinancialBreakdown.AgentDistributions {
			_, err := dbTx.ExecContext(ctx, distributionQuery,
				uuid.New().String(),
				txn.ID,
				i,
				d.AgentID,
				d.AgentName,
				string(d.Role),
				d.Amount.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert commission distribution: %w", err)
			}
		}
	}

	if err := insertHistory(ctx, dbTx, record); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status change: %w", err)
	}

	return nil
}

// Update stores the transaction's editable fields. Status and breakdown are
// only written through ApplyStatusChange.
func (r *TransactionRepository) Update(ctx context.Context, txn *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET property_address = ?, contract_price = ?, total_service_fee = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		txn.PropertyAddress,
		txn.ContractPrice.String(),
		txn.TotalServiceFee.String(),
		FormatTime(time.Now()),
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// CountByStage returns the number of transactions currently in each stage.
// Stages with no transactions are absent from the map.
func (r *TransactionRepository) CountByStage(ctx context.Context) (map[lifecycle.Stage]int, error) {
	query := `SELECT status, COUNT(*) FROM "transaction" GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	counts := make(map[lifecycle.Stage]int)
	for rows.Next() {
		var statusStr string
		var count int
		if err := rows.Scan(&statusStr, &count); err != nil {
			return nil, fmt.Errorf("failed to scan transaction counts: %w", err)
		}
		counts[lifecycle.Stage(statusStr)] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction counts: %w", err)
	}

	return counts, nil
}
