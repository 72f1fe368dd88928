package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/realtydesk/transaction-manager-backend/internal/lifecycle"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
)

// HistoryRepository provides data access methods for the transaction_history
// table. Records are append-only; there are no update or delete methods.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the provided database connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// execer is satisfied by *sql.DB and *sql.Tx, so the history insert can run
// either standalone or inside a status-change transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertHistory(ctx context.Context, db execer, record *model.TransactionHistory) error {
	query := `
		INSERT INTO transaction_history
			(id, transaction_id, previous_status, new_status, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var metadata any
	if len(record.Metadata) > 0 {
		encoded, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode history metadata: %w", err)
		}
		metadata = string(encoded)
	}

	_, err := db.ExecContext(ctx, query,
		record.ID,
		record.TransactionID,
		string(record.PreviousStatus),
		string(record.NewStatus),
		metadata,
		FormatTime(record.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}

	return nil
}

// Append stores one audit record.
func (r *HistoryRepository) Append(ctx context.Context, record *model.TransactionHistory) error {
	return insertHistory(ctx, r.db, record)
}

// ListByTransaction retrieves all history records for a transaction, most
// recent first.
func (r *HistoryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]model.TransactionHistory, error) {
	query := `
		SELECT id, transaction_id, previous_status, new_status, metadata, created_at
		FROM transaction_history
		WHERE transaction_id = ?
		ORDER BY created_at DESC, rowid DESC
	`

	rows, err := r.db.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction_history table: %w", err)
	}
	defer rows.Close()

	records := []model.TransactionHistory{}
	for rows.Next() {
		var rec model.TransactionHistory
		var prevStr, newStr, createdAtStr string
		var metadataStr sql.NullString

		err := rows.Scan(
			&rec.ID,
			&rec.TransactionID,
			&prevStr,
			&newStr,
			&metadataStr,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction_history results: %w", err)
		}

		rec.PreviousStatus = lifecycle.Stage(prevStr)
		rec.NewStatus = lifecycle.Stage(newStr)
		if metadataStr.Valid {
			if err := json.Unmarshal([]byte(metadataStr.String), &rec.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode history metadata: %w", err)
			}
		}
		if rec.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction_history table: %w", err)
	}

	return records, nil
}
