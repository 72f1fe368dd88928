package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/realtydesk/transaction-manager-backend/internal/apperrors"
	"github.com/realtydesk/transaction-manager-backend/internal/model"
)

// AgentRepository provides data access methods for the agent table.
type AgentRepository struct {
	db *sql.DB
}

// NewAgentRepository creates a new AgentRepository with the provided database connection.
func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

// Insert stores a new agent.
func (r *AgentRepository) Insert(ctx context.Context, agent *model.Agent) error {
	query := `
		INSERT INTO agent (id, name, email, password_hash, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		agent.ID,
		agent.Name,
		agent.Email,
		agent.PasswordHash,
		agent.IsActive,
		FormatTime(agent.CreatedAt),
		FormatTime(agent.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert agent: %w", err)
	}

	return nil
}

// GetByID retrieves one agent by id, active or not. Deactivated agents must
// stay resolvable so historical transactions keep working.
// Returns apperrors.ErrAgentNotFound if the id does not resolve.
func (r *AgentRepository) GetByID(ctx context.Context, agentID string) (*model.Agent, error) {
	query := `
		SELECT id, name, email, is_active, created_at, updated_at, password_hash
		FROM agent
		WHERE id = ?
	`

	agent, err := r.scanAgent(r.db.QueryRowContext(ctx, query, agentID))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query agent table: %w", err)
	}

	return agent, nil
}

// GetByEmail retrieves one agent by email including the password hash, for
// credential verification. Returns apperrors.ErrAgentNotFound if no agent has
// that email.
func (r *AgentRepository) GetByEmail(ctx context.Context, email string) (*model.Agent, error) {
	query := `
		SELECT id, name, email, is_active, created_at, updated_at, password_hash
		FROM agent
		WHERE email = ?
	`

	agent, err := r.scanAgent(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrAgentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query agent table: %w", err)
	}

	return agent, nil
}

// List retrieves all active agents ordered by name.
func (r *AgentRepository) List(ctx context.Context) ([]model.Agent, error) {
	query := `
		SELECT id, name, email, is_active, created_at, updated_at, password_hash
		FROM agent
		WHERE is_active = TRUE
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query agent table: %w", err)
	}
	defer rows.Close()

	agents := []model.Agent{}
	for rows.Next() {
		agent, err := r.scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent table results: %w", err)
		}
		agents = append(agents, *agent)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating agent table: %w", err)
	}

	return agents, nil
}

// Update stores the agent's mutable profile fields.
func (r *AgentRepository) Update(ctx context.Context, agent *model.Agent) error {
	query := `
		UPDATE agent
		SET name = ?, email = ?, password_hash = ?, is_active = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		agent.Name,
		agent.Email,
		agent.PasswordHash,
		agent.IsActive,
		FormatTime(time.Now()),
		agent.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update agent: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAgentNotFound
	}

	return nil
}

// Deactivate soft-deletes an agent. The row is kept so completed transactions
// and snapshots remain consistent.
func (r *AgentRepository) Deactivate(ctx context.Context, agentID string) error {
	query := `UPDATE agent SET is_active = FALSE, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, FormatTime(time.Now()), agentID)
	if err != nil {
		return fmt.Errorf("failed to deactivate agent: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read deactivate result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAgentNotFound
	}

	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AgentRepository) scanAgent(row rowScanner) (*model.Agent, error) {
	var a model.Agent
	var createdAtStr, updatedAtStr string
	var passwordHash sql.NullString

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.IsActive,
		&createdAtStr,
		&updatedAtStr,
		&passwordHash,
	)
	if err != nil {
		return nil, err
	}

	if passwordHash.Valid {
		a.PasswordHash = passwordHash.String
	}

	if a.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &a, nil
}
