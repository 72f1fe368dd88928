package model

import "time"

// Agent represents a brokering agent who can act as the listing or selling
// side of a transaction. PasswordHash is never serialized.
type Agent struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"isActive"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// AgentSnapshot is a point-in-time copy of an agent's identity, captured when
// a transaction completes. It is never refreshed afterwards, so historical
// breakdowns keep the name the agent had at completion time.
type AgentSnapshot struct {
	ID   string
	Name string
}

// Snapshot captures the agent's identity for use in a commission distribution.
func (a *Agent) Snapshot() AgentSnapshot {
	return AgentSnapshot{ID: a.ID, Name: a.Name}
}
