package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAgentNotFound indicates that a referenced agent does not exist, either
	// at transaction creation or at completion-time snapshotting.
	ErrAgentNotFound = errors.New("agent not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrFinancialsUnavailable indicates a financial breakdown was requested
	// before the transaction completed.
	ErrFinancialsUnavailable = errors.New("transaction is not completed or financials are missing")

	// ErrDuplicateEmail indicates an agent with the same email already exists.
	ErrDuplicateEmail = errors.New("agent email already in use")

	// ErrInvalidCredentials indicates a login attempt with a wrong email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data, as opposed to missing entities or validation issues.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveAgents       = errors.New("failed to retrieve agents")
	ErrFailedToRetrieveAgent        = errors.New("failed to retrieve agent")
	ErrFailedToRetrieveHistory      = errors.New("failed to retrieve transaction history")
	ErrFailedToRetrieveFinancials   = errors.New("failed to retrieve financial breakdown")
)
