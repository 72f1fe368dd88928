package lifecycle

import "fmt"

// TransitionError describes a rejected status change. It carries the attempted
// (from, to) pair for diagnostics.
type TransitionError struct {
	From   Stage
	To     Stage
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s: %s", e.From, e.To, e.Reason)
}

// ValidateTransition checks a proposed status change against the current one.
// Transitions must move forward through the lifecycle one stage at a time;
// backward moves, no-ops and stage skips are rejected with a *TransitionError.
// Unknown stages surface as ErrUnknownStage.
func ValidateTransition(current, proposed Stage) error {
	ci, err := Position(current)
	if err != nil {
		return err
	}
	ni, err := Position(proposed)
	if err != nil {
		return err
	}

	if ni <= ci {
		return &TransitionError{From: current, To: proposed, Reason: "can only move forward"}
	}
	if ni != ci+1 {
		return &TransitionError{From: current, To: proposed, Reason: "stages must be sequential"}
	}
	return nil
}
