// Package lifecycle defines the sale transaction lifecycle: the ordered set of
// stages a transaction moves through and the rules for moving between them.
package lifecycle

import (
	"errors"
	"fmt"
)

// Stage is one named step of the transaction lifecycle.
type Stage string

// Lifecycle stages, in order. The string values are the wire and storage form.
const (
	StageAgreement    Stage = "agreement"
	StageEarnestMoney Stage = "earnest_money"
	StageTitleDeed    Stage = "title_deed"
	StageCompleted    Stage = "completed"
)

// stages is the single source of truth for stage ordering. No other code may
// assume an order beyond what Position exposes.
var stages = []Stage{
	StageAgreement,
	StageEarnestMoney,
	StageTitleDeed,
	StageCompleted,
}

// ErrUnknownStage indicates a status value outside the lifecycle reached the
// engine. This is a data-corruption or programming error, not caller input.
var ErrUnknownStage = errors.New("unknown lifecycle stage")

// Position returns the zero-based rank of s in the lifecycle.
func Position(s Stage) (int, error) {
	for i, stage := range stages {
		if stage == s {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownStage, string(s))
}

// IsValid reports whether s is a member of the lifecycle.
func IsValid(s Stage) bool {
	_, err := Position(s)
	return err == nil
}

// Stages returns the lifecycle stages in order.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// First is the stage every new transaction starts in.
func First() Stage {
	return stages[0]
}

// Terminal is the final stage. It is the only stage at which a financial
// breakdown is computed.
func Terminal() Stage {
	return stages[len(stages)-1]
}
