package payoff

import (
	"errors"
	"fmt"

	"repayment-planner/domain"
)

// ErrNonConvergent matches every *SimulationError via errors.Is.
var ErrNonConvergent = errors.New("payoff: simulation did not converge")

// ValidationError identifies the debt record that failed normalization.
// Index is -1 for batch-level problems such as the extra budget.
type ValidationError struct {
	Index  int
	DebtID string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	case e.DebtID != "":
		return fmt.Sprintf("debt %q (index %d): invalid %s: %s", e.DebtID, e.Index, e.Field, e.Reason)
	default:
		return fmt.Sprintf("debt at index %d: invalid %s: %s", e.Index, e.Field, e.Reason)
	}
}

// SimulationError reports a strategy run that hit the safety bound with
// balance still outstanding.
type SimulationError struct {
	Strategy         domain.Strategy
	Months           int
	RemainingBalance float64
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%s: debts not paid off within %d months (remaining balance %.2f)",
		e.Strategy, e.Months, e.RemainingBalance)
}

func (e *SimulationError) Is(target error) bool {
	return target == ErrNonConvergent
}

// ComparisonError is returned when neither strategy converges.
type ComparisonError struct {
	Snowball  error
	Avalanche error
}

func (e *ComparisonError) Error() string {
	return fmt.Sprintf("no strategy converged: %v; %v", e.Snowball, e.Avalanche)
}

func (e *ComparisonError) Unwrap() []error {
	return []error{e.Snowball, e.Avalanche}
}
