package payoff

import (
	"golang.org/x/sync/errgroup"

	"repayment-planner/domain"
)

// Comparison holds both full simulations along with the assembled result.
type Comparison struct {
	Snowball  Simulation
	Avalanche Simulation
	Result    domain.ComparisonResult
}

type Comparator struct {
	runner Runner
}

func NewComparator(runner Runner) *Comparator {
	return &Comparator{runner: runner}
}

// WithSchedule returns a comparator whose simulations keep the month-by-month
// schedule.
func (c *Comparator) WithSchedule() *Comparator {
	runner := c.runner
	runner.KeepSchedule = true
	return &Comparator{runner: runner}
}

// Compare normalizes records once and runs both strategies against it.
// A validation failure returns no result. When one strategy does not
// converge its side is marked not achievable and Partial is set; only when
// both fail is a *ComparisonError returned, alongside the marked result.
func (c *Comparator) Compare(records []domain.DebtRecord, extraMonthlyBudget float64) (domain.ComparisonResult, error) {
	cmp, err := c.Run(records, extraMonthlyBudget)
	return cmp.Result, err
}

func (c *Comparator) Run(records []domain.DebtRecord, extraMonthlyBudget float64) (Comparison, error) {
	snap, err := Normalize(records, extraMonthlyBudget)
	if err != nil {
		return Comparison{}, err
	}
	return c.RunSnapshot(snap)
}

// RunSnapshot runs snowball and avalanche concurrently, each on its own
// clone of snap. Neither run can cancel the other.
func (c *Comparator) RunSnapshot(snap Snapshot) (Comparison, error) {
	policies := [2]AllocationPolicy{Snowball, Avalanche}
	var (
		sims [2]Simulation
		errs [2]error
		g    errgroup.Group
	)
	for i, policy := range policies {
		i, policy := i, policy // per-iteration copies; go directive is 1.21
		run := snap.Clone()
		g.Go(func() error {
			sims[i], errs[i] = c.runner.Run(run, policy)
			return nil
		})
	}
	_ = g.Wait()

	cmp := Comparison{
		Snowball:  sims[0],
		Avalanche: sims[1],
		Result: domain.ComparisonResult{
			Snowball:  sims[0].Result,
			Avalanche: sims[1].Result,
			Partial:   (errs[0] == nil) != (errs[1] == nil),
		},
	}
	if errs[0] != nil && errs[1] != nil {
		return cmp, &ComparisonError{Snowball: errs[0], Avalanche: errs[1]}
	}
	return cmp, nil
}
