package payoff

import "repayment-planner/domain"

type State int

const (
	Running State = iota
	Converged
	NonConvergent
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case NonConvergent:
		return "non_convergent"
	}
	return "unknown"
}

type MonthPayment struct {
	DebtID   string
	Interest float64
	Amount   float64
	Balance  float64
}

// Month is one simulated month. Paid plus Unallocated equals the monthly budget.
type Month struct {
	Index       int
	Payments    []MonthPayment
	Interest    float64
	Paid        float64
	Unallocated float64
}

type Simulation struct {
	Strategy domain.Strategy
	State    State
	Result   domain.SimulationResult
	Months   []Month
}

// Runner drives the month loop for one allocation policy. The zero value
// uses MaxSimulationMonths and does not record a schedule.
type Runner struct {
	MaxMonths    int
	KeepSchedule bool
}

func (r Runner) limit() int {
	if r.MaxMonths <= 0 {
		return MaxSimulationMonths
	}
	return r.MaxMonths
}

// Run simulates snapshot under policy until every balance is zero or the
// safety bound is exceeded. The snapshot is copied; the caller's is untouched.
func (r Runner) Run(snapshot Snapshot, policy AllocationPolicy) (Simulation, error) {
	snap := snapshot.Clone()
	budget := snap.MonthlyBudget()
	limit := r.limit()

	sim := Simulation{Strategy: policy.Strategy(), State: Running}
	var totalInterest float64
	months := 0

	for sim.State == Running {
		if snap.allPaid() {
			sim.State = Converged
			break
		}
		if months >= limit {
			sim.State = NonConvergent
			break
		}

		alloc := Allocate(policy, snap.Debts, budget)
		months++

		month := Month{Index: months, Unallocated: alloc.Unallocated}
		for i := range snap.Debts {
			d := &snap.Debts[i]
			if d.Paid() {
				continue
			}
			step := Step(*d, alloc.Payments[i])
			d.Balance = step.NewBalance
			totalInterest += step.InterestAccrued
			month.Interest += step.InterestAccrued
			month.Paid += step.AmountPaid
			if r.KeepSchedule {
				month.Payments = append(month.Payments, MonthPayment{
					DebtID:   d.ID,
					Interest: step.InterestAccrued,
					Amount:   step.AmountPaid,
					Balance:  step.NewBalance,
				})
			}
		}
		if r.KeepSchedule {
			sim.Months = append(sim.Months, month)
		}
	}

	sim.Result = domain.SimulationResult{
		TotalMonthlyPayment: roundCents(budget),
	}
	if sim.State == NonConvergent {
		err := &SimulationError{
			Strategy:         sim.Strategy,
			Months:           limit,
			RemainingBalance: snap.remainingBalance(),
		}
		sim.Result.Status = domain.StatusNotAchievable
		sim.Result.Error = err.Error()
		return sim, err
	}

	sim.Result.Status = domain.StatusConverged
	sim.Result.TotalMonths = months
	sim.Result.TotalInterestPaid = roundCents(totalInterest)
	return sim, nil
}
