package payoff

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"repayment-planner/domain"
)

// AllocationPolicy decides which unpaid debt receives leftover budget first.
type AllocationPolicy interface {
	Strategy() domain.Strategy
	// Less reports whether a takes priority over b.
	Less(a, b Debt) bool
}

type snowballPolicy struct{}

func (snowballPolicy) Strategy() domain.Strategy { return domain.Snowball }

func (snowballPolicy) Less(a, b Debt) bool {
	if a.Balance != b.Balance {
		return a.Balance < b.Balance
	}
	return idLess(a.ID, b.ID)
}

type avalanchePolicy struct{}

func (avalanchePolicy) Strategy() domain.Strategy { return domain.Avalanche }

func (avalanchePolicy) Less(a, b Debt) bool {
	if a.InterestRate != b.InterestRate {
		return a.InterestRate > b.InterestRate
	}
	return idLess(a.ID, b.ID)
}

var (
	Snowball  AllocationPolicy = snowballPolicy{}
	Avalanche AllocationPolicy = avalanchePolicy{}
)

func PolicyFor(strategy domain.Strategy) (AllocationPolicy, error) {
	switch strategy {
	case domain.Snowball:
		return Snowball, nil
	case domain.Avalanche:
		return Avalanche, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", strategy)
}

// idLess orders integer ids numerically ahead of every other id; the rest
// compare as strings. Equal integers with different spellings ("01", "1")
// fall back to the string form so the order stays total.
func idLess(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if ai != bi {
			return ai < bi
		}
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

// Allocation is one month of payments, index-aligned with the debts given
// to Allocate.
type Allocation struct {
	Payments    []float64
	Consumed    float64
	Unallocated float64
}

// Allocate distributes budget across debts for one month. Every unpaid debt
// first receives its required payment, capped at what it owes after interest;
// whatever is left goes to debts in priority order until it runs out.
func Allocate(policy AllocationPolicy, debts []Debt, budget float64) Allocation {
	if budget < 0 || math.IsNaN(budget) {
		budget = 0
	}
	payments := make([]float64, len(debts))
	owed := make([]float64, len(debts))

	order := make([]int, 0, len(debts))
	for i, d := range debts {
		if d.Paid() {
			continue
		}
		owed[i] = d.Balance + d.accrue()
		order = append(order, i)
	}
	sort.SliceStable(order, func(x, y int) bool {
		return policy.Less(debts[order[x]], debts[order[y]])
	})

	remaining := budget
	for _, i := range order {
		p := math.Min(math.Min(debts[i].RequiredPayment(), owed[i]), remaining)
		payments[i] = p
		remaining -= p
	}

	// rollover
	for _, i := range order {
		if remaining <= 0 {
			break
		}
		gap := owed[i] - payments[i]
		if gap <= 0 {
			continue
		}
		extra := math.Min(gap, remaining)
		payments[i] += extra
		remaining -= extra
	}

	var consumed float64
	for _, p := range payments {
		consumed += p
	}
	return Allocation{
		Payments:    payments,
		Consumed:    consumed,
		Unallocated: math.Max(0, remaining),
	}
}
