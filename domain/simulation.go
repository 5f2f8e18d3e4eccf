package domain

// SimulationStatus reports whether a strategy run reached a zero balance.
type SimulationStatus string

const (
	StatusConverged     SimulationStatus = "converged"
	StatusNotAchievable SimulationStatus = "not_achievable"
)

type SimulationResult struct {
	TotalMonths         int              `json:"totalMonths"`
	TotalInterestPaid   float64          `json:"totalInterestPaid"`
	TotalMonthlyPayment float64          `json:"totalMonthlyPayment"`
	Status              SimulationStatus `json:"status"`
	Error               string           `json:"error,omitempty"`
}

// Achievable reports whether the strategy paid every debt within the safety bound.
func (r SimulationResult) Achievable() bool {
	return r.Status == StatusConverged
}

// ComparisonResult pairs both strategies run against the same snapshot.
// Partial is set when exactly one side is not achievable.
type ComparisonResult struct {
	Snowball  SimulationResult `json:"snowball"`
	Avalanche SimulationResult `json:"avalanche"`
	Partial   bool             `json:"partial,omitempty"`
}

type DebtPayment struct {
	DebtID   string  `json:"debtId"`
	Interest float64 `json:"interest"`
	Payment  float64 `json:"payment"`
	Balance  float64 `json:"remainingBalance"`
}

type MonthlyPlan struct {
	Month       int           `json:"month"`
	Payments    []DebtPayment `json:"payments"`
	Interest    float64       `json:"interest"`
	TotalPaid   float64       `json:"totalPaid"`
	Unallocated float64       `json:"unallocated,omitempty"`
}

type Schedules struct {
	Snowball  []MonthlyPlan `json:"snowball,omitempty"`
	Avalanche []MonthlyPlan `json:"avalanche,omitempty"`
}

// RepaymentComparison is the payload served under
// data.repaymentComparisonResult.
type RepaymentComparison struct {
	ComparisonResult
	Schedules *Schedules `json:"schedules,omitempty"`
}
