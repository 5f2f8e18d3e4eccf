package payoff

import "repayment-planner/domain"

// InterestMethod computes one month of interest for a debt. It is resolved
// once per debt during normalization.
type InterestMethod interface {
	Type() domain.InterestType
	Accrue(d Debt) float64
}

type reducingInterest struct{}

func (reducingInterest) Type() domain.InterestType { return domain.InterestReducing }

func (reducingInterest) Accrue(d Debt) float64 {
	return d.Balance * d.PeriodicRate()
}

// flatInterest charges on the original principal for as long as the debt is open.
type flatInterest struct{}

func (flatInterest) Type() domain.InterestType { return domain.InterestFlat }

func (flatInterest) Accrue(d Debt) float64 {
	return d.Principal * d.PeriodicRate()
}

func interestMethodFor(t domain.InterestType) (InterestMethod, bool) {
	switch t {
	case domain.InterestReducing, "":
		return reducingInterest{}, true
	case domain.InterestFlat:
		return flatInterest{}, true
	}
	return nil, false
}

// Debt is a normalized, simulation-ready debt. Principal is the balance at
// simulation start and never changes; Balance is advanced month by month.
type Debt struct {
	ID                string
	Principal         float64
	Balance           float64
	InterestRate      float64 // annual, percent
	Interest          InterestMethod
	MonthlyPayment    float64
	AdditionalCharges float64
}

// PeriodicRate is the monthly rate as a fraction.
func (d Debt) PeriodicRate() float64 {
	return d.InterestRate / 100 / 12
}

// RequiredPayment is the contractual amount due each month.
func (d Debt) RequiredPayment() float64 {
	return d.MonthlyPayment + d.AdditionalCharges
}

func (d Debt) Paid() bool {
	return d.Balance == 0
}

// accrue returns this month's interest; a paid debt accrues nothing.
func (d Debt) accrue() float64 {
	if d.Paid() {
		return 0
	}
	return d.Interest.Accrue(d)
}

// Snapshot is the normalized input to one simulation.
type Snapshot struct {
	Debts       []Debt
	ExtraBudget float64
}

// Clone returns a copy that shares no mutable state with s.
func (s Snapshot) Clone() Snapshot {
	debts := make([]Debt, len(s.Debts))
	copy(debts, s.Debts)
	return Snapshot{Debts: debts, ExtraBudget: s.ExtraBudget}
}

// MonthlyBudget is every required payment plus the extra budget. It is fixed
// for the whole simulation; payments freed by paid-off debts roll over.
func (s Snapshot) MonthlyBudget() float64 {
	if len(s.Debts) == 0 {
		return 0
	}
	total := s.ExtraBudget
	for _, d := range s.Debts {
		total += d.RequiredPayment()
	}
	return total
}

func (s Snapshot) remainingBalance() float64 {
	var total float64
	for _, d := range s.Debts {
		total += d.Balance
	}
	return total
}

func (s Snapshot) allPaid() bool {
	for _, d := range s.Debts {
		if !d.Paid() {
			return false
		}
	}
	return true
}
