package domain

// InterestType selects how a debt accrues interest each month.
type InterestType string

const (
	InterestReducing InterestType = "reducing" // on the declining balance
	InterestFlat     InterestType = "flat"     // on the original principal
)

// Strategy names a payoff ordering.
type Strategy string

const (
	Snowball  Strategy = "snowball"  // smallest balance first
	Avalanche Strategy = "avalanche" // highest rate first
)

// DebtRecord is a raw debt as loaded from storage or posted by a client.
type DebtRecord struct {
	ID                string       `json:"id"`
	CurrentBalance    float64      `json:"currentBalance"`
	InterestRate      float64      `json:"interestRate"` // annual, percent
	InterestType      InterestType `json:"interestType"`
	MonthlyPayment    float64      `json:"monthlyPayment"`
	AdditionalCharges float64      `json:"additionalCharges"`
}

type RepaymentInput struct {
	Debts              []DebtRecord `json:"debts"`
	ExtraMonthlyBudget float64      `json:"extraMonthlyBudget"`
	IncludeSchedule    bool         `json:"includeSchedule,omitempty"`
}
