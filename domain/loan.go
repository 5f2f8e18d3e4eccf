package domain

type LoanInput struct {
	Amount       float64      `json:"amount"`
	InterestRate float64      `json:"interestRate"`
	InterestType InterestType `json:"interestType,omitempty"`
	TermMonths   int          `json:"termMonths"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	Months         int     `json:"months"`
}
