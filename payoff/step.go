package payoff

import "math"

type StepResult struct {
	InterestAccrued float64
	NewBalance      float64
	AmountPaid      float64
}

// Step advances d by one month: interest accrues first, then payment is
// applied against balance plus interest. Overpayment is never credited.
func Step(d Debt, payment float64) StepResult {
	if payment < 0 || math.IsNaN(payment) {
		payment = 0
	}
	interest := d.accrue()
	withInterest := d.Balance + interest

	newBalance := math.Max(0, withInterest-payment)
	if newBalance < BalanceEpsilon {
		newBalance = 0
	}
	return StepResult{
		InterestAccrued: interest,
		NewBalance:      newBalance,
		AmountPaid:      math.Min(payment, withInterest),
	}
}
