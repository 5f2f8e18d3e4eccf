package payoff

import (
	"fmt"
	"math"
	"strings"

	"repayment-planner/domain"
)

// Normalize validates raw records and converts them into a Snapshot.
// Records with a zero balance are already paid off and are dropped.
func Normalize(records []domain.DebtRecord, extraMonthlyBudget float64) (Snapshot, error) {
	if !validAmount(extraMonthlyBudget) {
		return Snapshot{}, &ValidationError{
			Index:  -1,
			Field:  "extraMonthlyBudget",
			Reason: "must be a non-negative finite amount",
		}
	}
	if len(records) > MaxDebtsPerRequest {
		return Snapshot{}, &ValidationError{
			Index:  -1,
			Field:  "debts",
			Reason: fmt.Sprintf("at most %d debts per simulation", MaxDebtsPerRequest),
		}
	}

	seen := make(map[string]bool, len(records))
	debts := make([]Debt, 0, len(records))
	for i, rec := range records {
		d, err := normalizeRecord(i, rec)
		if err != nil {
			return Snapshot{}, err
		}
		if seen[d.ID] {
			return Snapshot{}, &ValidationError{Index: i, DebtID: d.ID, Field: "id", Reason: "duplicate id"}
		}
		seen[d.ID] = true
		if d.Balance == 0 {
			continue
		}
		debts = append(debts, d)
	}

	return Snapshot{Debts: debts, ExtraBudget: extraMonthlyBudget}, nil
}

func normalizeRecord(index int, rec domain.DebtRecord) (Debt, error) {
	id := strings.TrimSpace(rec.ID)
	invalid := func(field, reason string) error {
		return &ValidationError{Index: index, DebtID: id, Field: field, Reason: reason}
	}

	if id == "" {
		return Debt{}, invalid("id", "must not be empty")
	}
	if !validAmount(rec.CurrentBalance) {
		return Debt{}, invalid("currentBalance", "must be a non-negative finite amount")
	}
	if rec.CurrentBalance > MaxDebtAmount {
		return Debt{}, invalid("currentBalance", fmt.Sprintf("exceeds the maximum of %.2f", MaxDebtAmount))
	}
	if !validAmount(rec.InterestRate) {
		return Debt{}, invalid("interestRate", "must be a non-negative finite rate")
	}
	if rec.InterestRate > MaxInterestRate {
		return Debt{}, invalid("interestRate", fmt.Sprintf("exceeds the maximum of %.2f%%", MaxInterestRate))
	}
	if !validAmount(rec.MonthlyPayment) {
		return Debt{}, invalid("monthlyPayment", "must be a non-negative finite amount")
	}
	if !validAmount(rec.AdditionalCharges) {
		return Debt{}, invalid("additionalCharges", "must be a non-negative finite amount")
	}
	method, ok := interestMethodFor(rec.InterestType)
	if !ok {
		return Debt{}, invalid("interestType", fmt.Sprintf("unknown interest type %q", rec.InterestType))
	}

	return Debt{
		ID:                id,
		Principal:         rec.CurrentBalance,
		Balance:           rec.CurrentBalance,
		InterestRate:      rec.InterestRate,
		Interest:          method,
		MonthlyPayment:    rec.MonthlyPayment,
		AdditionalCharges: rec.AdditionalCharges,
	}, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
