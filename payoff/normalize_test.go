package payoff

import (
	"errors"
	"math"
	"testing"

	"repayment-planner/domain"
)

func TestNormalize_DropsPaidOffDebts(t *testing.T) {
	snap, err := Normalize([]domain.DebtRecord{
		{ID: "1", CurrentBalance: 0, InterestRate: 10, MonthlyPayment: 50},
		{ID: "2", CurrentBalance: 300, InterestRate: 10, MonthlyPayment: 50},
	}, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Debts) != 1 || snap.Debts[0].ID != "2" {
		t.Fatalf("expected only debt 2, got %+v", snap.Debts)
	}
	if snap.MonthlyBudget() != 75 {
		t.Errorf("expected budget 75, got %.2f", snap.MonthlyBudget())
	}
}

func TestNormalize_ResolvesInterestMethod(t *testing.T) {
	snap, err := Normalize([]domain.DebtRecord{
		{ID: "a", CurrentBalance: 100, InterestRate: 12},
		{ID: "b", CurrentBalance: 100, InterestRate: 12, InterestType: domain.InterestFlat},
		{ID: "c", CurrentBalance: 100, InterestRate: 12, InterestType: domain.InterestReducing},
	}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.InterestType{domain.InterestReducing, domain.InterestFlat, domain.InterestReducing}
	for i, d := range snap.Debts {
		if d.Interest.Type() != want[i] {
			t.Errorf("debt %s: expected %s, got %s", d.ID, want[i], d.Interest.Type())
		}
		if d.Principal != d.Balance {
			t.Errorf("debt %s: principal %.2f should equal starting balance %.2f", d.ID, d.Principal, d.Balance)
		}
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	snap, err := Normalize(nil, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Debts) != 0 {
		t.Errorf("expected no debts, got %d", len(snap.Debts))
	}
	if snap.MonthlyBudget() != 0 {
		t.Errorf("expected zero budget without debts, got %.2f", snap.MonthlyBudget())
	}
}

func TestNormalize_RejectsInvalidRecords(t *testing.T) {
	valid := domain.DebtRecord{ID: "ok", CurrentBalance: 100, InterestRate: 5, MonthlyPayment: 10}

	tests := []struct {
		name   string
		record domain.DebtRecord
		field  string
	}{
		{"negative balance", domain.DebtRecord{ID: "x", CurrentBalance: -1}, "currentBalance"},
		{"balance too large", domain.DebtRecord{ID: "x", CurrentBalance: MaxDebtAmount + 1}, "currentBalance"},
		{"nan balance", domain.DebtRecord{ID: "x", CurrentBalance: math.NaN()}, "currentBalance"},
		{"negative rate", domain.DebtRecord{ID: "x", CurrentBalance: 1, InterestRate: -0.5}, "interestRate"},
		{"rate too large", domain.DebtRecord{ID: "x", CurrentBalance: 1, InterestRate: MaxInterestRate + 1}, "interestRate"},
		{"negative payment", domain.DebtRecord{ID: "x", CurrentBalance: 1, MonthlyPayment: -10}, "monthlyPayment"},
		{"infinite payment", domain.DebtRecord{ID: "x", CurrentBalance: 1, MonthlyPayment: math.Inf(1)}, "monthlyPayment"},
		{"negative charges", domain.DebtRecord{ID: "x", CurrentBalance: 1, AdditionalCharges: -2}, "additionalCharges"},
		{"unknown interest type", domain.DebtRecord{ID: "x", CurrentBalance: 1, InterestType: "compound"}, "interestType"},
		{"empty id", domain.DebtRecord{ID: "  ", CurrentBalance: 1}, "id"},
		{"duplicate id", domain.DebtRecord{ID: "ok", CurrentBalance: 1}, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]domain.DebtRecord{valid, tt.record}, 0)
			if err == nil {
				t.Fatalf("expected validation error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Index != 1 {
				t.Errorf("expected offending index 1, got %d", verr.Index)
			}
			if verr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestNormalize_RejectsInvalidExtraBudget(t *testing.T) {
	for _, extra := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := Normalize([]domain.DebtRecord{{ID: "1", CurrentBalance: 10}}, extra)

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("extra %v: expected *ValidationError, got %v", extra, err)
		}
		if verr.Index != -1 || verr.Field != "extraMonthlyBudget" {
			t.Errorf("extra %v: unexpected error %+v", extra, verr)
		}
	}
}

func TestNormalize_RejectsTooManyDebts(t *testing.T) {
	records := make([]domain.DebtRecord, MaxDebtsPerRequest+1)
	for i := range records {
		records[i] = domain.DebtRecord{ID: string(rune('A' + i)), CurrentBalance: 10}
	}

	_, err := Normalize(records, 0)

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "debts" {
		t.Fatalf("expected debts validation error, got %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Index: 2, DebtID: "card", Field: "interestRate", Reason: "must be a non-negative finite rate"}
	want := `debt "card" (index 2): invalid interestRate: must be a non-negative finite rate`
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
