package service

import (
	"errors"
	"testing"

	"repayment-planner/domain"
	"repayment-planner/repository"
)

type MockLoanRepository struct {
	SaveCalled bool
	ForceError bool
}

func (m *MockLoanRepository) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	return nil
}

func (m *MockLoanRepository) Recent(limit int) []repository.LoanCalculation {
	return nil
}

func TestCalculateLoan_WithInterest(t *testing.T) {

	mockRepo := &MockLoanRepository{}
	service := NewLoanService(mockRepo)

	input := domain.LoanInput{
		Amount:       1200,
		InterestRate: 12,
		TermMonths:   12,
	}

	result, err := service.CalculateLoan(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 106.62 {
		t.Errorf("expected cuota 106.62, got %.2f", result.MonthlyPayment)
	}
	if result.Months != 12 {
		t.Errorf("expected 12 months, got %d", result.Months)
	}
	if result.TotalInterest <= 79 || result.TotalInterest >= 80 {
		t.Errorf("expected interest around 79.4, got %.2f", result.TotalInterest)
	}
	if result.TotalPayment != roundTo2Decimals(1200+result.TotalInterest) {
		t.Errorf("expected total payment to be principal plus interest, got %.2f", result.TotalPayment)
	}

	if !mockRepo.SaveCalled {
		t.Errorf("expected repository Save to be called")
	}
}

func TestCalculateLoan_ZeroInterest(t *testing.T) {

	mockRepo := &MockLoanRepository{}
	service := NewLoanService(mockRepo)

	input := domain.LoanInput{
		Amount:       1200,
		InterestRate: 0,
		TermMonths:   12,
	}

	result, err := service.CalculateLoan(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := 100.0
	if result.MonthlyPayment != expected {
		t.Errorf("expected %.2f, got %.2f", expected, result.MonthlyPayment)
	}
	if result.TotalInterest != 0 || result.TotalPayment != 1200 {
		t.Errorf("expected no interest, got %+v", result)
	}
}

func TestCalculateLoan_FlatInterest(t *testing.T) {

	service := NewLoanService(&MockLoanRepository{})

	input := domain.LoanInput{
		Amount:       1200,
		InterestRate: 12,
		InterestType: domain.InterestFlat,
		TermMonths:   12,
	}

	result, err := service.CalculateLoan(input)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.MonthlyPayment != 112 {
		t.Errorf("expected cuota 112.00, got %.2f", result.MonthlyPayment)
	}
	if result.TotalInterest != 144 {
		t.Errorf("expected flat interest 144.00, got %.2f", result.TotalInterest)
	}
}

func TestCalculateLoan_SaveErrorIsNotFatal(t *testing.T) {

	mockRepo := &MockLoanRepository{ForceError: true}
	service := NewLoanService(mockRepo)

	_, err := service.CalculateLoan(domain.LoanInput{Amount: 500, InterestRate: 5, TermMonths: 6})

	if err != nil {
		t.Errorf("expected save failure to be ignored, got %v", err)
	}
}

func TestCalculateLoan_InvalidInput(t *testing.T) {

	tests := []struct {
		name  string
		input domain.LoanInput
	}{
		{"zero amount", domain.LoanInput{Amount: 0, InterestRate: 10, TermMonths: 12}},
		{"amount too large", domain.LoanInput{Amount: MaxLoanAmount + 1, InterestRate: 10, TermMonths: 12}},
		{"negative rate", domain.LoanInput{Amount: 1000, InterestRate: -1, TermMonths: 12}},
		{"zero term", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: 0}},
		{"term too long", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: MaxTermMonths + 1}},
		{"unknown interest type", domain.LoanInput{Amount: 1000, InterestRate: 10, TermMonths: 12, InterestType: "balloon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockLoanRepository{}
			service := NewLoanService(mockRepo)

			_, err := service.CalculateLoan(tt.input)

			if err == nil {
				t.Errorf("expected error")
			}
			if mockRepo.SaveCalled {
				t.Errorf("repository Save should NOT be called")
			}
		})
	}
}

func TestAmortize_ResidueBelowACentSettlesAfterTerm(t *testing.T) {
	input := domain.LoanInput{Amount: 100000, InterestRate: 0, TermMonths: 600}

	// just under 100000/600, as a payment rounded a hair too low would be
	sim, err := amortize(input, 166.6666666)
	if err != nil {
		t.Fatalf("expected the residue to be settled, got %v", err)
	}
	if sim.Result.TotalMonths != 601 {
		t.Errorf("expected one extra month for the residue, got %d", sim.Result.TotalMonths)
	}
}

func TestCalculateLoan_LongTermStaysWithinTerm(t *testing.T) {
	service := NewLoanService(&MockLoanRepository{})

	result, err := service.CalculateLoan(domain.LoanInput{Amount: 100000, InterestRate: 7, TermMonths: 600})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Months != 600 {
		t.Errorf("expected 600 months, got %d", result.Months)
	}
}
