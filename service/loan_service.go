package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"repayment-planner/domain"
	"repayment-planner/logging"
	"repayment-planner/payoff"
	"repayment-planner/repository"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// ceilToCents rounds up so a fixed payment never leaves a residue after the
// term. Float noise below a nano-unit does not count as an extra cent.
func ceilToCents(value float64) float64 {
	return decimal.NewFromFloat(value - 1e-9).RoundCeil(2).InexactFloat64()
}

type LoanService struct {
	repo   repository.LoanRepository
	logger *logging.Logger
}

// NewLoanService creates a new LoanService with the given repository.
func NewLoanService(repo repository.LoanRepository) *LoanService {
	return &LoanService{repo: repo, logger: logging.Discard()}
}

// WithLogger replaces the service logger.
func (s *LoanService) WithLogger(logger *logging.Logger) *LoanService {
	s.logger = logger.WithComponent(logging.ComponentLoan)
	return s
}

// CalculateLoan computes the fixed monthly payment for the loan and
// amortizes it month by month to obtain the real totals.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if input.Amount <= 0 {
		return domain.LoanResult{}, errors.New("invalid amount")
	}
	if input.Amount > MaxLoanAmount {
		return domain.LoanResult{}, fmt.Errorf("amount exceeds the maximum of $%.2f", MaxLoanAmount)
	}
	if input.InterestRate < 0 {
		return domain.LoanResult{}, errors.New("invalid interest rate")
	}
	if input.InterestRate > MaxInterestRate {
		return domain.LoanResult{}, fmt.Errorf("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return domain.LoanResult{}, errors.New("invalid term")
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, fmt.Errorf("term exceeds the maximum of %d months", MaxTermMonths)
	}

	monthlyRate := (input.InterestRate / 100) / 12
	n := float64(input.TermMonths)

	var cuota float64
	switch input.InterestType {
	case domain.InterestFlat:
		cuota = input.Amount/n + input.Amount*monthlyRate
	case domain.InterestReducing, "":
		if input.InterestRate == 0 {
			cuota = input.Amount / n
		} else {
			cuota = input.Amount * (monthlyRate /
				(1 - math.Pow(1+monthlyRate, -n)))
		}
	default:
		return domain.LoanResult{}, fmt.Errorf("unknown interest type %q", input.InterestType)
	}
	cuota = ceilToCents(cuota)

	sim, err := amortize(input, cuota)
	if err != nil {
		return domain.LoanResult{}, err
	}

	result := domain.LoanResult{
		MonthlyPayment: cuota,
		TotalPayment:   roundTo2Decimals(input.Amount + sim.Result.TotalInterestPaid),
		TotalInterest:  sim.Result.TotalInterestPaid,
		Months:         sim.Result.TotalMonths,
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(input, result); err != nil {
		s.logger.Warn("failed to save loan calculation", "error", err)
	}

	return result, nil
}

// amortize pays the loan down with a fixed payment. One month past the term
// is allowed so a payment rounded a hair below the exact annuity still
// settles its residue instead of failing.
func amortize(input domain.LoanInput, payment float64) (payoff.Simulation, error) {
	snap, err := payoff.Normalize([]domain.DebtRecord{{
		ID:             "loan",
		CurrentBalance: input.Amount,
		InterestRate:   input.InterestRate,
		InterestType:   input.InterestType,
		MonthlyPayment: payment,
	}}, 0)
	if err != nil {
		return payoff.Simulation{}, err
	}
	sim, err := payoff.Runner{MaxMonths: input.TermMonths + 1}.Run(snap, payoff.Avalanche)
	if err != nil {
		return payoff.Simulation{}, fmt.Errorf("amortizing loan: %w", err)
	}
	return sim, nil
}
