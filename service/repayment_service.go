package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"repayment-planner/domain"
	"repayment-planner/logging"
	"repayment-planner/payoff"
	"repayment-planner/repository"
)

// RepaymentService compares snowball and avalanche payoff plans and caches
// the comparison for identical inputs.
type RepaymentService struct {
	comparator *payoff.Comparator
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	logger     *logging.Logger
}

func NewRepaymentService(
	comparator *payoff.Comparator,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *logging.Logger,
) *RepaymentService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &RepaymentService{
		comparator: comparator,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger.WithComponent(logging.ComponentRepayment),
	}
}

// Compare runs both strategies. A *payoff.ValidationError yields no result;
// a *payoff.ComparisonError comes back together with the comparison so the
// caller can still show both sides as not achievable.
func (s *RepaymentService) Compare(
	ctx context.Context,
	input domain.RepaymentInput,
) (domain.RepaymentComparison, error) {

	if input.IncludeSchedule {
		return s.compareWithSchedule(ctx, input)
	}

	key, keyErr := cacheKey(input)
	if keyErr == nil {
		if cached, ok := s.lookup(ctx, key); ok {
			return cached, nil
		}
	}

	result, err := s.comparator.Compare(input.Debts, input.ExtraMonthlyBudget)
	if invalid := validationError(err); invalid != nil {
		s.logger.InfoContext(ctx, "rejected repayment input", "error", invalid)
		return domain.RepaymentComparison{}, invalid
	}
	comparison := domain.RepaymentComparison{ComparisonResult: result}
	s.logOutcome(ctx, result, err)
	if err != nil {
		return comparison, fmt.Errorf("comparing strategies: %w", err)
	}

	if keyErr == nil {
		s.store(ctx, key, comparison)
	}
	return comparison, nil
}

func (s *RepaymentService) compareWithSchedule(
	ctx context.Context,
	input domain.RepaymentInput,
) (domain.RepaymentComparison, error) {

	cmp, err := s.comparator.WithSchedule().Run(input.Debts, input.ExtraMonthlyBudget)
	if invalid := validationError(err); invalid != nil {
		s.logger.InfoContext(ctx, "rejected repayment input", "error", invalid)
		return domain.RepaymentComparison{}, invalid
	}
	s.logOutcome(ctx, cmp.Result, err)

	comparison := domain.RepaymentComparison{
		ComparisonResult: cmp.Result,
		Schedules: &domain.Schedules{
			Snowball:  scheduleOf(cmp.Snowball),
			Avalanche: scheduleOf(cmp.Avalanche),
		},
	}
	if err != nil {
		return comparison, fmt.Errorf("comparing strategies: %w", err)
	}
	return comparison, nil
}

func (s *RepaymentService) lookup(ctx context.Context, key string) (domain.RepaymentComparison, bool) {
	if s.cache == nil {
		return domain.RepaymentComparison{}, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache lookup failed", "key", key, "error", err)
		return domain.RepaymentComparison{}, false
	}
	if !ok {
		return domain.RepaymentComparison{}, false
	}

	var cached domain.RepaymentComparison
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable cache entry", "key", key, "error", err)
		return domain.RepaymentComparison{}, false
	}
	s.logger.DebugContext(ctx, "repayment comparison served from cache", "key", key)
	return cached, true
}

func (s *RepaymentService) store(ctx context.Context, key string, comparison domain.RepaymentComparison) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(comparison)
	if err != nil {
		s.logger.WarnContext(ctx, "could not encode comparison for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "cache store failed", "key", key, "error", err)
	}
}

func (s *RepaymentService) logOutcome(ctx context.Context, result domain.ComparisonResult, err error) {
	attrs := []any{
		"snowball_status", result.Snowball.Status,
		"snowball_months", result.Snowball.TotalMonths,
		"avalanche_status", result.Avalanche.Status,
		"avalanche_months", result.Avalanche.TotalMonths,
		"monthly_payment", result.Snowball.TotalMonthlyPayment,
	}
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "no strategy pays off the debts", append(attrs, "error", err)...)
	case result.Partial:
		s.logger.InfoContext(ctx, "repayment comparison partially achievable", attrs...)
	default:
		s.logger.InfoContext(ctx, "repayment comparison completed", attrs...)
	}
}

func validationError(err error) *payoff.ValidationError {
	var verr *payoff.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return nil
}

// cacheKey hashes the input the comparison depends on. Schedules are never
// cached, so IncludeSchedule is left out.
func cacheKey(input domain.RepaymentInput) (string, error) {
	raw, err := json.Marshal(struct {
		Debts              []domain.DebtRecord `json:"debts"`
		ExtraMonthlyBudget float64             `json:"extraMonthlyBudget"`
	}{input.Debts, input.ExtraMonthlyBudget})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, xxhash.Sum64(raw)), nil
}

// scheduleOf omits the plan of a strategy that never reaches zero.
func scheduleOf(sim payoff.Simulation) []domain.MonthlyPlan {
	if sim.State != payoff.Converged {
		return nil
	}
	return toMonthlyPlans(sim.Months)
}

func toMonthlyPlans(months []payoff.Month) []domain.MonthlyPlan {
	plans := make([]domain.MonthlyPlan, 0, len(months))
	for _, m := range months {
		payments := make([]domain.DebtPayment, 0, len(m.Payments))
		for _, p := range m.Payments {
			payments = append(payments, domain.DebtPayment{
				DebtID:   p.DebtID,
				Interest: roundTo2Decimals(p.Interest),
				Payment:  roundTo2Decimals(p.Amount),
				Balance:  roundTo2Decimals(p.Balance),
			})
		}
		plans = append(plans, domain.MonthlyPlan{
			Month:       m.Index,
			Payments:    payments,
			Interest:    roundTo2Decimals(m.Interest),
			TotalPaid:   roundTo2Decimals(m.Paid),
			Unallocated: roundTo2Decimals(m.Unallocated),
		})
	}
	return plans
}
