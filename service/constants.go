package service

import (
	"time"

	"repayment-planner/payoff"
)

const (
	MaxLoanAmount   = payoff.MaxDebtAmount   // 100 millones
	MaxInterestRate = payoff.MaxInterestRate // 1000% anual
	MaxTermMonths   = 600                    // 50 años
	MinTermMonths   = 1

	DefaultCacheTTL = 10 * time.Minute
	cacheKeyPrefix  = "repayment:"
)
