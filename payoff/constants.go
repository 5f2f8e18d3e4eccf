package payoff

const (
	MaxSimulationMonths = 1200          // 100 years
	MaxDebtsPerRequest  = 50            // per simulation batch
	MaxDebtAmount       = 100_000_000.0 // 100 million
	MaxInterestRate     = 1000.0        // 1000% annual
	BalanceEpsilon      = 1e-9          // residue snapped to zero after a payment
)
