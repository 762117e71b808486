package service

import "time"

const (
	MaxAccountsPerRequest = 50
	MaxAccountBalance     = 100_000_000.0 // 100 million
	MaxAPR                = 10.0          // 1000% annual, as a decimal fraction
	MaxMonthlyBudget      = 1_000_000_000.0

	// MaxBudgetCandidates bounds the budget sweep to keep a single request cheap.
	MaxBudgetCandidates = 120

	// DefaultCacheTTL is how long a cached simulation report stays valid.
	DefaultCacheTTL = 15 * time.Minute
)
