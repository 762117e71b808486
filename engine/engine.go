// Package engine implements the multi-account debt amortization and payoff
// simulation. It is pure: no I/O, no shared state, the input is never
// mutated, and identical input always produces an identical result, so
// callers may invoke it concurrently with no locking.
package engine

import (
	"math"

	"debt-planner/domain"
)

const (
	// BalanceEpsilon is the threshold under which an account counts as paid
	// off and drops out of the strategy order.
	BalanceEpsilon = 0.01

	// MaxMonths caps the simulation at 50 years. It is an infinite-loop
	// guard against budgets that never outpace interest; hitting it yields
	// Outcome CapReached, which is a result, not an error.
	MaxMonths = 600
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Simulate projects, month by month, how the accounts are paid down under
// the given strategy until every balance reaches zero or MaxMonths is hit.
//
// Each month: the strategy order is fixed over the accounts still active,
// one month of interest accrues on every carried balance, minimums are paid
// in input order out of a pool of monthlyBudget plus the sum of all
// minimums, and the remaining pool waterfalls down the strategy order.
//
// Working balances stay at full float precision across months; ledger
// entries and the final total are rounded to cents independently, so
// rounding never compounds.
func Simulate(input domain.SimulationInput, strategy domain.Strategy) domain.SimulationResult {
	accounts := input.Accounts

	// Private working copy, keyed by input position.
	bal := make([]float64, len(accounts))
	for i, a := range accounts {
		bal[i] = a.Balance
	}

	var minSum float64
	for _, a := range accounts {
		minSum += a.MinPayment
	}

	anyActive := func() bool {
		for _, b := range bal {
			if b > BalanceEpsilon {
				return true
			}
		}
		return false
	}

	res := domain.SimulationResult{
		Strategy: strategy,
		Outcome:  domain.DebtFree,
		Steps:    []domain.MonthlyStep{},
	}
	var totalInterest float64 // full precision, rounded once at the end

	for month := 0; month < MaxMonths && anyActive(); month++ {
		// Strategy order is decided on the balances carried into the month.
		order := payoffOrder(accounts, bal, strategy)

		step := domain.MonthlyStep{
			MonthIndex:      month,
			Allocations:     make(map[string]float64, len(accounts)),
			Balances:        make(map[string]float64, len(accounts)),
			InterestAccrued: make(map[string]float64, len(accounts)),
		}

		// 1) Accrue one month of interest on every carried balance before
		// any payment. Paid-off accounts are recorded with zero so the
		// ledger keeps a stable key set.
		for i, a := range accounts {
			var interest float64
			if bal[i] > 0 {
				interest = bal[i] * a.APR / 12
				bal[i] += interest
				totalInterest += interest
			}
			step.InterestAccrued[a.ID] = round2(interest)
			step.Allocations[a.ID] = 0
		}

		// 2) Minimums first, in input order. Minimums are contractual and
		// never depend on the strategy.
		pool := input.MonthlyBudget + minSum
		for i, a := range accounts {
			pay := math.Min(bal[i], a.MinPayment)
			if pay <= 0 {
				continue
			}
			bal[i] -= pay
			pool -= pay
			step.Allocations[a.ID] += pay
		}

		// 3) Whatever is left flows down the strategy order, each account
		// paid at most its then-current balance.
		for _, i := range order {
			if pool <= 0 {
				break
			}
			pay := math.Min(bal[i], pool)
			if pay <= 0 {
				continue
			}
			bal[i] -= pay
			pool -= pay
			step.Allocations[accounts[i].ID] += pay
		}

		// 4) End-of-month snapshot, rounded for the ledger only.
		for i, a := range accounts {
			step.Balances[a.ID] = round2(bal[i])
			step.Allocations[a.ID] = round2(step.Allocations[a.ID])
		}
		res.Steps = append(res.Steps, step)
	}

	if anyActive() {
		res.Outcome = domain.CapReached
	}
	res.MonthsToDebtFree = len(res.Steps)
	res.TotalInterest = round2(totalInterest)
	return res
}
