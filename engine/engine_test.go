package engine

import (
	"math"
	"reflect"
	"testing"

	"debt-planner/domain"
)

func singleCardInput() domain.SimulationInput {
	return domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "visa", Balance: 1200.00, Limit: 5000, APR: 0.12, MinPayment: 50},
		},
		MonthlyBudget: 0,
	}
}

func twoCardInput() domain.SimulationInput {
	return domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "x", Balance: 500, Limit: 2000, APR: 0.25, MinPayment: 25},
			{ID: "y", Balance: 5000, Limit: 10000, APR: 0.10, MinPayment: 100},
		},
		MonthlyBudget: 200,
	}
}

func TestSimulate_SingleCardFirstMonth(t *testing.T) {
	res := Simulate(singleCardInput(), domain.Avalanche)

	if len(res.Steps) == 0 {
		t.Fatal("expected at least one step")
	}
	step := res.Steps[0]

	if step.MonthIndex != 0 {
		t.Errorf("monthIndex = %d, want 0", step.MonthIndex)
	}
	// 1200 * (0.12/12) = 12.00 interest, then min(1212, 50) = 50 paid.
	if step.InterestAccrued["visa"] != 12.00 {
		t.Errorf("interest = %v, want 12.00", step.InterestAccrued["visa"])
	}
	if step.Allocations["visa"] != 50.00 {
		t.Errorf("allocation = %v, want 50.00", step.Allocations["visa"])
	}
	if step.Balances["visa"] != 1162.00 {
		t.Errorf("end balance = %v, want 1162.00", step.Balances["visa"])
	}
}

func TestSimulate_SingleCardPaysOff(t *testing.T) {
	res := Simulate(singleCardInput(), domain.Avalanche)

	if res.Outcome != domain.DebtFree {
		t.Fatalf("outcome = %s, want debt_free", res.Outcome)
	}
	if res.MonthsToDebtFree != len(res.Steps) {
		t.Errorf("monthsToDebtFree = %d, steps = %d", res.MonthsToDebtFree, len(res.Steps))
	}
	last := res.Steps[len(res.Steps)-1]
	if last.Balances["visa"] > BalanceEpsilon {
		t.Errorf("final balance = %v, want <= %v", last.Balances["visa"], BalanceEpsilon)
	}
	if res.TotalInterest <= 0 {
		t.Errorf("totalInterest = %v, want > 0", res.TotalInterest)
	}
}

func TestSimulate_ZeroDebtShortCircuit(t *testing.T) {
	input := domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "a", Balance: 0, Limit: 1000, APR: 0.20, MinPayment: 25},
			{ID: "b", Balance: 0, Limit: 1000, APR: 0.10, MinPayment: 25},
		},
		MonthlyBudget: 100,
	}

	res := Simulate(input, domain.Snowball)

	if res.MonthsToDebtFree != 0 {
		t.Errorf("monthsToDebtFree = %d, want 0", res.MonthsToDebtFree)
	}
	if res.TotalInterest != 0 {
		t.Errorf("totalInterest = %v, want 0", res.TotalInterest)
	}
	if len(res.Steps) != 0 {
		t.Errorf("steps = %d, want 0", len(res.Steps))
	}
	if res.Outcome != domain.DebtFree {
		t.Errorf("outcome = %s, want debt_free", res.Outcome)
	}
}

func TestSimulate_Purity(t *testing.T) {
	input := twoCardInput()
	original := make([]domain.Account, len(input.Accounts))
	copy(original, input.Accounts)

	first := Simulate(input, domain.Avalanche)
	second := Simulate(input, domain.Avalanche)

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical input differ")
	}
	if !reflect.DeepEqual(input.Accounts, original) {
		t.Error("input accounts were mutated")
	}
}

func TestSimulate_AvalancheExtraGoesToHighestAPR(t *testing.T) {
	res := Simulate(twoCardInput(), domain.Avalanche)

	step := res.Steps[0]
	// Minimums: x=25, y=100. The full $200 extra lands on x (25% APR).
	if step.Allocations["x"] != 225.00 {
		t.Errorf("x allocation = %v, want 225.00", step.Allocations["x"])
	}
	if step.Allocations["y"] != 100.00 {
		t.Errorf("y allocation = %v, want 100.00", step.Allocations["y"])
	}
}

func TestSimulate_StrategiesDivergeOnSwappedBalances(t *testing.T) {
	// Same APRs as twoCardInput but balances swapped: the avalanche target
	// (highest APR) and snowball target (smallest balance) now differ.
	input := domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "x", Balance: 5000, Limit: 10000, APR: 0.25, MinPayment: 25},
			{ID: "y", Balance: 500, Limit: 2000, APR: 0.10, MinPayment: 100},
		},
		MonthlyBudget: 200,
	}

	av := Simulate(input, domain.Avalanche)
	sb := Simulate(input, domain.Snowball)

	if got := av.Steps[0].Allocations["x"]; got != 225.00 {
		t.Errorf("avalanche x allocation = %v, want 225.00", got)
	}
	if got := sb.Steps[0].Allocations["x"]; got != 25.00 {
		t.Errorf("snowball x allocation = %v, want 25.00", got)
	}
	if got := sb.Steps[0].Allocations["y"]; got <= 100.00 {
		t.Errorf("snowball y allocation = %v, want > 100.00 (minimum plus extra)", got)
	}
}

func TestSimulate_AvalancheNeverPaysMoreInterest(t *testing.T) {
	inputs := []domain.SimulationInput{
		twoCardInput(),
		{
			Accounts: []domain.Account{
				{ID: "a", Balance: 3200, Limit: 5000, APR: 0.2699, MinPayment: 90},
				{ID: "b", Balance: 8400, Limit: 12000, APR: 0.1799, MinPayment: 180},
				{ID: "c", Balance: 950, Limit: 1500, APR: 0.2199, MinPayment: 35},
			},
			MonthlyBudget: 350,
		},
		{
			Accounts: []domain.Account{
				{ID: "a", Balance: 1000, Limit: 2000, APR: 0.15, MinPayment: 40},
				{ID: "b", Balance: 2000, Limit: 4000, APR: 0.15, MinPayment: 60},
			},
			MonthlyBudget: 120,
		},
	}

	for i, input := range inputs {
		av := Simulate(input, domain.Avalanche)
		sb := Simulate(input, domain.Snowball)
		if av.TotalInterest > sb.TotalInterest+1e-9 {
			t.Errorf("input %d: avalanche interest %v > snowball interest %v",
				i, av.TotalInterest, sb.TotalInterest)
		}
	}
}

func TestSimulate_EqualAPRsPayEqualInterest(t *testing.T) {
	input := domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "a", Balance: 1000, Limit: 2000, APR: 0.18, MinPayment: 40},
			{ID: "b", Balance: 2500, Limit: 4000, APR: 0.18, MinPayment: 75},
		},
		MonthlyBudget: 150,
	}

	av := Simulate(input, domain.Avalanche)
	sb := Simulate(input, domain.Snowball)

	// With identical APRs every discretionary dollar earns the same rate
	// regardless of target, so the strategies cost the same.
	if math.Abs(av.TotalInterest-sb.TotalInterest) > 0.01 {
		t.Errorf("avalanche interest %v != snowball interest %v",
			av.TotalInterest, sb.TotalInterest)
	}
}

func TestSimulate_InfeasibleBudgetHitsCap(t *testing.T) {
	// 5% monthly interest on 10k is $500; a $100 minimum and no extra
	// budget can never catch up.
	input := domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "a", Balance: 10000, Limit: 20000, APR: 0.60, MinPayment: 100},
		},
		MonthlyBudget: 0,
	}

	res := Simulate(input, domain.Avalanche)

	if res.Outcome != domain.CapReached {
		t.Fatalf("outcome = %s, want cap_reached", res.Outcome)
	}
	if res.MonthsToDebtFree != MaxMonths {
		t.Errorf("monthsToDebtFree = %d, want %d", res.MonthsToDebtFree, MaxMonths)
	}
	if len(res.Steps) != MaxMonths {
		t.Errorf("steps = %d, want %d", len(res.Steps), MaxMonths)
	}
}

func TestSimulate_MinPaymentAboveBalance(t *testing.T) {
	input := domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "a", Balance: 30, Limit: 500, APR: 0.24, MinPayment: 50},
		},
		MonthlyBudget: 0,
	}

	res := Simulate(input, domain.Snowball)

	if res.Outcome != domain.DebtFree {
		t.Fatalf("outcome = %s, want debt_free", res.Outcome)
	}
	if res.MonthsToDebtFree != 1 {
		t.Errorf("monthsToDebtFree = %d, want 1", res.MonthsToDebtFree)
	}
	step := res.Steps[0]
	// Payment is capped at the post-accrual balance, never the full minimum.
	if step.Allocations["a"] >= 50 {
		t.Errorf("allocation = %v, want < 50", step.Allocations["a"])
	}
	if step.Balances["a"] < 0 {
		t.Errorf("balance went negative: %v", step.Balances["a"])
	}
}

func TestSimulate_LedgerInvariants(t *testing.T) {
	for _, strategy := range []domain.Strategy{domain.Avalanche, domain.Snowball} {
		input := domain.SimulationInput{
			Accounts: []domain.Account{
				{ID: "a", Balance: 3200, Limit: 5000, APR: 0.2699, MinPayment: 90},
				{ID: "b", Balance: 8400, Limit: 12000, APR: 0.1799, MinPayment: 180},
				{ID: "c", Balance: 950, Limit: 1500, APR: 0.2199, MinPayment: 35},
			},
			MonthlyBudget: 400,
		}

		res := Simulate(input, strategy)
		if res.Outcome != domain.DebtFree {
			t.Fatalf("%s: outcome = %s, want debt_free", strategy, res.Outcome)
		}

		var minSum float64
		prev := map[string]float64{}
		for _, a := range input.Accounts {
			minSum += a.MinPayment
			prev[a.ID] = a.Balance
		}

		for _, step := range res.Steps {
			var paid float64
			for _, a := range input.Accounts {
				alloc, ok := step.Allocations[a.ID]
				if !ok {
					t.Fatalf("%s month %d: ledger missing account %s", strategy, step.MonthIndex, a.ID)
				}
				// No account is ever paid more than it owed after accrual.
				owed := prev[a.ID] + step.InterestAccrued[a.ID]
				if alloc > owed+0.011 {
					t.Errorf("%s month %d %s: paid %v, owed %v", strategy, step.MonthIndex, a.ID, alloc, owed)
				}
				if step.Balances[a.ID] < 0 {
					t.Errorf("%s month %d %s: negative balance %v", strategy, step.MonthIndex, a.ID, step.Balances[a.ID])
				}
				paid += alloc
				prev[a.ID] = step.Balances[a.ID]
			}
			// The month never spends more than budget plus all minimums.
			if paid > input.MonthlyBudget+minSum+0.011 {
				t.Errorf("%s month %d: paid %v, pool %v", strategy, step.MonthIndex, paid, input.MonthlyBudget+minSum)
			}
		}
	}
}

func TestSimulate_PaidOffAccountStaysInLedger(t *testing.T) {
	input := domain.SimulationInput{
		Accounts: []domain.Account{
			{ID: "small", Balance: 40, Limit: 500, APR: 0.30, MinPayment: 50},
			{ID: "big", Balance: 4000, Limit: 8000, APR: 0.18, MinPayment: 120},
		},
		MonthlyBudget: 100,
	}

	res := Simulate(input, domain.Snowball)

	// "small" is gone after month 0 but must keep appearing with zeros.
	for _, step := range res.Steps[1:] {
		if step.InterestAccrued["small"] != 0 {
			t.Errorf("month %d: paid-off account accrued %v", step.MonthIndex, step.InterestAccrued["small"])
		}
		if step.Allocations["small"] != 0 {
			t.Errorf("month %d: paid-off account allocated %v", step.MonthIndex, step.Allocations["small"])
		}
	}
}
