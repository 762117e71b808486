package service

import (
	"context"
	"testing"

	"debt-planner/domain"
	"debt-planner/repository"
)

func newBudgetService() *BudgetRecommendationService {
	return NewBudgetRecommendationService(newTestService(&MockPlanRepository{}, repository.NewMockCache()))
}

func budgetInput() domain.BudgetRecommendationInput {
	return domain.BudgetRecommendationInput{
		Accounts: []domain.Account{
			{ID: "a", Balance: 3000, Limit: 5000, APR: 0.22, MinPayment: 90},
			{ID: "b", Balance: 1200, Limit: 2000, APR: 0.18, MinPayment: 40},
		},
		MinBudget:  0,
		MaxBudget:  500,
		BudgetStep: 100,
		Strategy:   domain.Avalanche,
		Preference: "balanced",
	}
}

func TestRecommendBudget(t *testing.T) {
	svc := newBudgetService()

	result, err := svc.RecommendBudget(context.Background(), budgetInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Options) != 6 {
		t.Errorf("options = %d, want 6 (0 through 500 step 100)", len(result.Options))
	}
	for _, o := range result.Options {
		if o.MonthlyBudget == result.RecommendedBudget && !o.Feasible {
			t.Error("recommended an infeasible budget level")
		}
	}

	// More budget never makes the payoff slower or costlier.
	byBudget := make(map[float64]domain.BudgetOption)
	for _, o := range result.Options {
		byBudget[o.MonthlyBudget] = o
	}
	if byBudget[500].MonthsToDebtFree > byBudget[0].MonthsToDebtFree {
		t.Errorf("months at $500 (%d) > months at $0 (%d)",
			byBudget[500].MonthsToDebtFree, byBudget[0].MonthsToDebtFree)
	}
	if byBudget[500].TotalInterest > byBudget[0].TotalInterest {
		t.Errorf("interest at $500 (%v) > interest at $0 (%v)",
			byBudget[500].TotalInterest, byBudget[0].TotalInterest)
	}
}

func TestScoreOptions_PreferenceShiftsWeights(t *testing.T) {
	build := func() []domain.BudgetOption {
		return []domain.BudgetOption{
			{MonthlyBudget: 0, MonthsToDebtFree: 40, TotalInterest: 900, Feasible: true},
			{MonthlyBudget: 250, MonthsToDebtFree: 20, TotalInterest: 500, Feasible: true},
			{MonthlyBudget: 500, MonthsToDebtFree: 10, TotalInterest: 250, Feasible: true},
		}
	}
	input := domain.BudgetRecommendationInput{MinBudget: 0, MaxBudget: 500}

	input.Preference = "minimize_months"
	fast := build()
	scoreOptions(fast, input)
	if !(fast[2].Score > fast[0].Score) {
		t.Errorf("minimize_months: fastest option scored %v, slowest %v", fast[2].Score, fast[0].Score)
	}

	// An infeasible level never scores.
	input.Preference = "balanced"
	mixed := build()
	mixed[0].Feasible = false
	scoreOptions(mixed, input)
	if mixed[0].Score != 0 {
		t.Errorf("infeasible option scored %v, want 0", mixed[0].Score)
	}
	if mixed[0].Reason == "" {
		t.Error("infeasible option should carry a reason")
	}
}

func TestRecommendBudget_FractionalStepAdvances(t *testing.T) {
	svc := newBudgetService()

	// Repeatedly adding 0.1 drifts in float arithmetic; the sweep must still
	// visit every level exactly once and stop at the maximum.
	input := domain.BudgetRecommendationInput{
		Accounts: []domain.Account{
			{ID: "a", Balance: 300, Limit: 1000, APR: 0.12, MinPayment: 30},
		},
		MinBudget:  0,
		MaxBudget:  1,
		BudgetStep: 0.1,
		Strategy:   domain.Avalanche,
		Preference: "balanced",
	}

	result, err := svc.RecommendBudget(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Options) != 11 {
		t.Fatalf("options = %d, want 11 (0.0 through 1.0 step 0.1)", len(result.Options))
	}

	seen := make(map[float64]bool, len(result.Options))
	for _, o := range result.Options {
		if seen[o.MonthlyBudget] {
			t.Errorf("budget level %v visited twice", o.MonthlyBudget)
		}
		seen[o.MonthlyBudget] = true
	}
	if !seen[1.0] {
		t.Error("sweep never reached the maximum budget")
	}
}

func TestRecommendBudget_Validation(t *testing.T) {
	svc := newBudgetService()

	tests := []struct {
		name   string
		mutate func(*domain.BudgetRecommendationInput)
	}{
		{"no accounts", func(in *domain.BudgetRecommendationInput) { in.Accounts = nil }},
		{"invalid strategy", func(in *domain.BudgetRecommendationInput) { in.Strategy = "boulder" }},
		{"max below min", func(in *domain.BudgetRecommendationInput) { in.MaxBudget = -1; in.MinBudget = 0 }},
		{"zero step", func(in *domain.BudgetRecommendationInput) { in.BudgetStep = 0 }},
		{"sub-cent step", func(in *domain.BudgetRecommendationInput) { in.MaxBudget = 0.4; in.BudgetStep = 0.004 }},
		{"max budget over cap", func(in *domain.BudgetRecommendationInput) { in.MaxBudget = MaxMonthlyBudget + 1 }},
		{"too many candidates", func(in *domain.BudgetRecommendationInput) { in.BudgetStep = 0.01 }},
		{"invalid preference", func(in *domain.BudgetRecommendationInput) { in.Preference = "vibes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := budgetInput()
			tt.mutate(&input)
			if _, err := svc.RecommendBudget(context.Background(), input); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestRecommendBudget_AllInfeasible(t *testing.T) {
	svc := newBudgetService()

	input := domain.BudgetRecommendationInput{
		Accounts: []domain.Account{
			// 5% monthly interest; nothing in the sweep range catches up.
			{ID: "a", Balance: 100000, Limit: 200000, APR: 0.60, MinPayment: 100},
		},
		MinBudget:  0,
		MaxBudget:  200,
		BudgetStep: 100,
		Strategy:   domain.Avalanche,
		Preference: "balanced",
	}

	if _, err := svc.RecommendBudget(context.Background(), input); err == nil {
		t.Error("expected an error when no budget level is feasible")
	}
}
