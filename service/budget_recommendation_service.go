package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"debt-planner/domain"
)

// BudgetRecommendationService sweeps candidate extra-budget levels and
// scores what each additional monthly dollar buys in months and interest.
type BudgetRecommendationService struct {
	sims *SimulationService
}

func NewBudgetRecommendationService(sims *SimulationService) *BudgetRecommendationService {
	return &BudgetRecommendationService{sims: sims}
}

// RecommendBudget simulates every budget level in [MinBudget, MaxBudget] at
// BudgetStep increments and recommends the best-scoring feasible one.
// Levels that hit the safety cap are reported as infeasible but never
// recommended.
func (s *BudgetRecommendationService) RecommendBudget(ctx context.Context, input domain.BudgetRecommendationInput) (domain.BudgetRecommendationResult, error) {
	if err := ValidateInput(domain.SimulationInput{Accounts: input.Accounts, MonthlyBudget: input.MinBudget}); err != nil {
		return domain.BudgetRecommendationResult{}, err
	}
	if !input.Strategy.Valid() {
		return domain.BudgetRecommendationResult{}, ErrInvalidStrategy
	}
	if input.MinBudget < 0 {
		return domain.BudgetRecommendationResult{}, errors.New("minimum budget cannot be negative")
	}
	if input.MaxBudget < input.MinBudget {
		return domain.BudgetRecommendationResult{}, errors.New("maximum budget is below the minimum")
	}
	if input.MaxBudget > MaxMonthlyBudget {
		return domain.BudgetRecommendationResult{}, fmt.Errorf("maximum budget exceeds the maximum of $%.2f", float64(MaxMonthlyBudget))
	}
	if input.BudgetStep < 0.01 {
		return domain.BudgetRecommendationResult{}, errors.New("budget step must be at least $0.01")
	}
	if (input.MaxBudget-input.MinBudget)/input.BudgetStep > MaxBudgetCandidates {
		return domain.BudgetRecommendationResult{}, fmt.Errorf("budget range exceeds the maximum of %d candidate levels", MaxBudgetCandidates)
	}

	preferences := map[string]bool{
		"minimize_interest": true,
		"minimize_months":   true,
		"balanced":          true,
	}
	if !preferences[input.Preference] {
		return domain.BudgetRecommendationResult{}, errors.New("invalid preference")
	}

	// Index-based sweep: accumulating float steps drifts, and rounding an
	// accumulated value can snap it back to the previous level.
	levels := int((input.MaxBudget-input.MinBudget)/input.BudgetStep + 1e-9)
	options := make([]domain.BudgetOption, 0, levels+1)
	for i := 0; i <= levels; i++ {
		budget := round2(input.MinBudget + float64(i)*input.BudgetStep)
		result := s.sims.run(domain.SimulationInput{
			Accounts:      input.Accounts,
			MonthlyBudget: budget,
		}, input.Strategy)

		options = append(options, domain.BudgetOption{
			MonthlyBudget:    budget,
			MonthsToDebtFree: result.MonthsToDebtFree,
			TotalInterest:    result.TotalInterest,
			Feasible:         result.Outcome == domain.DebtFree,
		})
	}

	scoreOptions(options, input)

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Score > options[j].Score
	})

	for i := range options {
		if options[i].Feasible {
			return domain.BudgetRecommendationResult{
				RecommendedBudget: options[i].MonthlyBudget,
				Options:           options,
			}, nil
		}
	}
	return domain.BudgetRecommendationResult{}, errors.New("no budget level in the range pays off within the horizon; raise the maximum budget")
}

// scoreOptions normalizes interest, months and budget commitment across the
// feasible set and weights them by the stated preference.
func scoreOptions(options []domain.BudgetOption, input domain.BudgetRecommendationInput) {
	minInterest, maxInterest := 0.0, 0.0
	minMonths, maxMonths := 0, 0
	first := true
	for _, o := range options {
		if !o.Feasible {
			continue
		}
		if first {
			minInterest, maxInterest = o.TotalInterest, o.TotalInterest
			minMonths, maxMonths = o.MonthsToDebtFree, o.MonthsToDebtFree
			first = false
			continue
		}
		minInterest = min(minInterest, o.TotalInterest)
		maxInterest = max(maxInterest, o.TotalInterest)
		minMonths = min(minMonths, o.MonthsToDebtFree)
		maxMonths = max(maxMonths, o.MonthsToDebtFree)
	}

	budgetRange := input.MaxBudget - input.MinBudget

	for i := range options {
		o := &options[i]
		if !o.Feasible {
			o.Score = 0
			o.Reason = "Does not pay off within the 600-month horizon"
			continue
		}

		interestScore := 10.0
		if maxInterest > minInterest {
			interestScore = 10.0 * (1.0 - (o.TotalInterest-minInterest)/(maxInterest-minInterest))
		}
		monthScore := 10.0
		if maxMonths > minMonths {
			monthScore = 10.0 * (1.0 - float64(o.MonthsToDebtFree-minMonths)/float64(maxMonths-minMonths))
		}
		budgetScore := 10.0
		if budgetRange > 0 {
			budgetScore = 10.0 * (1.0 - (o.MonthlyBudget-input.MinBudget)/budgetRange)
		}

		switch input.Preference {
		case "minimize_interest":
			o.Score = 0.6*interestScore + 0.2*monthScore + 0.2*budgetScore
			o.Reason = "Budget level weighted toward the lowest total interest"
		case "minimize_months":
			o.Score = 0.2*interestScore + 0.6*monthScore + 0.2*budgetScore
			o.Reason = "Budget level weighted toward the fastest payoff"
		case "balanced":
			o.Score = 0.4*interestScore + 0.4*monthScore + 0.2*budgetScore
			o.Reason = "Balance between payoff speed, interest cost and monthly commitment"
		}
		o.Score = round2(o.Score)
	}
}
