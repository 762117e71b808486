package domain

// BudgetRecommendationInput asks for a sweep over candidate extra-budget
// levels: how much does each additional monthly dollar buy in months and
// interest.
type BudgetRecommendationInput struct {
	Accounts   []Account `json:"accounts"`
	MinBudget  float64   `json:"minBudget"`
	MaxBudget  float64   `json:"maxBudget"`
	BudgetStep float64   `json:"budgetStep"`
	Strategy   Strategy  `json:"strategy"`
	Preference string    `json:"preference"` // "minimize_interest", "minimize_months", "balanced"
}

type BudgetOption struct {
	MonthlyBudget    float64 `json:"monthlyBudget"`
	MonthsToDebtFree int     `json:"monthsToDebtFree"`
	TotalInterest    float64 `json:"totalInterest"`
	Feasible         bool    `json:"feasible"`
	Score            float64 `json:"score"`
	Reason           string  `json:"reason"`
}

type BudgetRecommendationResult struct {
	RecommendedBudget float64        `json:"recommendedBudget"`
	Options           []BudgetOption `json:"options"`
}
