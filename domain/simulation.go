package domain

// SimulationInput is the full request to the payoff engine. Account order
// matters: it is the tie-break for strategy ordering.
type SimulationInput struct {
	Accounts []Account `json:"accounts"`
	// MonthlyBudget is the amount committed each month on top of the sum of
	// all minimum payments, not a total payment ceiling.
	MonthlyBudget float64 `json:"monthlyBudget"`
}

// MonthlyStep is one ledger entry. Every map carries the full account id set,
// including zero entries for paid-off accounts, so the key set is constant
// across the whole ledger.
type MonthlyStep struct {
	MonthIndex      int                `json:"monthIndex"`
	Allocations     map[string]float64 `json:"allocations"`
	Balances        map[string]float64 `json:"balances"`
	InterestAccrued map[string]float64 `json:"interestAccrued"`
}

// Outcome is the terminal state of a simulation. A capped run signals an
// infeasible plan, not a genuine 50-year payoff, and callers must be able to
// tell the two apart.
type Outcome string

const (
	DebtFree   Outcome = "debt_free"
	CapReached Outcome = "cap_reached"
)

type SimulationResult struct {
	Strategy         Strategy      `json:"strategy"`
	TotalInterest    float64       `json:"totalInterest"`
	MonthsToDebtFree int           `json:"monthsToDebtFree"`
	Outcome          Outcome       `json:"outcome"`
	Steps            []MonthlyStep `json:"steps"`
}

// StrategySummary is the headline numbers of one strategy inside a comparison.
type StrategySummary struct {
	TotalInterest    float64 `json:"totalInterest"`
	MonthsToDebtFree int     `json:"monthsToDebtFree"`
	Outcome          Outcome `json:"outcome"`
}

type Comparison struct {
	Avalanche StrategySummary `json:"avalanche"`
	Snowball  StrategySummary `json:"snowball"`
	Savings   struct {
		InterestSaved float64 `json:"interestSaved"`
		MonthsSaved   int     `json:"monthsSaved"`
	} `json:"savings"`
}

// SimulationReport is the API-facing envelope: the raw result annotated with
// a human-readable recommendation and, when available, an AI explanation.
type SimulationReport struct {
	PlanID         string           `json:"planId,omitempty"`
	Result         SimulationResult `json:"result"`
	Recommendation string           `json:"recommendation"`
	Explanation    string           `json:"explanation,omitempty"`
}

type ComparisonReport struct {
	PlanID         string           `json:"planId,omitempty"`
	Avalanche      SimulationResult `json:"avalanche"`
	Snowball       SimulationResult `json:"snowball"`
	Comparison     Comparison       `json:"comparison"`
	Recommendation string           `json:"recommendation"`
	Explanation    string           `json:"explanation,omitempty"`
}
