package domain

import "time"

// PlanRun is one persisted simulation: what was asked and what came out.
type PlanRun struct {
	ID        string           `json:"id"`
	Strategy  Strategy         `json:"strategy"`
	CreatedAt time.Time        `json:"createdAt"`
	Input     SimulationInput  `json:"input"`
	Result    SimulationResult `json:"result"`
}
