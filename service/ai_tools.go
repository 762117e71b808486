package service

import (
	"context"
	"encoding/json"
	"fmt"

	"debt-planner/domain"
)

// ToolDefinition describes one engine operation in the shape an AI
// assistant's function-calling API expects: a name, a description and a
// JSON-schema parameter object.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

const (
	ToolSimulatePayoff    = "simulate_payoff"
	ToolCompareStrategies = "compare_strategies"
)

var accountSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":         map[string]any{"type": "string", "description": "Unique account identifier"},
			"name":       map[string]any{"type": "string", "description": "Display name"},
			"balance":    map[string]any{"type": "number", "description": "Current balance, non-negative"},
			"limit":      map[string]any{"type": "number", "description": "Credit limit"},
			"apr":        map[string]any{"type": "number", "description": "Annual rate as a decimal fraction, e.g. 0.1999"},
			"minPayment": map[string]any{"type": "number", "description": "Fixed monthly minimum payment"},
		},
		"required": []string{"id", "balance", "limit", "apr", "minPayment"},
	},
}

// ToolDefinitions lists the engine operations exposed to the assistant. A
// typical flow calls simulate_payoff once per strategy, or
// compare_strategies once, then narrates the difference.
func ToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolSimulatePayoff,
			Description: "Project month-by-month payoff of revolving credit accounts under one allocation strategy. Returns total interest, months to debt-free, the terminal outcome and the full monthly ledger.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"accounts": accountSchema,
					"monthlyBudget": map[string]any{
						"type":        "number",
						"description": "Extra funds committed monthly above the sum of all minimum payments",
					},
					"strategy": map[string]any{
						"type": "string",
						"enum": []string{string(domain.Avalanche), string(domain.Snowball)},
					},
				},
				"required": []string{"accounts", "monthlyBudget", "strategy"},
			},
		},
		{
			Name:        ToolCompareStrategies,
			Description: "Run both avalanche and snowball over the same accounts and budget, returning both results plus interest and months saved.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"accounts": accountSchema,
					"monthlyBudget": map[string]any{
						"type":        "number",
						"description": "Extra funds committed monthly above the sum of all minimum payments",
					},
				},
				"required": []string{"accounts", "monthlyBudget"},
			},
		},
	}
}

type simulateToolArgs struct {
	domain.SimulationInput
	Strategy domain.Strategy `json:"strategy"`
}

// HandleToolCall dispatches an assistant tool call by name. Unknown names
// and malformed arguments come back as errors for the assistant loop to
// surface; validation failures read the same way.
func (s *SimulationService) HandleToolCall(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case ToolSimulatePayoff:
		var parsed simulateToolArgs
		if err := json.Unmarshal(args, &parsed); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return s.Simulate(ctx, parsed.SimulationInput, parsed.Strategy)

	case ToolCompareStrategies:
		var parsed domain.SimulationInput
		if err := json.Unmarshal(args, &parsed); err != nil {
			return nil, fmt.Errorf("invalid arguments for %s: %w", name, err)
		}
		return s.Compare(ctx, parsed)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}
