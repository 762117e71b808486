package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"debt-planner/domain"
)

// AIService turns a simulation result into a narrative explanation. Without
// an API key it degrades to a deterministic template, so callers always get
// some explanation.
type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewAIService() *AIService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GeneratePayoffExplanation explains one payoff plan. When a comparison is
// supplied the narrative covers both strategies.
func (s *AIService) GeneratePayoffExplanation(
	input domain.SimulationInput,
	result domain.SimulationResult,
	comparison *domain.Comparison,
) string {
	if !s.enabled {
		return s.fallbackExplanation(result, comparison)
	}

	comparisonText := ""
	if comparison != nil {
		comparisonText = fmt.Sprintf(`
STRATEGY COMPARISON:
- Avalanche: $%.2f interest, %d months (%s)
- Snowball: $%.2f interest, %d months (%s)
- Choosing avalanche saves $%.2f and %d months`,
			comparison.Avalanche.TotalInterest, comparison.Avalanche.MonthsToDebtFree, comparison.Avalanche.Outcome,
			comparison.Snowball.TotalInterest, comparison.Snowball.MonthsToDebtFree, comparison.Snowball.Outcome,
			comparison.Savings.InterestSaved, comparison.Savings.MonthsSaved)
	}

	outcomeText := "The plan pays every account down to zero."
	if result.Outcome == domain.CapReached {
		outcomeText = "The plan does NOT resolve within the 50-year safety horizon: the committed budget never outpaces accruing interest. Be direct about this."
	}

	prompt := fmt.Sprintf(`Analyze this debt payoff plan and write a clear, motivating explanation.

PLAN SUMMARY:
- Strategy: %s
- Extra monthly budget above minimums: $%.2f
- Months to debt-free: %d (%.1f years)
- Total interest paid: $%.2f
- %s

ACCOUNTS:
%s
%s

INSTRUCTIONS:
1. Explain in plain terms how the %s strategy allocates the extra budget.
2. Be specific with the dollar amounts and the timeline.
3. If a comparison is shown, explain the trade-off between the strategies.
4. Be encouraging but realistic.

Write 3-4 sentences that anyone can understand.`,
		result.Strategy, input.MonthlyBudget,
		result.MonthsToDebtFree, float64(result.MonthsToDebtFree)/12.0,
		result.TotalInterest, outcomeText,
		s.formatAccounts(input.Accounts),
		comparisonText,
		result.Strategy)

	explanation, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("warning: AI explanation failed: %v", err)
		return s.fallbackExplanation(result, comparison)
	}
	return explanation
}

func (s *AIService) callLLM(prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a financial coach who explains debt payoff plans. You are precise with numbers, never invent figures that are not in the prompt, and you keep explanations short, concrete and encouraging.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}
	return parsed.Choices[0].Message.Content, nil
}

func (s *AIService) formatAccounts(accounts []domain.Account) string {
	var b strings.Builder
	for _, a := range accounts {
		name := a.Name
		if name == "" {
			name = a.ID
		}
		fmt.Fprintf(&b, "- %s: $%.2f balance at %.2f%% APR, $%.2f minimum payment\n",
			name, a.Balance, a.APR*100, a.MinPayment)
	}
	return b.String()
}

func (s *AIService) fallbackExplanation(result domain.SimulationResult, comparison *domain.Comparison) string {
	if result.Outcome == domain.CapReached {
		return fmt.Sprintf("At the current budget this plan does not pay off within %d months: interest accrues faster than the payments reduce the balances. Raising the extra monthly amount, even slightly, is the most effective lever.", result.MonthsToDebtFree)
	}

	strategyTip := "The avalanche strategy sends every extra dollar to the highest-rate account first, which minimizes the total interest you pay."
	if result.Strategy == domain.Snowball {
		strategyTip = "The snowball strategy sends every extra dollar to the smallest balance first, clearing accounts quickly to keep momentum."
	}

	base := fmt.Sprintf("With the %s strategy you will be debt-free in %d months (%.1f years) and pay $%.2f in total interest. %s",
		result.Strategy, result.MonthsToDebtFree, float64(result.MonthsToDebtFree)/12.0,
		result.TotalInterest, strategyTip)

	if comparison != nil && comparison.Savings.InterestSaved > 0 {
		base += fmt.Sprintf(" Compared to snowball, avalanche saves you $%.2f in interest.", comparison.Savings.InterestSaved)
	}
	return base
}
