package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"debt-planner/domain"
	"debt-planner/engine"
	"debt-planner/metrics"
	"debt-planner/repository"
)

var (
	ErrNoAccounts      = errors.New("no accounts provided")
	ErrInvalidStrategy = errors.New("invalid strategy: must be avalanche or snowball")
)

// SimulationService wraps the pure engine with the caller-side concerns the
// engine itself refuses to own: input validation, result caching, plan
// persistence and human-readable annotation.
type SimulationService struct {
	repo     repository.PlanRepository
	cache    repository.CacheRepository
	ai       *AIService
	cacheTTL time.Duration
}

// NewSimulationService creates a new SimulationService with the given
// repository and cache.
func NewSimulationService(repo repository.PlanRepository, cache repository.CacheRepository) *SimulationService {
	return &SimulationService{
		repo:     repo,
		cache:    cache,
		ai:       NewAIService(),
		cacheTTL: DefaultCacheTTL,
	}
}

// SetCacheTTL overrides how long cached reports stay valid.
func (s *SimulationService) SetCacheTTL(ttl time.Duration) {
	s.cacheTTL = ttl
}

// ValidateInput rejects malformed input before the engine ever sees it. The
// engine assumes well-formed numbers and does not re-validate. An
// insufficient budget is deliberately NOT an error here: infeasibility is a
// result value (Outcome cap_reached), never a rejection.
func ValidateInput(input domain.SimulationInput) error {
	if len(input.Accounts) == 0 {
		return ErrNoAccounts
	}
	if len(input.Accounts) > MaxAccountsPerRequest {
		return fmt.Errorf("account count exceeds the maximum of %d", MaxAccountsPerRequest)
	}
	if input.MonthlyBudget < 0 {
		return errors.New("monthly budget cannot be negative")
	}
	if input.MonthlyBudget > MaxMonthlyBudget {
		return fmt.Errorf("monthly budget exceeds the maximum of $%.2f", float64(MaxMonthlyBudget))
	}

	seen := make(map[string]bool, len(input.Accounts))
	for _, a := range input.Accounts {
		if a.ID == "" {
			return errors.New("account id cannot be empty")
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate account id: %s", a.ID)
		}
		seen[a.ID] = true

		if a.Balance < 0 {
			return fmt.Errorf("account %s: balance cannot be negative", a.ID)
		}
		if a.Balance > MaxAccountBalance {
			return fmt.Errorf("account %s: balance exceeds the maximum of $%.2f", a.ID, float64(MaxAccountBalance))
		}
		if a.APR < 0 {
			return fmt.Errorf("account %s: APR cannot be negative", a.ID)
		}
		if a.APR > MaxAPR {
			return fmt.Errorf("account %s: APR exceeds the maximum of %.0f%%", a.ID, MaxAPR*100)
		}
		if a.MinPayment < 0 {
			return fmt.Errorf("account %s: minimum payment cannot be negative", a.ID)
		}
		if a.Limit <= 0 {
			return fmt.Errorf("account %s: credit limit must be positive", a.ID)
		}
	}
	return nil
}

// Simulate validates, runs one strategy and returns the annotated report.
// Reports are cached by an input digest; a hit returns the previously
// persisted plan.
func (s *SimulationService) Simulate(ctx context.Context, input domain.SimulationInput, strategy domain.Strategy) (domain.SimulationReport, error) {
	if err := ValidateInput(input); err != nil {
		return domain.SimulationReport{}, err
	}
	if !strategy.Valid() {
		return domain.SimulationReport{}, ErrInvalidStrategy
	}

	key := cacheKey(input, strategy)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	result := s.run(input, strategy)

	report := domain.SimulationReport{
		Result:         result,
		Recommendation: recommendation(result),
	}
	report.Explanation = s.ai.GeneratePayoffExplanation(input, result, nil)

	if run, err := s.persist(ctx, input, result); err != nil {
		log.Printf("warning: failed to save plan run: %v", err)
	} else {
		report.PlanID = run.ID
	}

	s.cachePut(ctx, key, report)
	return report, nil
}

// Compare runs both strategies over the same input. The engine is pure, so
// the two runs proceed in parallel.
func (s *SimulationService) Compare(ctx context.Context, input domain.SimulationInput) (domain.ComparisonReport, error) {
	if err := ValidateInput(input); err != nil {
		return domain.ComparisonReport{}, err
	}

	var av, sb domain.SimulationResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		av = s.run(input, domain.Avalanche)
	}()
	go func() {
		defer wg.Done()
		sb = s.run(input, domain.Snowball)
	}()
	wg.Wait()

	report := domain.ComparisonReport{
		Avalanche:      av,
		Snowball:       sb,
		Comparison:     buildComparison(av, sb),
		Recommendation: compareRecommendation(av, sb),
	}
	report.Explanation = s.ai.GeneratePayoffExplanation(input, recommended(av, sb), &report.Comparison)

	if run, err := s.persist(ctx, input, recommended(av, sb)); err != nil {
		log.Printf("warning: failed to save plan run: %v", err)
	} else {
		report.PlanID = run.ID
	}

	return report, nil
}

// run is the only call site of the engine; it carries the observability.
func (s *SimulationService) run(input domain.SimulationInput, strategy domain.Strategy) domain.SimulationResult {
	start := time.Now()
	result := engine.Simulate(input, strategy)
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	metrics.SimulationsTotal.WithLabelValues(string(strategy), string(result.Outcome)).Inc()
	return result
}

func (s *SimulationService) persist(ctx context.Context, input domain.SimulationInput, result domain.SimulationResult) (domain.PlanRun, error) {
	run := domain.PlanRun{
		ID:        uuid.NewString(),
		Strategy:  result.Strategy,
		CreatedAt: time.Now().UTC(),
		Input:     input,
		Result:    result,
	}
	if s.repo == nil {
		return run, nil
	}
	if err := s.repo.Save(ctx, run); err != nil {
		return domain.PlanRun{}, err
	}
	return run, nil
}

func (s *SimulationService) cacheGet(ctx context.Context, key string) (domain.SimulationReport, bool) {
	if s.cache == nil {
		return domain.SimulationReport{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		metrics.CacheMisses.Inc()
		return domain.SimulationReport{}, false
	}
	var report domain.SimulationReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		metrics.CacheMisses.Inc()
		return domain.SimulationReport{}, false
	}
	metrics.CacheHits.Inc()
	return report, true
}

func (s *SimulationService) cachePut(ctx context.Context, key string, report domain.SimulationReport) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
		log.Printf("warning: failed to cache plan: %v", err)
	}
}

// cacheKey digests the canonical input JSON. Determinism of the engine means
// the digest fully identifies the report.
func cacheKey(input domain.SimulationInput, strategy domain.Strategy) string {
	data, _ := json.Marshal(input)
	h := xxhash.New()
	_, _ = h.Write(data)
	_, _ = h.Write([]byte(strategy))
	return fmt.Sprintf("plan:%s:%016x", strategy, h.Sum64())
}

func recommendation(res domain.SimulationResult) string {
	if res.Outcome == domain.CapReached {
		return fmt.Sprintf("This plan does not resolve within the %d-month horizon: the budget never outpaces interest. Increase the monthly budget or negotiate lower rates.", engine.MaxMonths)
	}
	return fmt.Sprintf("Following the %s strategy you are debt-free in %d months, paying $%.2f in total interest.",
		res.Strategy, res.MonthsToDebtFree, res.TotalInterest)
}

func recommended(av, sb domain.SimulationResult) domain.SimulationResult {
	// Avalanche never pays more interest; prefer snowball only when it wins
	// on months at equal interest.
	if sb.TotalInterest < av.TotalInterest {
		return sb
	}
	if sb.TotalInterest == av.TotalInterest && sb.MonthsToDebtFree < av.MonthsToDebtFree {
		return sb
	}
	return av
}

func buildComparison(av, sb domain.SimulationResult) domain.Comparison {
	cmp := domain.Comparison{
		Avalanche: domain.StrategySummary{
			TotalInterest:    av.TotalInterest,
			MonthsToDebtFree: av.MonthsToDebtFree,
			Outcome:          av.Outcome,
		},
		Snowball: domain.StrategySummary{
			TotalInterest:    sb.TotalInterest,
			MonthsToDebtFree: sb.MonthsToDebtFree,
			Outcome:          sb.Outcome,
		},
	}
	cmp.Savings.InterestSaved = round2(math.Max(0, sb.TotalInterest-av.TotalInterest))
	cmp.Savings.MonthsSaved = sb.MonthsToDebtFree - av.MonthsToDebtFree
	return cmp
}

func compareRecommendation(av, sb domain.SimulationResult) string {
	if av.Outcome == domain.CapReached && sb.Outcome == domain.CapReached {
		return fmt.Sprintf("Neither strategy resolves within the %d-month horizon. Increase the monthly budget.", engine.MaxMonths)
	}
	saved := round2(sb.TotalInterest - av.TotalInterest)
	if saved <= 0 {
		return "Both strategies cost the same here; snowball clears small accounts sooner, which many people find easier to stick with."
	}
	return fmt.Sprintf("Avalanche saves $%.2f in interest over snowball and finishes %d months sooner. Snowball clears the smallest account first if quick wins matter more to you.",
		saved, sb.MonthsToDebtFree-av.MonthsToDebtFree)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
