package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine orchestrates the payment-optimization and scenario calculations.
// Every operation is a pure function of its inputs; caller cards are never mutated.
type Engine struct {
	Policy    domain.Policy
	Planner   *PaymentPlanner
	Optimizer *PortfolioOptimizer
	Ranker    *PriorityRanker
	Allocator *BudgetAllocator
	Simulator *ScenarioSimulator
	Logger    Logger
}

// NewEngine creates an engine with the default policy
func NewEngine() *Engine {
	return NewEngineWithPolicy(domain.DefaultPolicy())
}

// NewEngineWithPolicy creates an engine with a configurable policy; unset fields take defaults
func NewEngineWithPolicy(policy domain.Policy) *Engine {
	policy = policy.WithDefaults()
	logger := NopLogger{}
	planner := NewPaymentPlanner(policy, logger)
	ranker := NewPriorityRanker()
	return &Engine{
		Policy:    policy,
		Planner:   planner,
		Optimizer: NewPortfolioOptimizer(planner),
		Ranker:    ranker,
		Allocator: NewBudgetAllocator(policy, ranker, logger),
		Simulator: NewScenarioSimulator(policy, logger),
		Logger:    logger,
	}
}

// SetLogger sets the logger for the engine and its calculators. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	l = loggerOrNop(l)
	e.Logger = l
	e.Planner.Logger = l
	e.Allocator.Logger = l
	e.Simulator.Logger = l
}

// PlanCard builds one card's payment schedule. A zero target uses the policy target.
func (e *Engine) PlanCard(card domain.Card, target decimal.Decimal, ref time.Time) domain.CardPaymentPlan {
	return e.Planner.Plan(card, target, ref)
}

// OptimizePortfolio plans every card and aggregates before/after utilization
func (e *Engine) OptimizePortfolio(cards []domain.Card, target decimal.Decimal, ref time.Time) domain.OptimizationResult {
	return e.Optimizer.Optimize(cards, target, ref)
}

// EstimateScoreImpact estimates the score effect of a utilization improvement
func (e *Engine) EstimateScoreImpact(improvementPoints, startingUtilization decimal.Decimal) domain.ImpactRange {
	return EstimateScoreImpact(improvementPoints, startingUtilization)
}

// RankByPriority ranks cards for budget allocation
func (e *Engine) RankByPriority(cards []domain.Card, ref time.Time) []domain.PriorityScore {
	return e.Ranker.Rank(cards, ref)
}

// AllocateBudget distributes a budget with one strategy
func (e *Engine) AllocateBudget(kind domain.StrategyKind, cards []domain.Card, budget decimal.Decimal, ref time.Time) (*domain.AllocationStrategy, error) {
	return e.Allocator.Allocate(kind, cards, budget, ref)
}

// RunScenario simulates one what-if action
func (e *Engine) RunScenario(req domain.ScenarioRequest, cards []domain.Card, ref time.Time) (domain.ScenarioResult, error) {
	return e.Simulator.Run(req, cards, ref)
}

// CompareScenarios classifies a scenario against its baseline
func (e *Engine) CompareScenarios(baseline, scenario domain.ScenarioResult) domain.ComparisonResult {
	return CompareScenarios(baseline, scenario)
}

// CalculateBaseline aggregates a card set without changes
func (e *Engine) CalculateBaseline(cards []domain.Card) domain.ScenarioResult {
	return CalculateBaseline(cards)
}

// MinimumPayment returns the card's minimum payment under the engine policy
func (e *Engine) MinimumPayment(card domain.Card) decimal.Decimal {
	return MinimumPayment(card, e.Policy)
}

// ReportOptions selects which report sections BuildReport computes
type ReportOptions struct {
	Optimize  bool
	Rank      bool
	Allocate  bool
	Scenarios bool
	// AllStrategies runs every strategy instead of only the configured one
	AllStrategies bool
}

// FullReport enables every section
var FullReport = ReportOptions{Optimize: true, Rank: true, Allocate: true, Scenarios: true, AllStrategies: true}

// BuildReport runs the requested calculations for a loaded configuration.
// Scenarios are chained: each applied step feeds its cards to the next.
func (e *Engine) BuildReport(ctx context.Context, cfg *domain.Configuration, opts ReportOptions) (*domain.Report, error) {
	ref := nowFunc()
	if cfg.ReferenceDate != nil {
		ref = *cfg.ReferenceDate
	}
	report := &domain.Report{ReferenceDate: ref, Policy: e.Policy}

	if opts.Optimize {
		res := e.OptimizePortfolio(cfg.Cards, e.Policy.TargetUtilization, ref)
		report.Optimization = &res
	}
	if opts.Rank {
		report.Priorities = e.RankByPriority(cfg.Cards, ref)
	}
	if opts.Allocate && cfg.Budget.IsPositive() {
		kinds := domain.StrategyKinds
		if !opts.AllStrategies && cfg.Strategy != "" {
			kinds = []domain.StrategyKind{cfg.Strategy}
		}
		for _, kind := range kinds {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			alloc, err := e.AllocateBudget(kind, cfg.Cards, cfg.Budget, ref)
			if err != nil {
				return nil, fmt.Errorf("allocate %s: %w", kind, err)
			}
			report.Allocations = append(report.Allocations, *alloc)
		}
	}
	if opts.Scenarios {
		baseline := e.CalculateBaseline(cfg.Cards)
		report.Baseline = &baseline
		current := cfg.Cards
		for i, req := range cfg.Scenarios {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			step := e.CalculateBaseline(current)
			res, err := e.RunScenario(req, current, ref)
			if err != nil {
				return nil, fmt.Errorf("scenario %d: %w", i, err)
			}
			name := req.Name
			if name == "" {
				name = string(req.Kind)
			}
			report.Scenarios = append(report.Scenarios, domain.ScenarioOutcome{
				Name:       name,
				Request:    req,
				Result:     res,
				Comparison: e.CompareScenarios(step, res),
			})
			if res.Applied {
				current = res.Cards
			}
		}
	}
	return report, nil
}
