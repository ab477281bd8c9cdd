package integration

import (
	"context"
	"testing"

	"github.com/cardwise/utilization-optimizer/internal/calculation"
	"github.com/cardwise/utilization-optimizer/internal/config"
	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadReport(t *testing.T, opts calculation.ReportOptions) (*domain.Configuration, *domain.Report) {
	t.Helper()
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_portfolio.yaml")
	require.NoError(t, err)

	engine := calculation.NewEngineWithPolicy(cfg.Policy)
	report, err := engine.BuildReport(context.Background(), cfg, opts)
	require.NoError(t, err)
	return cfg, report
}

func TestPortfolioOptimization(t *testing.T) {
	_, report := loadReport(t, calculation.ReportOptions{Optimize: true})
	res := report.Optimization
	require.NotNil(t, res)

	assert.True(t, res.TotalCreditLimit.Equal(decimal.NewFromInt(27000)))
	assert.True(t, res.TotalCurrentBalance.Equal(decimal.NewFromInt(14000)))
	assert.True(t, res.TotalOptimizedBalance.Equal(decimal.NewFromInt(1250)))
	assert.InDelta(t, 51.85, res.CurrentOverallUtilization.InexactFloat64(), 0.01)
	assert.InDelta(t, 4.63, res.OptimizedOverallUtilization.InexactFloat64(), 0.01)
	assert.Equal(t, domain.ImpactRange{Min: 66, Max: 94}, res.EstimatedScoreImpact)

	require.Len(t, res.Plans, 3)
	assert.Equal(t, "travel", res.Plans[0].Card.ID)
	assert.Equal(t, "rewards", res.Plans[1].Card.ID)
	assert.Equal(t, "store", res.Plans[2].Card.ID)

	// every plan pays the full balance: optimization down to target, the rest by the due date
	for _, p := range res.Plans {
		assert.True(t, p.TotalPayment().Equal(p.Card.Balance), p.Card.ID)
	}
}

func TestPriorityAndAllocation(t *testing.T) {
	_, report := loadReport(t, calculation.ReportOptions{Rank: true, Allocate: true, AllStrategies: true})

	require.Len(t, report.Priorities, 3)
	assert.Equal(t, "travel", report.Priorities[0].CardID)
	assert.Equal(t, 71, report.Priorities[0].Score)
	assert.Equal(t, "rewards", report.Priorities[1].CardID)
	assert.Equal(t, 65, report.Priorities[1].Score)

	require.Len(t, report.Allocations, len(domain.StrategyKinds))
	for _, s := range report.Allocations {
		assert.True(t, s.TotalAllocated().LessThanOrEqual(decimal.NewFromInt(2500)), s.Kind)
		assert.True(t, s.Impact.NewUtilization.LessThan(s.Impact.CurrentUtilization), s.Kind)
	}

	maxScore := report.Allocations[0]
	assert.Equal(t, domain.StrategyMaxScore, maxScore.Kind)
	assert.Equal(t, "travel", maxScore.Allocations[0].CardID)
	assert.True(t, maxScore.Allocations[0].Payment.Equal(decimal.NewFromInt(2400)))
	assert.Equal(t, 20, maxScore.Impact.EstimatedScoreImpact)
}

func TestScenarioChain(t *testing.T) {
	cfg, report := loadReport(t, calculation.ReportOptions{Scenarios: true})

	require.NotNil(t, report.Baseline)
	require.Len(t, report.Scenarios, 4)
	for _, o := range report.Scenarios {
		assert.True(t, o.Result.Applied, o.Name)
	}

	pay := report.Scenarios[0]
	assert.InDelta(t, 44.44, pay.Result.OverallUtilization.InexactFloat64(), 0.01)
	assert.Equal(t, domain.NetPositive, pay.Comparison.NetChange)

	closure := report.Scenarios[1]
	assert.Len(t, closure.Result.Cards, 2)
	assert.InDelta(t, 48.0, closure.Result.OverallUtilization.InexactFloat64(), 0.001)
	assert.Equal(t, domain.NetNegative, closure.Comparison.NetChange)
	for _, w := range closure.Result.Warnings {
		assert.NotContains(t, w, "oldest")
	}

	transfer := report.Scenarios[2]
	travel := transfer.Result.Cards[domain.FindCard(transfer.Result.Cards, "travel")]
	assert.True(t, travel.Balance.Equal(decimal.NewFromInt(8545)))

	purchase := report.Scenarios[3]
	rewards := purchase.Result.Cards[domain.FindCard(purchase.Result.Cards, "rewards")]
	assert.True(t, rewards.Balance.Equal(decimal.NewFromInt(3900)))
	assert.Contains(t, purchase.Result.Recommendations[0], "after the Mar 15 statement")

	// the loaded configuration is never modified by the chain
	assert.Len(t, cfg.Cards, 3)
	assert.True(t, cfg.Cards[1].Balance.Equal(decimal.NewFromInt(9000)))
}
