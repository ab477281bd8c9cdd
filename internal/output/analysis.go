package output

import (
	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the best allocation strategy and the best
// applied scenario of a report.
type Recommendation struct {
	StrategyName  string
	StrategyKind  domain.StrategyKind
	StrategyScore int
	InterestSaved decimal.Decimal

	ScenarioName   string
	ScenarioImpact domain.ImpactRange
}

// AnalyzeReport picks the strategy with the highest estimated score impact
// (interest saved breaks ties) and the applied scenario with the best
// score-impact midpoint. Earlier entries win exact ties.
func AnalyzeReport(report *domain.Report) Recommendation {
	var rec Recommendation
	for i, s := range report.Allocations {
		better := i == 0 ||
			s.Impact.EstimatedScoreImpact > rec.StrategyScore ||
			(s.Impact.EstimatedScoreImpact == rec.StrategyScore && s.Impact.InterestSaved.GreaterThan(rec.InterestSaved))
		if better {
			rec.StrategyName = s.Name
			rec.StrategyKind = s.Kind
			rec.StrategyScore = s.Impact.EstimatedScoreImpact
			rec.InterestSaved = s.Impact.InterestSaved
		}
	}

	found := false
	for _, o := range report.Scenarios {
		if !o.Result.Applied {
			continue
		}
		if !found || o.Result.ScoreImpact.Midpoint() > rec.ScenarioImpact.Midpoint() {
			rec.ScenarioName = o.Name
			rec.ScenarioImpact = o.Result.ScoreImpact
			found = true
		}
	}
	return rec
}
