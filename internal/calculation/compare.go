package calculation

import (
	"fmt"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/cardwise/utilization-optimizer/pkg/money"
)

// CompareScenarios classifies each tracked metric of scenario against baseline
// as an improvement or a decline. Unchanged metrics are not reported.
func CompareScenarios(baseline, scenario domain.ScenarioResult) domain.ComparisonResult {
	res := domain.ComparisonResult{Improvements: []string{}, Declines: []string{}}
	add := func(improved bool, msg string) {
		if improved {
			res.Improvements = append(res.Improvements, msg)
		} else {
			res.Declines = append(res.Declines, msg)
		}
	}

	// lower is better
	if c := scenario.OverallUtilization.Cmp(baseline.OverallUtilization); c != 0 {
		add(c < 0, fmt.Sprintf("Overall utilization %s from %s to %s", direction(c), money.FormatPercent(baseline.OverallUtilization), money.FormatPercent(scenario.OverallUtilization)))
	}
	if b, s := baseline.Metrics.CardsOver30, scenario.Metrics.CardsOver30; b != s {
		add(s < b, fmt.Sprintf("Cards over 30%% utilization %s from %d to %d", direction(s-b), b, s))
	}

	// higher is better
	if c := scenario.Metrics.AvailableCredit.Cmp(baseline.Metrics.AvailableCredit); c != 0 {
		add(c > 0, fmt.Sprintf("Available credit %s from %s to %s", direction(c), money.Format(baseline.Metrics.AvailableCredit), money.Format(scenario.Metrics.AvailableCredit)))
	}
	if b, s := baseline.ScoreImpact.Midpoint(), scenario.ScoreImpact.Midpoint(); b != s {
		add(s > b, fmt.Sprintf("Estimated score impact %s from %+.1f to %+.1f points", direction(cmpFloat(s, b)), b, s))
	}

	switch {
	case len(res.Improvements) > len(res.Declines):
		res.NetChange = domain.NetPositive
	case len(res.Declines) > len(res.Improvements):
		res.NetChange = domain.NetNegative
	default:
		res.NetChange = domain.NetNeutral
	}
	return res
}

func direction(c int) string {
	if c < 0 {
		return "decreases"
	}
	return "increases"
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
