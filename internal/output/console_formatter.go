package output

import (
	"bytes"
	"fmt"

	"github.com/cardwise/utilization-optimizer/internal/domain"
)

// ConsoleFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CREDIT UTILIZATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Reference date: %s\n", FormatDate(report.ReferenceDate))

	if res := report.Optimization; res != nil {
		fmt.Fprintf(&buf, "Utilization: %s -> %s, impact %s\n",
			FormatPercentage(res.CurrentOverallUtilization), FormatPercentage(res.OptimizedOverallUtilization), FormatImpact(res.EstimatedScoreImpact))
		for _, cp := range res.Payments() {
			fmt.Fprintf(&buf, "  %s %-20s %12s  %s\n", FormatDate(cp.Date), cp.CardName, FormatCurrency(cp.Amount), cp.Purpose)
		}
	}
	for _, s := range report.Priorities {
		fmt.Fprintf(&buf, "Priority %d: %s (score %d)\n", s.Rank, s.CardName, s.Score)
	}
	for _, s := range report.Allocations {
		fmt.Fprintf(&buf, "%s: allocated=%s newUtil=%s impact=+%d\n",
			s.Name, FormatCurrency(s.TotalAllocated()), FormatPercentage(s.Impact.NewUtilization), s.Impact.EstimatedScoreImpact)
	}
	for _, o := range report.Scenarios {
		fmt.Fprintf(&buf, "Scenario %s: applied=%t util=%s impact=%s net=%s\n",
			o.Name, o.Result.Applied, FormatPercentage(o.Result.OverallUtilization), FormatImpact(o.Result.ScoreImpact), o.Comparison.NetChange)
	}

	rec := AnalyzeReport(report)
	if rec.StrategyName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s\n", rec.StrategyName)
	}
	return buf.Bytes(), nil
}
