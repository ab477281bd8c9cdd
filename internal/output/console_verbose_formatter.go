package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cardwise/utilization-optimizer/internal/domain"
)

// ConsoleVerboseFormatter renders the full report as styled terminal tables.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, renderTitle("CREDIT UTILIZATION REPORT  "+FormatDate(report.ReferenceDate)))
	fmt.Fprintln(&buf, renderSection("Key assumptions"))
	assumptions := report.Assumptions
	if len(assumptions) == 0 {
		assumptions = GenerateAssumptions(report.Policy)
	}
	for _, a := range assumptions {
		fmt.Fprintf(&buf, "  • %s\n", a)
	}

	if report.Optimization != nil {
		writeOptimization(&buf, report.Optimization)
	}
	if len(report.Priorities) > 0 {
		writePriorities(&buf, report.Priorities)
	}
	if len(report.Allocations) > 0 {
		writeAllocations(&buf, report.Allocations)
	}
	if report.Baseline != nil {
		writeScenarios(&buf, report.Baseline, report.Scenarios)
	}

	rec := AnalyzeReport(report)
	if rec.StrategyName != "" || rec.ScenarioName != "" {
		fmt.Fprintln(&buf, renderSection("Recommendation"))
		if rec.StrategyName != "" {
			fmt.Fprintf(&buf, "  Best strategy: %s (+%d pts, %s interest avoided next month)\n",
				rec.StrategyName, rec.StrategyScore, FormatCurrency(rec.InterestSaved))
		}
		if rec.ScenarioName != "" {
			fmt.Fprintf(&buf, "  Best scenario: %s (%s)\n", rec.ScenarioName, FormatImpact(rec.ScenarioImpact))
		}
	}
	return buf.Bytes(), nil
}

func writeOptimization(buf *bytes.Buffer, res *domain.OptimizationResult) {
	fmt.Fprintln(buf, renderSection("Statement-date optimization"))

	cards := table{Headers: []string{"Card", "Limit", "Balance", "Utilization", "Target Balance", "Statement", "Due"}}
	for _, p := range res.Plans {
		util := FormatPercentage(p.CurrentUtilization)
		cards.Rows = append(cards.Rows, []string{
			p.Card.Name,
			FormatCurrency(p.Card.CreditLimit),
			FormatCurrency(p.Card.Balance),
			styledUtilization(p.Status, util),
			FormatCurrency(p.TargetBalance),
			FormatDate(p.NextStatementDate),
			FormatDate(p.NextDueDate),
		})
	}
	buf.WriteString(renderTable(cards))

	schedule := table{Title: "Payment schedule", Headers: []string{"Date", "Card", "Amount", "Purpose"}}
	var notes []string
	for _, cp := range res.Payments() {
		schedule.Rows = append(schedule.Rows, []string{FormatDate(cp.Date), cp.CardName, FormatCurrency(cp.Amount), string(cp.Purpose)})
		if cp.Description != "" {
			notes = append(notes, fmt.Sprintf("%s: %s", cp.CardName, cp.Description))
		}
	}
	if len(schedule.Rows) > 0 {
		buf.WriteString(renderTable(schedule))
		for _, n := range notes {
			buf.WriteString(bullet(headerStyle, "›", n))
		}
	}

	fmt.Fprintf(buf, "  Overall utilization: %s -> %s (%s points)\n",
		FormatPercentage(res.CurrentOverallUtilization), FormatPercentage(res.OptimizedOverallUtilization),
		res.UtilizationImprovement.StringFixed(1))
	fmt.Fprintf(buf, "  Estimated score impact: %s\n", FormatImpact(res.EstimatedScoreImpact))
	fmt.Fprintf(buf, "  Cards needing optimization: %d of %d\n", res.CardsNeedingOptimization, len(res.Plans))
}

func writePriorities(buf *bytes.Buffer, scores []domain.PriorityScore) {
	fmt.Fprintln(buf, renderSection("Payment priority"))
	t := table{Headers: []string{"Card", "Rank", "Score", "Utilization", "Util", "APR", "Urgency", "Limit"}}
	for _, s := range scores {
		b := s.Breakdown
		t.Rows = append(t.Rows, []string{
			s.CardName, intToString(s.Rank), intToString(s.Score),
			styledUtilization(domain.ClassifyUtilization(s.Utilization), FormatPercentage(s.Utilization)),
			intToString(b.UtilizationImpact), intToString(b.APRWeight), intToString(b.TimeUrgency), intToString(b.CreditLimitWeight),
		})
	}
	buf.WriteString(renderTable(t))
	for _, s := range scores {
		fmt.Fprintf(buf, "  %d. %s: %s\n", s.Rank, s.CardName, strings.Join(s.Reasoning, "; "))
	}
}

func writeAllocations(buf *bytes.Buffer, strategies []domain.AllocationStrategy) {
	fmt.Fprintln(buf, renderSection("Budget allocation"))
	for _, s := range strategies {
		t := table{
			Title:   fmt.Sprintf("%s (budget %s)", s.Name, FormatCurrency(s.Budget)),
			Headers: []string{"Card", "Payment", "Minimum", "New Balance", "New Util", "Priority"},
		}
		for _, a := range s.Allocations {
			t.Rows = append(t.Rows, []string{
				a.CardName, FormatCurrency(a.Payment), FormatCurrency(a.MinimumPayment),
				FormatCurrency(a.NewBalance),
				styledUtilization(domain.ClassifyUtilization(a.NewUtilization), FormatPercentage(a.NewUtilization)),
				intToString(a.PriorityRank),
			})
		}
		buf.WriteString(renderTable(t))
		im := s.Impact
		fmt.Fprintf(buf, "  %s -> %s overall, +%d pts est., %s interest avoided, %d under 30%%, %d under 10%%, %s of optimal\n",
			FormatPercentage(im.CurrentUtilization), FormatPercentage(im.NewUtilization), im.EstimatedScoreImpact,
			FormatCurrency(im.InterestSaved), im.CardsUnder30, im.CardsUnder10, FormatPercentage(im.PercentOfOptimal))
	}
}

func writeScenarios(buf *bytes.Buffer, baseline *domain.ScenarioResult, outcomes []domain.ScenarioOutcome) {
	fmt.Fprintln(buf, renderSection("What-if scenarios"))
	fmt.Fprintf(buf, "  Baseline: %s overall across %d cards, %s available\n",
		FormatPercentage(baseline.OverallUtilization), len(baseline.Cards), FormatCurrency(baseline.Metrics.AvailableCredit))

	for i, o := range outcomes {
		r := o.Result
		state := goodStyle.Render("applied")
		if !r.Applied {
			state = warnStyle.Render("refused")
		}
		fmt.Fprintf(buf, "\n  %d. %s [%s]\n", i+1, headerStyle.Render(o.Name), state)
		fmt.Fprintf(buf, "     Utilization %s (%s pts change), score %s, net %s\n",
			FormatPercentage(r.OverallUtilization), r.UtilizationChange.StringFixed(1), FormatImpact(r.ScoreImpact), o.Comparison.NetChange)
		for _, w := range r.Warnings {
			buf.WriteString(bullet(warnStyle, "   !", w))
		}
		for _, rec := range r.Recommendations {
			buf.WriteString(bullet(goodStyle, "   +", rec))
		}
		for _, imp := range o.Comparison.Improvements {
			buf.WriteString(bullet(goodStyle, "   ▲", imp))
		}
		for _, d := range o.Comparison.Declines {
			buf.WriteString(bullet(warnStyle, "   ▼", d))
		}
	}
}
