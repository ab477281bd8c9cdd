package calculation

import (
	"fmt"
	"sort"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/cardwise/utilization-optimizer/pkg/dateutil"
	"github.com/cardwise/utilization-optimizer/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	maxAPRWeight   = 25
	maxLimitWeight = 15
	maxUtilImpact  = 40
)

// utilizationTier awards Points to cards whose utilization is above Above
type utilizationTier struct {
	Above  int64
	Points int
	Reason string
}

// thresholdBonus rewards cards one small payment away from a scoring boundary
type thresholdBonus struct {
	Lower  int64 // exclusive
	Upper  int64 // inclusive
	Points int
	Reason string
}

// urgencyTier awards Points when the statement closes within Days
type urgencyTier struct {
	Days   int
	Points int
}

var utilizationTiers = []utilizationTier{
	{Above: 90, Points: 40, Reason: "Utilization above 90% is severely hurting your score"},
	{Above: 75, Points: 35, Reason: "Utilization above 75% is heavily weighted against you"},
	{Above: 50, Points: 30, Reason: "Utilization above 50% is a significant score drag"},
	{Above: 30, Points: 20, Reason: "Utilization above 30% crosses the common scoring threshold"},
	{Above: 10, Points: 10, Reason: "Utilization above 10% leaves room for improvement"},
}

const lowUtilizationPoints = 5

var thresholdBonuses = []thresholdBonus{
	{Lower: 30, Upper: 35, Points: 5, Reason: "Just above 30%: a small payment drops it below the threshold"},
	{Lower: 50, Upper: 55, Points: 3, Reason: "Just above 50%: a small payment drops it below the threshold"},
}

var urgencyTiers = []urgencyTier{
	{Days: 3, Points: 20},
	{Days: 7, Points: 15},
	{Days: 14, Points: 10},
}

const relaxedUrgencyPoints = 5

// PriorityRanker scores cards for budget-constrained allocation
type PriorityRanker struct{}

// NewPriorityRanker creates a ranker
func NewPriorityRanker() *PriorityRanker {
	return &PriorityRanker{}
}

// Score computes the 0-100 priority of one card relative to the set it belongs to.
// Rank is left at zero; use Rank to order a full set.
func (pr *PriorityRanker) Score(card domain.Card, all []domain.Card, ref time.Time) domain.PriorityScore {
	ref = dateutil.StartOfDay(referenceOrNow(ref))
	maxAPR, maxLimit := card.APRValue(), card.CreditLimit
	for _, c := range all {
		maxAPR = money.Max(maxAPR, c.APRValue())
		maxLimit = money.Max(maxLimit, c.CreditLimit)
	}

	util := card.Utilization()
	var reasons []string
	var b domain.PriorityBreakdown

	b.UtilizationImpact = lowUtilizationPoints
	for _, tier := range utilizationTiers {
		if util.GreaterThan(decimal.NewFromInt(tier.Above)) {
			b.UtilizationImpact = tier.Points
			reasons = append(reasons, tier.Reason)
			break
		}
	}
	for _, bonus := range thresholdBonuses {
		if util.GreaterThan(decimal.NewFromInt(bonus.Lower)) && util.LessThanOrEqual(decimal.NewFromInt(bonus.Upper)) {
			b.UtilizationImpact += bonus.Points
			reasons = append(reasons, bonus.Reason)
		}
	}
	if b.UtilizationImpact > maxUtilImpact {
		b.UtilizationImpact = maxUtilImpact
	}

	apr := card.APRValue()
	b.APRWeight = weight(apr, maxAPR, maxAPRWeight)
	switch {
	case b.APRWeight >= 20:
		reasons = append(reasons, fmt.Sprintf("High APR (%s%%) makes carried balances expensive", apr.StringFixed(2)))
	case b.APRWeight > 0:
		reasons = append(reasons, fmt.Sprintf("Carries %s%% APR", apr.StringFixed(2)))
	}

	statement := dateutil.NextOccurrence(card.StatementDay, ref)
	days := dateutil.DaysUntil(ref, statement)
	b.TimeUrgency = relaxedUrgencyPoints
	for _, tier := range urgencyTiers {
		if days <= tier.Days {
			b.TimeUrgency = tier.Points
			reasons = append(reasons, fmt.Sprintf("Statement closes in %d days", days))
			break
		}
	}

	b.CreditLimitWeight = weight(card.CreditLimit, maxLimit, maxLimitWeight)
	if b.CreditLimitWeight >= 12 {
		reasons = append(reasons, fmt.Sprintf("Large %s limit moves overall utilization the most", money.Format(card.CreditLimit)))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Low utilization; minimum attention needed")
	}

	return domain.PriorityScore{
		CardID:      card.ID,
		CardName:    card.Name,
		Score:       b.Total(),
		Breakdown:   b,
		Reasoning:   reasons,
		Utilization: util,
	}
}

// Rank scores every card and orders them by descending score. Ties keep input order.
func (pr *PriorityRanker) Rank(cards []domain.Card, ref time.Time) []domain.PriorityScore {
	scores, _ := pr.rankIndexed(cards, ref)
	return scores
}

// rankIndexed also returns, for each ranked entry, the index of its card in the input.
func (pr *PriorityRanker) rankIndexed(cards []domain.Card, ref time.Time) ([]domain.PriorityScore, []int) {
	ref = referenceOrNow(ref)
	order := make([]int, len(cards))
	scores := make([]domain.PriorityScore, len(cards))
	for i, c := range cards {
		order[i] = i
		scores[i] = pr.Score(c, cards, ref)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]].Score > scores[order[j]].Score
	})

	ranked := make([]domain.PriorityScore, len(cards))
	for pos, idx := range order {
		s := scores[idx]
		s.Rank = pos + 1
		ranked[pos] = s
	}
	return ranked, order
}

// weight scales value/ceiling onto 0..points, rounded
func weight(value, ceiling decimal.Decimal, points int64) int {
	if !ceiling.IsPositive() || !value.IsPositive() {
		return 0
	}
	return int(value.Div(ceiling).Mul(decimal.NewFromInt(points)).Round(0).IntPart())
}
