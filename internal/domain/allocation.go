package domain

import "github.com/shopspring/decimal"

// StrategyKind selects a budget distribution policy
type StrategyKind string

const (
	StrategyMaxScore          StrategyKind = "max_score"
	StrategyMinInterest       StrategyKind = "min_interest"
	StrategyUtilizationFocus  StrategyKind = "utilization_focus"
	StrategyEqualDistribution StrategyKind = "equal_distribution"
)

// StrategyKinds lists every supported strategy in presentation order
var StrategyKinds = []StrategyKind{
	StrategyMaxScore,
	StrategyMinInterest,
	StrategyUtilizationFocus,
	StrategyEqualDistribution,
}

// CardAllocation is one card's share of a budget
type CardAllocation struct {
	CardID         string          `json:"card_id"`
	CardName       string          `json:"card_name"`
	Payment        decimal.Decimal `json:"payment"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	NewUtilization decimal.Decimal `json:"new_utilization"`
	PriorityRank   int             `json:"priority_rank"`
	Reasoning      string          `json:"reasoning"`
}

// ImpactSummary describes the portfolio effect of an allocation
type ImpactSummary struct {
	CurrentUtilization     decimal.Decimal `json:"current_utilization"`
	NewUtilization         decimal.Decimal `json:"new_utilization"`
	UtilizationImprovement decimal.Decimal `json:"utilization_improvement"`
	EstimatedScoreImpact   int             `json:"estimated_score_impact"`
	InterestSaved          decimal.Decimal `json:"interest_saved"`
	CardsUnder30           int             `json:"cards_under_30"`
	CardsUnder10           int             `json:"cards_under_10"`
	PercentOfOptimal       decimal.Decimal `json:"percent_of_optimal"`
}

// AllocationStrategy is the result of distributing a budget with one policy
type AllocationStrategy struct {
	Kind        StrategyKind     `json:"kind"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Budget      decimal.Decimal  `json:"budget"`
	Allocations []CardAllocation `json:"allocations"`
	Impact      ImpactSummary    `json:"impact"`
}

// TotalAllocated sums every card's payment
func (s AllocationStrategy) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Allocations {
		total = total.Add(a.Payment)
	}
	return total
}
