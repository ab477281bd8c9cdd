package domain

import "github.com/shopspring/decimal"

// PriorityBreakdown itemizes the four weighted components of a priority score
type PriorityBreakdown struct {
	UtilizationImpact int `json:"utilization_impact"`  // 0-40
	APRWeight         int `json:"apr_weight"`          // 0-25
	TimeUrgency       int `json:"time_urgency"`        // 0-20
	CreditLimitWeight int `json:"credit_limit_weight"` // 0-15
}

// Total sums the components
func (b PriorityBreakdown) Total() int {
	return b.UtilizationImpact + b.APRWeight + b.TimeUrgency + b.CreditLimitWeight
}

// PriorityScore ranks a card for budget-constrained allocation
type PriorityScore struct {
	CardID      string            `json:"card_id"`
	CardName    string            `json:"card_name"`
	Score       int               `json:"score"`
	Breakdown   PriorityBreakdown `json:"breakdown"`
	Reasoning   []string          `json:"reasoning"`
	Rank        int               `json:"rank"`
	Utilization decimal.Decimal   `json:"utilization"`
}
