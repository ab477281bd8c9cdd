package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentPurpose tags why a payment is scheduled
type PaymentPurpose string

const (
	// PurposeOptimization payments land before the statement date to lower the reported balance
	PurposeOptimization PaymentPurpose = "optimization"
	// PurposeBalance payments land by the due date to avoid interest
	PurposeBalance PaymentPurpose = "balance"
)

// Payment is a single scheduled payment. Notification and export layers consume this shape.
type Payment struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Purpose     PaymentPurpose  `json:"purpose"`
	Description string          `json:"description"`
}

// CardPaymentPlan is the computed schedule for one card
type CardPaymentPlan struct {
	Card               Card              `json:"card"`
	CurrentUtilization decimal.Decimal   `json:"current_utilization"`
	TargetUtilization  decimal.Decimal   `json:"target_utilization"`
	NewUtilization     decimal.Decimal   `json:"new_utilization"`
	TargetBalance      decimal.Decimal   `json:"target_balance"`
	Payments           []Payment         `json:"payments"`
	NextStatementDate  time.Time         `json:"next_statement_date"`
	NextDueDate        time.Time         `json:"next_due_date"`
	NeedsOptimization  bool              `json:"needs_optimization"`
	IsOverLimit        bool              `json:"is_over_limit"`
	IsAlreadyOptimal   bool              `json:"is_already_optimal"`
	Status             UtilizationStatus `json:"status"`
}

// TotalPayment sums every scheduled payment
func (p CardPaymentPlan) TotalPayment() decimal.Decimal {
	total := decimal.Zero
	for _, pay := range p.Payments {
		total = total.Add(pay.Amount)
	}
	return total
}

// ReportedBalance is the balance left at the statement date once the
// optimization payments have posted.
func (p CardPaymentPlan) ReportedBalance() decimal.Decimal {
	return p.Card.Balance.Sub(p.TotalFor(PurposeOptimization))
}

// TotalFor sums the scheduled payments with the given purpose
func (p CardPaymentPlan) TotalFor(purpose PaymentPurpose) decimal.Decimal {
	total := decimal.Zero
	for _, pay := range p.Payments {
		if pay.Purpose == purpose {
			total = total.Add(pay.Amount)
		}
	}
	return total
}

// ImpactRange is an estimated credit-score change in points
type ImpactRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Midpoint returns the average of the range bounds
func (r ImpactRange) Midpoint() float64 {
	return float64(r.Min+r.Max) / 2
}

// OptimizationResult aggregates per-card plans across a portfolio
type OptimizationResult struct {
	Plans                       []CardPaymentPlan `json:"plans"`
	TotalCreditLimit            decimal.Decimal   `json:"total_credit_limit"`
	TotalCurrentBalance         decimal.Decimal   `json:"total_current_balance"`
	TotalOptimizedBalance       decimal.Decimal   `json:"total_optimized_balance"`
	CurrentOverallUtilization   decimal.Decimal   `json:"current_overall_utilization"`
	OptimizedOverallUtilization decimal.Decimal   `json:"optimized_overall_utilization"`
	UtilizationImprovement      decimal.Decimal   `json:"utilization_improvement"`
	EstimatedScoreImpact        ImpactRange       `json:"estimated_score_impact"`
	CardsNeedingOptimization    int               `json:"cards_needing_optimization"`
}

// Payments flattens every plan's payments in plan order
func (r OptimizationResult) Payments() []CardPayment {
	var out []CardPayment
	for _, p := range r.Plans {
		for _, pay := range p.Payments {
			out = append(out, CardPayment{CardID: p.Card.ID, CardName: p.Card.Name, Payment: pay})
		}
	}
	return out
}

// CardPayment ties a payment to the card it belongs to
type CardPayment struct {
	CardID   string `json:"card_id"`
	CardName string `json:"card_name"`
	Payment
}
