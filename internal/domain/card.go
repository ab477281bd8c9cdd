package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card represents a revolving credit account as supplied by the caller.
// The engine only reads cards; every calculation returns new derived values.
type Card struct {
	ID           string           `yaml:"id" json:"id" validate:"required"`
	Name         string           `yaml:"name" json:"name" validate:"required"`
	CreditLimit  decimal.Decimal  `yaml:"credit_limit" json:"credit_limit" validate:"gt=0"`
	Balance      decimal.Decimal  `yaml:"balance" json:"balance" validate:"gte=0"`
	StatementDay int              `yaml:"statement_day" json:"statement_day" validate:"min=1,max=31"`
	DueDay       int              `yaml:"due_day" json:"due_day" validate:"min=1,max=31"`
	APR          *decimal.Decimal `yaml:"apr,omitempty" json:"apr,omitempty"` // annual percentage rate, e.g. 24.99
	ImageRef     string           `yaml:"image_ref,omitempty" json:"image_ref,omitempty"`

	// OpenedDate is optional; when present it is used to identify the oldest account.
	OpenedDate *time.Time `yaml:"opened_date,omitempty" json:"opened_date,omitempty"`
}

// Utilization returns balance / limit * 100. A non-positive limit yields zero.
func (c Card) Utilization() decimal.Decimal {
	return UtilizationOf(c.Balance, c.CreditLimit)
}

// AvailableCredit returns the unused portion of the limit (never negative)
func (c Card) AvailableCredit() decimal.Decimal {
	avail := c.CreditLimit.Sub(c.Balance)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// APRValue returns the card's APR, or zero when unknown
func (c Card) APRValue() decimal.Decimal {
	if c.APR == nil {
		return decimal.Zero
	}
	return *c.APR
}

// IsOverLimit reports whether the balance exceeds the credit limit
func (c Card) IsOverLimit() bool {
	return c.Balance.GreaterThan(c.CreditLimit)
}

// UtilizationOf computes balance / limit * 100 with a zero-limit guard
func UtilizationOf(balance, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		return decimal.Zero
	}
	return balance.Div(limit).Mul(decimal.NewFromInt(100))
}

// CloneCards returns a copy of the slice so callers' cards are never mutated
func CloneCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// FindCard returns the index of the card with the given ID, or -1
func FindCard(cards []Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}

// UtilizationStatus classifies a utilization level
type UtilizationStatus string

const (
	StatusGood      UtilizationStatus = "good"
	StatusMedium    UtilizationStatus = "medium"
	StatusHigh      UtilizationStatus = "high"
	StatusOverLimit UtilizationStatus = "overlimit"
)

// ClassifyUtilization maps a utilization percentage to a status:
// >100 overlimit, >30 high, >10 medium, otherwise good.
func ClassifyUtilization(utilization decimal.Decimal) UtilizationStatus {
	switch {
	case utilization.GreaterThan(decimal.NewFromInt(100)):
		return StatusOverLimit
	case utilization.GreaterThan(decimal.NewFromInt(30)):
		return StatusHigh
	case utilization.GreaterThan(decimal.NewFromInt(10)):
		return StatusMedium
	default:
		return StatusGood
	}
}
