package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCard_Utilization(t *testing.T) {
	testCases := []struct {
		limit    string
		balance  string
		expected string
		status   UtilizationStatus
		desc     string
	}{
		{"10000", "0", "0", StatusGood, "empty card"},
		{"10000", "1000", "10", StatusGood, "exactly 10 percent"},
		{"10000", "3000", "30", StatusMedium, "exactly 30 percent"},
		{"10000", "3001", "30.01", StatusHigh, "just above 30 percent"},
		{"10000", "10000", "100", StatusHigh, "maxed out"},
		{"10000", "12000", "120", StatusOverLimit, "over limit"},
		{"0", "500", "0", StatusGood, "zero limit"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			card := Card{CreditLimit: decimal.RequireFromString(tc.limit), Balance: decimal.RequireFromString(tc.balance)}
			util := card.Utilization()
			assert.True(t, util.Equal(decimal.RequireFromString(tc.expected)), "got %s", util)
			assert.Equal(t, tc.status, ClassifyUtilization(util))
		})
	}
}

func TestCard_AvailableCreditAndLimit(t *testing.T) {
	card := Card{CreditLimit: decimal.NewFromInt(1000), Balance: decimal.NewFromInt(1200)}
	assert.True(t, card.AvailableCredit().IsZero())
	assert.True(t, card.IsOverLimit())

	card.Balance = decimal.NewFromInt(400)
	assert.True(t, card.AvailableCredit().Equal(decimal.NewFromInt(600)))
	assert.False(t, card.IsOverLimit())
}

func TestCard_APRValue(t *testing.T) {
	card := Card{}
	assert.True(t, card.APRValue().IsZero())

	apr := decimal.RequireFromString("24.99")
	card.APR = &apr
	assert.True(t, card.APRValue().Equal(apr))
}

func TestCloneAndFindCards(t *testing.T) {
	cards := []Card{{ID: "a", Balance: decimal.NewFromInt(1)}, {ID: "b"}}
	clone := CloneCards(cards)
	clone[0].Balance = decimal.NewFromInt(99)

	assert.True(t, cards[0].Balance.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, 1, FindCard(cards, "b"))
	assert.Equal(t, -1, FindCard(cards, "missing"))
	assert.Empty(t, CloneCards(nil))
}

func TestPolicy_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultPolicy(), Policy{}.WithDefaults())

	custom := Policy{TargetUtilization: decimal.RequireFromString("0.09"), OptimizationLeadDays: 4}.WithDefaults()
	assert.True(t, custom.TargetUtilization.Equal(decimal.RequireFromString("0.09")))
	assert.Equal(t, 4, custom.OptimizationLeadDays)
	assert.True(t, custom.MinimumPaymentFloor.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 10, custom.HardInquiryPenaltyMax)
}

func TestImpactRange_Midpoint(t *testing.T) {
	assert.Equal(t, 0.0, ImpactRange{}.Midpoint())
	assert.Equal(t, 8.5, ImpactRange{Min: 5, Max: 12}.Midpoint())
	assert.Equal(t, -10.0, ImpactRange{Min: -15, Max: -5}.Midpoint())
}
