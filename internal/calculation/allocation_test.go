package calculation

import (
	"errors"
	"testing"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocationCards() []domain.Card {
	return []domain.Card{
		withAPR(newCard("a1", "10000", "5000", 15, 10), "20"),
		withAPR(newCard("a2", "5000", "4000", 20, 15), "25"),
		withAPR(newCard("a3", "2000", "100", 5, 28), "15"),
	}
}

func newTestAllocator() *BudgetAllocator {
	return NewBudgetAllocator(domain.DefaultPolicy(), nil, nil)
}

func allocationFor(t *testing.T, s *domain.AllocationStrategy, id string) domain.CardAllocation {
	t.Helper()
	for _, a := range s.Allocations {
		if a.CardID == id {
			return a
		}
	}
	t.Fatalf("no allocation for %s", id)
	return domain.CardAllocation{}
}

func TestMinimumPayment(t *testing.T) {
	policy := domain.DefaultPolicy()
	tests := []struct {
		name    string
		balance string
		want    string
	}{
		{"zero balance", "0", "0"},
		{"floor below balance", "100", "25"},
		{"balance below floor", "10", "10"},
		{"ratio above floor", "5000", "100"},
		{"ratio rounds to cents", "2000.50", "40.01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinimumPayment(newCard("m", "10000", tt.balance, 1, 1), policy)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestAllocateInsufficientBudget(t *testing.T) {
	_, err := newTestAllocator().Allocate(domain.StrategyMaxScore, allocationCards(), dec("200"), day(2025, 3, 1))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientBudget))
	var budgetErr *InsufficientBudgetError
	require.True(t, errors.As(err, &budgetErr))
	assert.True(t, budgetErr.Required.Equal(dec("205")))
	assert.True(t, budgetErr.Shortfall.Equal(dec("5")))
}

func TestAllocateUnknownStrategy(t *testing.T) {
	_, err := newTestAllocator().Allocate("snowball", allocationCards(), dec("1000"), day(2025, 3, 1))
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestAllocateMaxScore(t *testing.T) {
	res, err := newTestAllocator().Allocate(domain.StrategyMaxScore, allocationCards(), dec("3205"), day(2025, 3, 1))
	require.NoError(t, err)

	require.Len(t, res.Allocations, 3)
	assert.Equal(t, "a2", res.Allocations[0].CardID)
	assert.Equal(t, "a1", res.Allocations[1].CardID)
	assert.Equal(t, "a3", res.Allocations[2].CardID)

	a2 := allocationFor(t, res, "a2")
	assert.True(t, a2.Payment.Equal(dec("2500")), "a2 payment %s", a2.Payment)
	assert.True(t, a2.NewBalance.Equal(dec("1500")))
	assert.True(t, a2.NewUtilization.Equal(dec("30")))
	assert.Equal(t, 1, a2.PriorityRank)
	assert.Equal(t, "Paid down to 30% utilization", a2.Reasoning)

	a1 := allocationFor(t, res, "a1")
	assert.True(t, a1.Payment.Equal(dec("680")), "a1 payment %s", a1.Payment)
	assert.True(t, a1.NewBalance.Equal(dec("4320")))
	assert.Contains(t, a1.Reasoning, "Budget exhausted")

	a3 := allocationFor(t, res, "a3")
	assert.True(t, a3.Payment.Equal(dec("25")))
	assert.Equal(t, "Minimum payment only", a3.Reasoning)

	assert.True(t, res.TotalAllocated().Equal(dec("3205")))
	assert.Equal(t, 24, res.Impact.EstimatedScoreImpact)
	assert.True(t, res.Impact.InterestSaved.Equal(dec("63.73")), "interest %s", res.Impact.InterestSaved)
	assert.Equal(t, 1, res.Impact.CardsUnder30)
	assert.Equal(t, 1, res.Impact.CardsUnder10)
	assert.True(t, res.Impact.PercentOfOptimal.Equal(dec("38.85")), "percent %s", res.Impact.PercentOfOptimal)
	assert.True(t, res.Impact.NewUtilization.LessThan(res.Impact.CurrentUtilization))
}

func TestAllocateAvalancheAndUtilizationFocus(t *testing.T) {
	for _, kind := range []domain.StrategyKind{domain.StrategyMinInterest, domain.StrategyUtilizationFocus} {
		t.Run(string(kind), func(t *testing.T) {
			res, err := newTestAllocator().Allocate(kind, allocationCards(), dec("1205"), day(2025, 3, 1))
			require.NoError(t, err)

			assert.Equal(t, "a2", res.Allocations[0].CardID)
			assert.Equal(t, "a1", res.Allocations[1].CardID)
			assert.True(t, res.Allocations[0].Payment.Equal(dec("1080")))
			assert.True(t, res.Allocations[1].Payment.Equal(dec("100")))
			assert.True(t, res.TotalAllocated().Equal(dec("1205")))
		})
	}
}

func TestAllocateEqualDistribution(t *testing.T) {
	res, err := newTestAllocator().Allocate(domain.StrategyEqualDistribution, allocationCards(), dec("1500"), day(2025, 3, 1))
	require.NoError(t, err)

	assert.Equal(t, []string{"a1", "a2", "a3"}, []string{res.Allocations[0].CardID, res.Allocations[1].CardID, res.Allocations[2].CardID})
	assert.True(t, res.Allocations[0].Payment.Equal(dec("500")))
	assert.True(t, res.Allocations[1].Payment.Equal(dec("500")))
	// capped at the balance
	assert.True(t, res.Allocations[2].Payment.Equal(dec("100")))
	assert.True(t, res.Allocations[2].NewBalance.IsZero())
}

func TestAllocateInvariants(t *testing.T) {
	budgets := []string{"205", "600", "1205", "3205", "50000"}
	for _, kind := range domain.StrategyKinds {
		for _, b := range budgets {
			t.Run(string(kind)+"/"+b, func(t *testing.T) {
				cards := allocationCards()
				res, err := newTestAllocator().Allocate(kind, cards, dec(b), day(2025, 3, 1))
				require.NoError(t, err)

				assert.True(t, res.TotalAllocated().LessThanOrEqual(dec(b)))
				for _, a := range res.Allocations {
					idx := domain.FindCard(cards, a.CardID)
					require.GreaterOrEqual(t, idx, 0)
					assert.True(t, a.Payment.GreaterThanOrEqual(a.MinimumPayment))
					assert.True(t, a.Payment.LessThanOrEqual(cards[idx].Balance))
					assert.True(t, a.NewBalance.GreaterThanOrEqual(decimal.Zero))
				}
				// inputs untouched
				assert.True(t, cards[0].Balance.Equal(dec("5000")))
			})
		}
	}
}

func TestAllocateFullPayoffWithLargeBudget(t *testing.T) {
	res, err := newTestAllocator().Allocate(domain.StrategyMaxScore, allocationCards(), dec("50000"), day(2025, 3, 1))
	require.NoError(t, err)
	assert.True(t, res.TotalAllocated().Equal(dec("9100")))
	assert.True(t, res.Impact.NewUtilization.IsZero())
	assert.True(t, res.Impact.PercentOfOptimal.Equal(dec("100")))
}

func TestAllocateNoCards(t *testing.T) {
	res, err := newTestAllocator().Allocate(domain.StrategyEqualDistribution, nil, dec("100"), day(2025, 3, 1))
	require.NoError(t, err)
	assert.Empty(t, res.Allocations)
	assert.True(t, res.Impact.PercentOfOptimal.Equal(dec("100")))
}
