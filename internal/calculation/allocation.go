package calculation

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/cardwise/utilization-optimizer/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientBudget is matched by every InsufficientBudgetError
	ErrInsufficientBudget = errors.New("insufficient budget")
	// ErrUnknownStrategy is returned for an unrecognized strategy kind
	ErrUnknownStrategy = errors.New("unknown allocation strategy")
)

// InsufficientBudgetError reports a budget below the sum of minimum payments
type InsufficientBudgetError struct {
	Required  decimal.Decimal
	Budget    decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("insufficient budget: minimum payments require %s, budget is %s (short %s)",
		money.Format(e.Required), money.Format(e.Budget), money.Format(e.Shortfall))
}

// Is lets errors.Is match ErrInsufficientBudget
func (e *InsufficientBudgetError) Is(target error) bool {
	return target == ErrInsufficientBudget
}

// maxScoreThresholds are paid down in order, highest first
var maxScoreThresholds = []int64{90, 75, 50, 30, 10, 0}

// crossingBonus is awarded when overall utilization falls to or below Threshold
type crossingBonus struct {
	Threshold int64
	Points    int
}

var allocationCrossingBonuses = []crossingBonus{
	{Threshold: 50, Points: 15},
	{Threshold: 30, Points: 20},
	{Threshold: 10, Points: 30},
}

var strategyInfo = map[domain.StrategyKind]struct{ name, description string }{
	domain.StrategyMaxScore: {
		"Maximize Score Impact",
		"Pays cards down past the 90/75/50/30/10% thresholds in priority order to get the largest score gain for the budget.",
	},
	domain.StrategyMinInterest: {
		"Minimize Interest (Avalanche)",
		"Sends extra money to the highest-APR card first, paying each off before moving on.",
	},
	domain.StrategyUtilizationFocus: {
		"Utilization Focus",
		"Sends extra money to the most utilized card first, paying each off before moving on.",
	},
	domain.StrategyEqualDistribution: {
		"Equal Distribution",
		"Splits the budget evenly across all cards, capped at each card's balance.",
	},
}

// MinimumPayment is the larger of the policy floor and the balance ratio, never above the balance
func MinimumPayment(card domain.Card, policy domain.Policy) decimal.Decimal {
	if !card.Balance.IsPositive() {
		return decimal.Zero
	}
	policy = policy.WithDefaults()
	m := money.Round(money.Max(policy.MinimumPaymentFloor, card.Balance.Mul(policy.MinimumPaymentRatio)))
	return money.Min(m, card.Balance)
}

// BudgetAllocator distributes a fixed budget across cards
type BudgetAllocator struct {
	Policy domain.Policy
	Ranker *PriorityRanker
	Logger Logger
}

// NewBudgetAllocator creates an allocator
func NewBudgetAllocator(policy domain.Policy, ranker *PriorityRanker, logger Logger) *BudgetAllocator {
	if ranker == nil {
		ranker = NewPriorityRanker()
	}
	return &BudgetAllocator{Policy: policy.WithDefaults(), Ranker: ranker, Logger: loggerOrNop(logger)}
}

// allocationState tracks payments and balances while a strategy runs
type allocationState struct {
	cards     []domain.Card
	payments  []decimal.Decimal
	balances  []decimal.Decimal
	reasons   []string
	remaining decimal.Decimal
}

func (s *allocationState) pay(idx int, amount decimal.Decimal) decimal.Decimal {
	amount = money.Min(amount, s.remaining)
	amount = money.Min(amount, s.balances[idx])
	if !amount.IsPositive() {
		return decimal.Zero
	}
	s.payments[idx] = s.payments[idx].Add(amount)
	s.balances[idx] = s.balances[idx].Sub(amount)
	s.remaining = s.remaining.Sub(amount)
	return amount
}

func (s *allocationState) payOff(order []int, reason string) {
	for _, idx := range order {
		if !s.remaining.IsPositive() {
			return
		}
		if s.pay(idx, s.balances[idx]).IsPositive() {
			s.reasons[idx] = reason
		}
	}
}

func (s *allocationState) utilization(idx int) decimal.Decimal {
	return domain.UtilizationOf(s.balances[idx], s.cards[idx].CreditLimit)
}

// Allocate distributes budget across cards with the given strategy. Every card
// first receives its minimum payment; a budget below the sum of minimums fails
// with an *InsufficientBudgetError.
func (ba *BudgetAllocator) Allocate(kind domain.StrategyKind, cards []domain.Card, budget decimal.Decimal, ref time.Time) (*domain.AllocationStrategy, error) {
	info, ok := strategyInfo[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
	ref = referenceOrNow(ref)

	state := &allocationState{
		cards:    cards,
		payments: make([]decimal.Decimal, len(cards)),
		balances: make([]decimal.Decimal, len(cards)),
		reasons:  make([]string, len(cards)),
	}
	minimums := make([]decimal.Decimal, len(cards))
	required := decimal.Zero
	for i, c := range cards {
		minimums[i] = MinimumPayment(c, ba.Policy)
		required = required.Add(minimums[i])
		state.payments[i] = minimums[i]
		state.balances[i] = c.Balance.Sub(minimums[i])
		state.reasons[i] = "Minimum payment only"
		if minimums[i].IsZero() {
			state.reasons[i] = "No balance to pay"
		}
	}
	if budget.LessThan(required) {
		err := &InsufficientBudgetError{Required: required, Budget: budget, Shortfall: required.Sub(budget)}
		ba.Logger.Warnf("allocation %s refused: %v", kind, err)
		return nil, err
	}
	state.remaining = budget.Sub(required)

	priorities, priorityOrder := ba.Ranker.rankIndexed(cards, ref)
	ranks := make([]int, len(cards))
	for pos, idx := range priorityOrder {
		ranks[idx] = priorities[pos].Rank
	}

	var order []int
	switch kind {
	case domain.StrategyMaxScore:
		order = priorityOrder
		ba.allocateMaxScore(state, order)
	case domain.StrategyMinInterest:
		order = sortedIndexes(cards, func(a, b domain.Card) bool { return a.APRValue().GreaterThan(b.APRValue()) })
		state.payOff(order, "Highest APR first: extra budget pays this card down")
	case domain.StrategyUtilizationFocus:
		order = sortedIndexes(cards, func(a, b domain.Card) bool { return a.Utilization().GreaterThan(b.Utilization()) })
		state.payOff(order, "Highest utilization first: extra budget pays this card down")
	case domain.StrategyEqualDistribution:
		order = sortedIndexes(cards, nil)
		ba.allocateEqual(state, budget, minimums)
	}

	result := &domain.AllocationStrategy{
		Kind:        kind,
		Name:        info.name,
		Description: info.description,
		Budget:      budget,
		Allocations: make([]domain.CardAllocation, 0, len(cards)),
	}
	for _, idx := range order {
		c := cards[idx]
		result.Allocations = append(result.Allocations, domain.CardAllocation{
			CardID:         c.ID,
			CardName:       c.Name,
			Payment:        state.payments[idx],
			MinimumPayment: minimums[idx],
			NewBalance:     state.balances[idx],
			NewUtilization: state.utilization(idx),
			PriorityRank:   ranks[idx],
			Reasoning:      state.reasons[idx],
		})
	}
	result.Impact = ba.summarize(cards, state)

	ba.Logger.Infof("allocation %s: %s of %s allocated, utilization %s%% -> %s%%", kind,
		money.Format(result.TotalAllocated()), money.Format(budget),
		result.Impact.CurrentUtilization.StringFixed(1), result.Impact.NewUtilization.StringFixed(1))
	return result, nil
}

// allocateMaxScore walks the thresholds from 90% down, paying the cards above
// each one toward it in priority order, then pays leftovers off by priority.
func (ba *BudgetAllocator) allocateMaxScore(s *allocationState, priorityOrder []int) {
	for _, threshold := range maxScoreThresholds {
		limit := decimal.NewFromInt(threshold)
		for _, idx := range priorityOrder {
			if !s.remaining.IsPositive() {
				return
			}
			if !s.utilization(idx).GreaterThan(limit) {
				continue
			}
			targetBalance := money.Round(money.OfPercent(s.cards[idx].CreditLimit, limit))
			if s.pay(idx, s.balances[idx].Sub(targetBalance)).IsPositive() {
				if s.utilization(idx).LessThanOrEqual(limit) {
					s.reasons[idx] = fmt.Sprintf("Paid down to %d%% utilization", threshold)
				} else {
					s.reasons[idx] = fmt.Sprintf("Budget exhausted paying toward %d%% utilization", threshold)
				}
			}
		}
	}
	s.payOff(priorityOrder, "Leftover budget pays off the highest-priority balance")
}

// allocateEqual splits the entire budget evenly; each share is floored at the
// card's minimum and capped at its balance and the remaining budget.
func (ba *BudgetAllocator) allocateEqual(s *allocationState, budget decimal.Decimal, minimums []decimal.Decimal) {
	if len(s.cards) == 0 {
		return
	}
	share := money.Floor(budget.Div(decimal.NewFromInt(int64(len(s.cards)))))
	for idx, c := range s.cards {
		want := money.Min(c.Balance, share)
		if s.pay(idx, want.Sub(minimums[idx])).IsPositive() {
			s.reasons[idx] = fmt.Sprintf("Equal share of %s", money.Format(share))
		}
	}
}

func (ba *BudgetAllocator) summarize(cards []domain.Card, s *allocationState) domain.ImpactSummary {
	target := ba.Policy.TargetUtilization
	totalLimit, before, after := decimal.Zero, decimal.Zero, decimal.Zero
	interest, fullOptimal, allocated := decimal.Zero, decimal.Zero, decimal.Zero
	summary := domain.ImpactSummary{}

	thirty, ten := decimal.NewFromInt(30), decimal.NewFromInt(10)
	for i, c := range cards {
		totalLimit = totalLimit.Add(c.CreditLimit)
		before = before.Add(c.Balance)
		after = after.Add(s.balances[i])
		allocated = allocated.Add(s.payments[i])
		interest = interest.Add(money.MonthlyInterest(s.payments[i], c.APRValue()))
		fullOptimal = fullOptimal.Add(money.NonNegative(c.Balance.Sub(money.Round(c.CreditLimit.Mul(target)))))

		util := s.utilization(i)
		if util.LessThan(thirty) {
			summary.CardsUnder30++
		}
		if util.LessThan(ten) {
			summary.CardsUnder10++
		}
	}

	summary.CurrentUtilization = money.Percent(before, totalLimit)
	summary.NewUtilization = money.Percent(after, totalLimit)
	summary.UtilizationImprovement = summary.CurrentUtilization.Sub(summary.NewUtilization)
	summary.EstimatedScoreImpact = EstimateAllocationImpact(summary.CurrentUtilization, summary.NewUtilization)
	summary.InterestSaved = money.Round(interest)

	summary.PercentOfOptimal = money.Hundred
	if fullOptimal.IsPositive() {
		summary.PercentOfOptimal = money.Min(money.Hundred, money.Round(money.Percent(allocated, fullOptimal)))
	}
	return summary
}

// EstimateAllocationImpact is the single-budget-event heuristic: a bonus for
// each overall threshold crossed plus half a point per point of improvement.
// It is deliberately separate from EstimateScoreImpact.
func EstimateAllocationImpact(before, after decimal.Decimal) int {
	improvement := before.Sub(after)
	if !improvement.IsPositive() {
		return 0
	}
	points := 0
	for _, b := range allocationCrossingBonuses {
		t := decimal.NewFromInt(b.Threshold)
		if before.GreaterThan(t) && after.LessThanOrEqual(t) {
			points += b.Points
		}
	}
	linear := improvement.Mul(decimal.NewFromFloat(0.5)).Round(0).IntPart()
	return points + int(linear)
}

// sortedIndexes returns card indexes stably sorted by less (input order when nil)
func sortedIndexes(cards []domain.Card, less func(a, b domain.Card) bool) []int {
	order := make([]int, len(cards))
	for i := range order {
		order[i] = i
	}
	if less != nil {
		sort.SliceStable(order, func(i, j int) bool { return less(cards[order[i]], cards[order[j]]) })
	}
	return order
}
