package calculation

import (
	"errors"
	"fmt"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/cardwise/utilization-optimizer/pkg/dateutil"
	"github.com/cardwise/utilization-optimizer/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrUnknownScenario is returned for an unrecognized scenario kind
var ErrUnknownScenario = errors.New("unknown scenario kind")

// ScenarioSimulator runs what-if actions against a card set. Guard failures
// never error: they return the unchanged baseline with a warning.
type ScenarioSimulator struct {
	Policy domain.Policy
	Logger Logger
	// NewID generates identifiers for synthetic cards
	NewID func() string
}

// NewScenarioSimulator creates a simulator with uuid-based synthetic card IDs
func NewScenarioSimulator(policy domain.Policy, logger Logger) *ScenarioSimulator {
	return &ScenarioSimulator{
		Policy: policy.WithDefaults(),
		Logger: loggerOrNop(logger),
		NewID:  uuid.NewString,
	}
}

// CalculateBaseline computes the aggregate view of a card set without changes
func CalculateBaseline(cards []domain.Card) domain.ScenarioResult {
	metrics := computeMetrics(cards)
	return domain.ScenarioResult{
		Cards:              domain.CloneCards(cards),
		OverallUtilization: money.Percent(metrics.TotalBalance, metrics.TotalCreditLimit),
		UtilizationChange:  decimal.Zero,
		Warnings:           []string{},
		Recommendations:    []string{},
		Metrics:            metrics,
	}
}

func computeMetrics(cards []domain.Card) domain.ScenarioMetrics {
	m := domain.ScenarioMetrics{
		TotalBalance:       decimal.Zero,
		TotalCreditLimit:   decimal.Zero,
		AvailableCredit:    decimal.Zero,
		AverageUtilization: decimal.Zero,
	}
	if len(cards) == 0 {
		return m
	}
	thirty, fifty := decimal.NewFromInt(30), decimal.NewFromInt(50)
	utilSum := decimal.Zero
	for _, c := range cards {
		util := c.Utilization()
		m.TotalBalance = m.TotalBalance.Add(c.Balance)
		m.TotalCreditLimit = m.TotalCreditLimit.Add(c.CreditLimit)
		m.AvailableCredit = m.AvailableCredit.Add(c.AvailableCredit())
		utilSum = utilSum.Add(util)
		if util.GreaterThan(thirty) {
			m.CardsOver30++
		}
		if util.GreaterThan(fifty) {
			m.CardsOver50++
		}
	}
	m.AverageUtilization = utilSum.Div(decimal.NewFromInt(int64(len(cards))))
	return m
}

// apply diffs a transformed card set against the baseline
func (ss *ScenarioSimulator) apply(kind domain.ScenarioKind, baseline domain.ScenarioResult, cards []domain.Card, warnings, recs []string) domain.ScenarioResult {
	metrics := computeMetrics(cards)
	overall := money.Percent(metrics.TotalBalance, metrics.TotalCreditLimit)
	if warnings == nil {
		warnings = []string{}
	}
	if recs == nil {
		recs = []string{}
	}
	return domain.ScenarioResult{
		Kind:               kind,
		Cards:              cards,
		OverallUtilization: overall,
		UtilizationChange:  overall.Sub(baseline.OverallUtilization),
		ScoreImpact:        EstimateScoreImpact(baseline.OverallUtilization.Sub(overall), baseline.OverallUtilization),
		Warnings:           warnings,
		Recommendations:    recs,
		Metrics:            metrics,
		Applied:            true,
	}
}

// refuse returns the baseline untouched with a blocking warning
func (ss *ScenarioSimulator) refuse(kind domain.ScenarioKind, baseline domain.ScenarioResult, warning string) domain.ScenarioResult {
	ss.Logger.Warnf("%s scenario refused: %s", kind, warning)
	baseline.Kind = kind
	baseline.Warnings = append(baseline.Warnings, warning)
	return baseline
}

func cardNotFound(id string) string {
	return fmt.Sprintf("Card %q not found", id)
}

// utilizationAdvice warns or recommends based on the tier a card lands in
func utilizationAdvice(card domain.Card) (warnings, recs []string) {
	util := card.Utilization()
	switch {
	case util.GreaterThan(decimal.NewFromInt(30)):
		needed := card.Balance.Sub(money.Round(money.OfPercent(card.CreditLimit, decimal.NewFromInt(30))))
		warnings = append(warnings, fmt.Sprintf("%s stays at %s utilization, above the 30%% threshold", card.Name, money.FormatPercent(util)))
		recs = append(recs, fmt.Sprintf("Pay another %s to bring %s under 30%%", money.Format(needed), card.Name))
	case util.GreaterThan(decimal.NewFromInt(10)):
		needed := card.Balance.Sub(money.Round(money.OfPercent(card.CreditLimit, decimal.NewFromInt(10))))
		recs = append(recs, fmt.Sprintf("Pay another %s to bring %s under 10%% for the best scores", money.Format(needed), card.Name))
	default:
		recs = append(recs, fmt.Sprintf("%s is at %s utilization, an excellent level", card.Name, money.FormatPercent(util)))
	}
	return warnings, recs
}

// PaymentAdjustment simulates paying amount toward one card
func (ss *ScenarioSimulator) PaymentAdjustment(cards []domain.Card, cardID string, amount decimal.Decimal) domain.ScenarioResult {
	kind := domain.ScenarioPaymentAdjustment
	baseline := CalculateBaseline(cards)
	idx := domain.FindCard(cards, cardID)
	if idx < 0 {
		return ss.refuse(kind, baseline, cardNotFound(cardID))
	}
	if !amount.IsPositive() {
		return ss.refuse(kind, baseline, "Payment amount must be positive")
	}

	next := domain.CloneCards(cards)
	card := next[idx]
	var warnings, recs []string

	// ratio-only minimum; the floor applies to allocation
	minimum := money.Round(card.Balance.Mul(ss.Policy.MinimumPaymentRatio))
	if amount.LessThan(minimum) {
		warnings = append(warnings, fmt.Sprintf("Payment is below the %s minimum; a late fee and penalty APR may apply", money.Format(minimum)))
	}
	if amount.GreaterThan(card.Balance) {
		warnings = append(warnings, fmt.Sprintf("Payment exceeds the %s balance; only the balance is applied", money.Format(card.Balance)))
		amount = card.Balance
	}
	card.Balance = card.Balance.Sub(amount)
	next[idx] = card

	w, r := utilizationAdvice(card)
	warnings = append(warnings, w...)
	recs = append(recs, r...)

	if interest := money.Round(money.MonthlyInterest(card.Balance, card.APRValue())); interest.IsPositive() {
		recs = append(recs, fmt.Sprintf("The remaining %s balance accrues about %s interest next month at %s%% APR",
			money.Format(card.Balance), money.Format(interest), card.APRValue().StringFixed(2)))
	}
	return ss.apply(kind, baseline, next, warnings, recs)
}

// PurchaseImpact simulates a purchase on one card. The statement timing decides
// whether the purchase is reported this cycle.
func (ss *ScenarioSimulator) PurchaseImpact(cards []domain.Card, cardID string, amount decimal.Decimal, purchaseDate, ref time.Time) domain.ScenarioResult {
	kind := domain.ScenarioPurchase
	baseline := CalculateBaseline(cards)
	idx := domain.FindCard(cards, cardID)
	if idx < 0 {
		return ss.refuse(kind, baseline, cardNotFound(cardID))
	}
	if !amount.IsPositive() {
		return ss.refuse(kind, baseline, "Purchase amount must be positive")
	}
	card := cards[idx]
	newBalance := card.Balance.Add(amount)
	if newBalance.GreaterThan(card.CreditLimit) {
		return ss.refuse(kind, baseline, fmt.Sprintf("Purchase of %s would exceed the %s credit limit on %s (available %s)",
			money.Format(amount), money.Format(card.CreditLimit), card.Name, money.Format(card.AvailableCredit())))
	}

	next := domain.CloneCards(cards)
	card.Balance = newBalance
	next[idx] = card

	ref = dateutil.StartOfDay(referenceOrNow(ref))
	if purchaseDate.IsZero() {
		purchaseDate = ref
	}
	statement := dateutil.NextOccurrence(card.StatementDay, ref)
	util := card.Utilization()

	var warnings, recs []string
	if !dateutil.StartOfDay(purchaseDate).After(statement) {
		warnings = append(warnings, fmt.Sprintf("Purchase posts before the %s statement; %s will report %s utilization",
			statement.Format(dateLayout), card.Name, money.FormatPercent(util)))
		recs = append(recs, fmt.Sprintf("Pay %s before %s to keep the reported balance unchanged",
			money.Format(amount), dateutil.AddDays(statement, -ss.Policy.OptimizationLeadDays).Format(dateLayout)))
	} else {
		recs = append(recs, fmt.Sprintf("Purchase lands after the %s statement, so it is not reported until next cycle; pay it down before then",
			statement.Format(dateLayout)))
	}
	if util.GreaterThan(decimal.NewFromInt(30)) {
		warnings = append(warnings, fmt.Sprintf("%s rises above 30%% utilization", card.Name))
	}
	return ss.apply(kind, baseline, next, warnings, recs)
}

// LimitIncrease simulates a new credit limit on one card
func (ss *ScenarioSimulator) LimitIncrease(cards []domain.Card, cardID string, newLimit decimal.Decimal) domain.ScenarioResult {
	kind := domain.ScenarioLimitIncrease
	baseline := CalculateBaseline(cards)
	idx := domain.FindCard(cards, cardID)
	if idx < 0 {
		return ss.refuse(kind, baseline, cardNotFound(cardID))
	}
	card := cards[idx]
	if !newLimit.IsPositive() || newLimit.LessThan(card.Balance) {
		return ss.refuse(kind, baseline, fmt.Sprintf("New limit %s cannot be below the current %s balance",
			money.Format(newLimit), money.Format(card.Balance)))
	}

	var warnings, recs []string
	if newLimit.LessThanOrEqual(card.CreditLimit) {
		warnings = append(warnings, fmt.Sprintf("New limit %s is not an increase over %s", money.Format(newLimit), money.Format(card.CreditLimit)))
	}
	before := card.Utilization()
	next := domain.CloneCards(cards)
	card.CreditLimit = newLimit
	next[idx] = card

	recs = append(recs,
		fmt.Sprintf("%s utilization moves from %s to %s", card.Name, money.FormatPercent(before), money.FormatPercent(card.Utilization())),
		"Request limit increases every 6-12 months; ask whether the issuer uses a soft pull",
	)
	return ss.apply(kind, baseline, next, warnings, recs)
}

// NewCard simulates opening an account with the given limit and starting balance
func (ss *ScenarioSimulator) NewCard(cards []domain.Card, name string, limit, balance decimal.Decimal, apr *decimal.Decimal) domain.ScenarioResult {
	kind := domain.ScenarioNewCard
	baseline := CalculateBaseline(cards)
	if !limit.IsPositive() {
		return ss.refuse(kind, baseline, "New card limit must be positive")
	}
	if balance.IsNegative() || balance.GreaterThan(limit) {
		return ss.refuse(kind, baseline, fmt.Sprintf("Starting balance %s must be between $0.00 and the %s limit",
			money.Format(balance), money.Format(limit)))
	}
	if name == "" {
		name = "New Card"
	}

	card := domain.Card{
		ID:           ss.NewID(),
		Name:         name,
		CreditLimit:  limit,
		Balance:      balance,
		StatementDay: ss.Policy.NewCardStatementDay,
		DueDay:       ss.Policy.NewCardDueDay,
		APR:          apr,
	}
	next := append(domain.CloneCards(cards), card)

	warnings := []string{fmt.Sprintf("Opening a card triggers a hard inquiry, typically -%d to -%d points",
		ss.Policy.HardInquiryPenaltyMin, ss.Policy.HardInquiryPenaltyMax)}
	if len(cards) > 0 {
		warnings = append(warnings, "A new account lowers the average age of your accounts")
	}
	w, _ := utilizationAdvice(card)
	warnings = append(warnings, w...)

	result := ss.apply(kind, baseline, next, warnings, []string{
		fmt.Sprintf("Total available credit rises to %s", money.Format(computeMetrics(next).AvailableCredit)),
		"Avoid carrying a balance on the new card while the inquiry ages",
	})
	result.ScoreImpact.Min -= ss.Policy.HardInquiryPenaltyMax
	result.ScoreImpact.Max -= ss.Policy.HardInquiryPenaltyMin
	return result
}

// CardClosure simulates closing a paid-off card
func (ss *ScenarioSimulator) CardClosure(cards []domain.Card, cardID string) domain.ScenarioResult {
	kind := domain.ScenarioCardClosure
	baseline := CalculateBaseline(cards)
	idx := domain.FindCard(cards, cardID)
	if idx < 0 {
		return ss.refuse(kind, baseline, cardNotFound(cardID))
	}
	card := cards[idx]
	if !card.Balance.IsZero() {
		return ss.refuse(kind, baseline, fmt.Sprintf("Cannot close %s with a %s balance; pay it off first",
			card.Name, money.Format(card.Balance)))
	}

	next := make([]domain.Card, 0, len(cards)-1)
	next = append(next, cards[:idx]...)
	next = append(next, cards[idx+1:]...)

	var warnings []string
	remaining := computeMetrics(next)
	after := money.Percent(remaining.TotalBalance, remaining.TotalCreditLimit)
	if after.GreaterThan(baseline.OverallUtilization) {
		warnings = append(warnings, fmt.Sprintf("Closing removes %s of available credit; overall utilization rises from %s to %s",
			money.Format(card.CreditLimit), money.FormatPercent(baseline.OverallUtilization), money.FormatPercent(after)))
	}
	if isOldestCard(cards, idx) {
		warnings = append(warnings, fmt.Sprintf("%s appears to be your oldest account; closing it can shorten your credit history", card.Name))
	}
	recs := []string{"Keep the card open with a small recurring charge paid in full if it has no annual fee"}
	return ss.apply(kind, baseline, next, warnings, recs)
}

// isOldestCard uses OpenedDate when any card carries one and falls back to
// input position otherwise.
func isOldestCard(cards []domain.Card, idx int) bool {
	var oldest *time.Time
	for i := range cards {
		if d := cards[i].OpenedDate; d != nil && (oldest == nil || d.Before(*oldest)) {
			oldest = d
		}
	}
	if oldest == nil {
		return idx == 0
	}
	return cards[idx].OpenedDate != nil && cards[idx].OpenedDate.Equal(*oldest)
}

// BalanceTransfer moves amount plus a percentage fee from one card to another
func (ss *ScenarioSimulator) BalanceTransfer(cards []domain.Card, fromID, toID string, amount, feePercent decimal.Decimal) domain.ScenarioResult {
	kind := domain.ScenarioBalanceTransfer
	baseline := CalculateBaseline(cards)
	from, to := domain.FindCard(cards, fromID), domain.FindCard(cards, toID)
	switch {
	case from < 0:
		return ss.refuse(kind, baseline, cardNotFound(fromID))
	case to < 0:
		return ss.refuse(kind, baseline, cardNotFound(toID))
	case from == to:
		return ss.refuse(kind, baseline, "Source and destination cards must differ")
	case !amount.IsPositive():
		return ss.refuse(kind, baseline, "Transfer amount must be positive")
	}

	src, dst := cards[from], cards[to]
	if amount.GreaterThan(src.Balance) {
		return ss.refuse(kind, baseline, fmt.Sprintf("Transfer of %s exceeds the %s balance on %s",
			money.Format(amount), money.Format(src.Balance), src.Name))
	}
	fee := money.Round(money.OfPercent(amount, feePercent))
	total := amount.Add(fee)
	if total.GreaterThan(dst.AvailableCredit()) {
		return ss.refuse(kind, baseline, fmt.Sprintf("Transfer plus fee (%s) exceeds the %s available on %s",
			money.Format(total), money.Format(dst.AvailableCredit()), dst.Name))
	}

	srcBefore, dstBefore := src.Utilization(), dst.Utilization()
	next := domain.CloneCards(cards)
	src.Balance = src.Balance.Sub(amount)
	dst.Balance = dst.Balance.Add(total)
	next[from], next[to] = src, dst

	var warnings []string
	recs := []string{
		fmt.Sprintf("%s utilization: %s -> %s", src.Name, money.FormatPercent(srcBefore), money.FormatPercent(src.Utilization())),
		fmt.Sprintf("%s utilization: %s -> %s", dst.Name, money.FormatPercent(dstBefore), money.FormatPercent(dst.Utilization())),
	}
	savings := money.Round(amount.Mul(ss.Policy.AssumedTransferAPR).Sub(fee))
	if savings.IsPositive() {
		recs = append(recs, fmt.Sprintf("Estimated first-year interest savings of %s after a %s fee (assumes %s%% source APR and a 0%% intro rate)",
			money.Format(savings), money.Format(fee), ss.Policy.AssumedTransferAPR.Mul(money.Hundred).StringFixed(0)))
	} else {
		warnings = append(warnings, fmt.Sprintf("The %s transfer fee outweighs the estimated interest savings", money.Format(fee)))
	}
	if dst.Utilization().GreaterThan(decimal.NewFromInt(30)) {
		warnings = append(warnings, fmt.Sprintf("%s rises above 30%% utilization after the transfer", dst.Name))
	}
	return ss.apply(kind, baseline, next, warnings, recs)
}

// Run dispatches a request to its simulator
func (ss *ScenarioSimulator) Run(req domain.ScenarioRequest, cards []domain.Card, ref time.Time) (domain.ScenarioResult, error) {
	switch req.Kind {
	case domain.ScenarioPaymentAdjustment:
		return ss.PaymentAdjustment(cards, req.CardID, req.Amount), nil
	case domain.ScenarioPurchase:
		var when time.Time
		if req.Date != nil {
			when = *req.Date
		}
		return ss.PurchaseImpact(cards, req.CardID, req.Amount, when, ref), nil
	case domain.ScenarioLimitIncrease:
		return ss.LimitIncrease(cards, req.CardID, req.NewLimit), nil
	case domain.ScenarioNewCard:
		return ss.NewCard(cards, req.CardName, req.NewLimit, req.Amount, req.APR), nil
	case domain.ScenarioCardClosure:
		return ss.CardClosure(cards, req.CardID), nil
	case domain.ScenarioBalanceTransfer:
		return ss.BalanceTransfer(cards, req.CardID, req.TargetCardID, req.Amount, req.FeePercent), nil
	default:
		return domain.ScenarioResult{}, fmt.Errorf("%w: %q", ErrUnknownScenario, req.Kind)
	}
}
