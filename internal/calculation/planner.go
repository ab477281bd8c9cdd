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

const dateLayout = "Jan 2"

// PaymentPlanner builds per-card payment schedules
type PaymentPlanner struct {
	Policy domain.Policy
	Logger Logger
}

// NewPaymentPlanner creates a planner for the given policy
func NewPaymentPlanner(policy domain.Policy, logger Logger) *PaymentPlanner {
	return &PaymentPlanner{Policy: policy.WithDefaults(), Logger: loggerOrNop(logger)}
}

// Plan schedules the payments that bring one card's reported balance to the
// target utilization (a fraction, e.g. 0.05) before its next statement date.
// A zero target uses the policy default and a zero reference date means now.
func (pp *PaymentPlanner) Plan(card domain.Card, target decimal.Decimal, ref time.Time) domain.CardPaymentPlan {
	if !target.IsPositive() {
		target = pp.Policy.TargetUtilization
	}
	today := dateutil.StartOfDay(referenceOrNow(ref))
	statement, due := dateutil.ResolveCycle(card.StatementDay, card.DueDay, today)

	current := card.Utilization()
	targetBalance := money.Round(card.CreditLimit.Mul(target))

	plan := domain.CardPaymentPlan{
		Card:               card,
		CurrentUtilization: current,
		TargetUtilization:  target.Mul(money.Hundred),
		NewUtilization:     current,
		TargetBalance:      targetBalance,
		Payments:           []domain.Payment{},
		NextStatementDate:  statement,
		NextDueDate:        due,
		Status:             domain.ClassifyUtilization(current),
	}

	switch {
	case !card.Balance.IsPositive():
		plan.IsAlreadyOptimal = true
	case card.IsOverLimit():
		plan.IsOverLimit = true
		plan.NeedsOptimization = true
		plan.Payments = pp.overLimitPayments(card, targetBalance, today, statement, due)
	case card.Balance.GreaterThan(targetBalance):
		plan.NeedsOptimization = true
		plan.Payments = pp.optimizationPayments(card, targetBalance, today, statement, due)
	default:
		plan.IsAlreadyOptimal = true
		plan.Payments = []domain.Payment{{
			Date:        due,
			Amount:      card.Balance,
			Purpose:     domain.PurposeBalance,
			Description: fmt.Sprintf("Pay full balance of %s by %s; utilization is already at or below target", money.Format(card.Balance), due.Format(dateLayout)),
		}}
	}

	if plan.NeedsOptimization {
		plan.NewUtilization = domain.UtilizationOf(plan.ReportedBalance(), card.CreditLimit)
	}

	pp.Logger.Debugf("planned %s: utilization %s%% -> %s%%, %d payments", card.ID,
		current.StringFixed(2), plan.NewUtilization.StringFixed(2), len(plan.Payments))
	return plan
}

func (pp *PaymentPlanner) optimizationPayments(card domain.Card, targetBalance decimal.Decimal, today, statement, due time.Time) []domain.Payment {
	lead := pp.Policy.OptimizationLeadDays
	optAmount := card.Balance.Sub(targetBalance)
	optDate := dateutil.AddDays(statement, -lead)
	desc := fmt.Sprintf("Pay %s by %s, %d days before the %s statement, to report %s utilization",
		money.Format(optAmount), optDate.Format(dateLayout), lead, statement.Format(dateLayout),
		money.FormatPercent(domain.UtilizationOf(targetBalance, card.CreditLimit)))

	if dateutil.DaysUntil(today, optDate) < lead || !optDate.After(today) {
		optDate = dateutil.AddDays(today, 1)
		desc = fmt.Sprintf("Statement closes %s; pay %s by tomorrow to lower the reported balance",
			statement.Format(dateLayout), money.Format(optAmount))
	}

	payments := []domain.Payment{{
		Date:        optDate,
		Amount:      optAmount,
		Purpose:     domain.PurposeOptimization,
		Description: desc,
	}}
	if targetBalance.IsPositive() {
		payments = append(payments, domain.Payment{
			Date:        due,
			Amount:      targetBalance,
			Purpose:     domain.PurposeBalance,
			Description: fmt.Sprintf("Pay the reported %s balance by %s to avoid interest", money.Format(targetBalance), due.Format(dateLayout)),
		})
	}
	return payments
}

func (pp *PaymentPlanner) overLimitPayments(card domain.Card, targetBalance decimal.Decimal, today, statement, due time.Time) []domain.Payment {
	recovered := money.Round(card.CreditLimit.Mul(pp.Policy.OverLimitRecoveryRatio))
	urgent := card.Balance.Sub(recovered)

	payments := []domain.Payment{{
		Date:    today,
		Amount:  urgent,
		Purpose: domain.PurposeOptimization,
		Description: fmt.Sprintf("URGENT: pay %s today to bring the balance back under the %s limit",
			money.Format(urgent), money.Format(card.CreditLimit)),
	}}

	remaining := recovered
	optDate := dateutil.AddDays(statement, -pp.Policy.OptimizationLeadDays)
	if !optDate.After(today) {
		optDate = dateutil.AddDays(today, 1)
	}
	if optDate.Before(statement) && remaining.GreaterThan(targetBalance) {
		opt := remaining.Sub(targetBalance)
		payments = append(payments, domain.Payment{
			Date:    optDate,
			Amount:  opt,
			Purpose: domain.PurposeOptimization,
			Description: fmt.Sprintf("Pay %s by %s, before the %s statement, to report %s",
				money.Format(opt), optDate.Format(dateLayout), statement.Format(dateLayout), money.Format(targetBalance)),
		})
		remaining = targetBalance
	}
	if remaining.IsPositive() {
		payments = append(payments, domain.Payment{
			Date:        due,
			Amount:      remaining,
			Purpose:     domain.PurposeBalance,
			Description: fmt.Sprintf("Pay the remaining %s by %s to avoid interest", money.Format(remaining), due.Format(dateLayout)),
		})
	}
	return payments
}

// PortfolioOptimizer aggregates card plans across a portfolio
type PortfolioOptimizer struct {
	Planner *PaymentPlanner
}

// NewPortfolioOptimizer creates an optimizer around a planner
func NewPortfolioOptimizer(planner *PaymentPlanner) *PortfolioOptimizer {
	return &PortfolioOptimizer{Planner: planner}
}

// Optimize plans every card, highest current utilization first, and computes
// before/after overall utilization plus a score-impact estimate.
func (po *PortfolioOptimizer) Optimize(cards []domain.Card, target decimal.Decimal, ref time.Time) domain.OptimizationResult {
	sorted := domain.CloneCards(cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Utilization().GreaterThan(sorted[j].Utilization())
	})

	ref = referenceOrNow(ref)
	result := domain.OptimizationResult{
		Plans:                 make([]domain.CardPaymentPlan, 0, len(sorted)),
		TotalCreditLimit:      decimal.Zero,
		TotalCurrentBalance:   decimal.Zero,
		TotalOptimizedBalance: decimal.Zero,
	}
	for _, card := range sorted {
		plan := po.Planner.Plan(card, target, ref)
		result.Plans = append(result.Plans, plan)
		result.TotalCreditLimit = result.TotalCreditLimit.Add(card.CreditLimit)
		result.TotalCurrentBalance = result.TotalCurrentBalance.Add(card.Balance)
		result.TotalOptimizedBalance = result.TotalOptimizedBalance.Add(plan.ReportedBalance())
		if plan.NeedsOptimization {
			result.CardsNeedingOptimization++
		}
	}

	result.CurrentOverallUtilization = money.Percent(result.TotalCurrentBalance, result.TotalCreditLimit)
	result.OptimizedOverallUtilization = money.Percent(result.TotalOptimizedBalance, result.TotalCreditLimit)
	result.UtilizationImprovement = result.CurrentOverallUtilization.Sub(result.OptimizedOverallUtilization)
	result.EstimatedScoreImpact = EstimateScoreImpact(result.UtilizationImprovement, result.CurrentOverallUtilization)
	return result
}
