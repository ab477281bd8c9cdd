package output

import (
	"fmt"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists the modeling assumptions for the default policy.
var DefaultAssumptions = GenerateAssumptions(domain.DefaultPolicy())

// GenerateAssumptions creates the assumptions list from the active policy
func GenerateAssumptions(policy domain.Policy) []string {
	p := policy.WithDefaults()
	return []string{
		fmt.Sprintf("Target reported utilization per card: %s", FormatPercentage(p.TargetUtilization.Mul(decimalHundred))),
		fmt.Sprintf("Optimization payments land %d days before the statement closing date", p.OptimizationLeadDays),
		fmt.Sprintf("Over-limit cards are first paid back to %s of their limit", FormatPercentage(p.OverLimitRecoveryRatio.Mul(decimalHundred))),
		fmt.Sprintf("Minimum payment: greater of %s or %s of the balance", FormatCurrency(p.MinimumPaymentFloor), FormatPercentage(p.MinimumPaymentRatio.Mul(decimalHundred))),
		fmt.Sprintf("Balance-transfer savings assume a %s source APR and a 0%% intro rate for one year", FormatPercentage(p.AssumedTransferAPR.Mul(decimalHundred))),
		fmt.Sprintf("A new account costs %d to %d points for the hard inquiry", p.HardInquiryPenaltyMin, p.HardInquiryPenaltyMax),
		"Interest estimates use simple monthly interest (APR / 12); issuer compounding is not modeled",
		"Score impacts are heuristic ranges, not a certified scoring model",
	}
}

var decimalHundred = decimal.NewFromInt(100)
