package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }

// FormatPercentage formats a decimal as a percentage with 1 decimal.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(1) + "%" }

// FormatImpact renders a score range as signed points, e.g. "+51 to +72 pts".
func FormatImpact(r domain.ImpactRange) string {
	if r.Min == 0 && r.Max == 0 {
		return "0 pts"
	}
	return fmt.Sprintf("%+d to %+d pts", r.Min, r.Max)
}

// FormatDate renders schedule dates in the short form used across reports.
func FormatDate(t time.Time) string { return t.Format("2006-01-02") }

func intToString(i int) string { return strconv.Itoa(i) }
