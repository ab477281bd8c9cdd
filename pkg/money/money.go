package money

import (
	"github.com/shopspring/decimal"
)

var (
	// Hundred is the percentage scale factor
	Hundred = decimal.NewFromInt(100)
	// Twelve converts annual rates to monthly
	Twelve = decimal.NewFromInt(12)
)

// Round rounds an amount to cents
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Floor truncates a non-negative amount to whole cents
func Floor(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(2)
}

// Percent returns part/whole*100, or zero when whole is not positive
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(Hundred)
}

// OfPercent returns pct percent of an amount
func OfPercent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(Hundred)
}

// MonthlyInterest returns one month of simple interest on balance at an annual percentage rate
func MonthlyInterest(balance, aprPercent decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() || !aprPercent.IsPositive() {
		return decimal.Zero
	}
	return balance.Mul(aprPercent).Div(Hundred).Div(Twelve)
}

// NonNegative clamps negative amounts to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Sum adds a list of amounts
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Format formats an amount as USD with cents
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatPercent formats a percentage with one decimal place
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
