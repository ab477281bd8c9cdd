package calculation

import (
	"math"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultStartingUtilization is the severity baseline used when the caller has none
var DefaultStartingUtilization = decimal.NewFromInt(50)

// MaxScoreGain caps the upper bound of any positive estimate
const MaxScoreGain = 150

const unbounded = math.MaxInt64

// impactBand maps a utilization change of up to Threshold points to a point range
type impactBand struct {
	Threshold int64
	Min       int
	Max       int
}

// severityBand scales gains for portfolios starting at or above AtLeast percent utilization
type severityBand struct {
	AtLeast    int64
	Multiplier decimal.Decimal
}

// scoreGainBands are searched ascending; the first band whose threshold covers the improvement wins.
var scoreGainBands = []impactBand{
	{Threshold: 5, Min: 5, Max: 12},
	{Threshold: 10, Min: 10, Max: 20},
	{Threshold: 20, Min: 20, Max: 35},
	{Threshold: 30, Min: 30, Max: 50},
	{Threshold: 40, Min: 45, Max: 65},
	{Threshold: 50, Min: 60, Max: 85},
	{Threshold: unbounded, Min: 85, Max: 120},
}

// scoreLossBands are keyed by the magnitude of a utilization increase.
var scoreLossBands = []impactBand{
	{Threshold: 5, Min: -15, Max: -5},
	{Threshold: 10, Min: -30, Max: -15},
	{Threshold: 20, Min: -50, Max: -30},
	{Threshold: 30, Min: -70, Max: -50},
	{Threshold: 40, Min: -90, Max: -70},
	{Threshold: unbounded, Min: -120, Max: -90},
}

// severityBands are searched descending by starting utilization.
var severityBands = []severityBand{
	{AtLeast: 70, Multiplier: decimal.NewFromFloat(1.3)},
	{AtLeast: 50, Multiplier: decimal.NewFromFloat(1.1)},
	{AtLeast: 30, Multiplier: decimal.NewFromFloat(0.85)},
	{AtLeast: 0, Multiplier: decimal.NewFromFloat(0.6)},
}

func lookupBand(bands []impactBand, points decimal.Decimal) impactBand {
	for _, b := range bands {
		if b.Threshold == unbounded || points.LessThanOrEqual(decimal.NewFromInt(b.Threshold)) {
			return b
		}
	}
	return bands[len(bands)-1]
}

// SeverityMultiplier returns the gain multiplier for a starting utilization
func SeverityMultiplier(startingUtilization decimal.Decimal) decimal.Decimal {
	for _, s := range severityBands {
		if startingUtilization.GreaterThanOrEqual(decimal.NewFromInt(s.AtLeast)) {
			return s.Multiplier
		}
	}
	return severityBands[len(severityBands)-1].Multiplier
}

// EstimateScoreImpact maps a utilization improvement in percentage points to an
// estimated FICO point range. Positive improvements are scaled by the severity
// of the starting utilization and capped at MaxScoreGain; increases use the loss
// table unscaled. This is a heuristic approximation, not a scoring model.
func EstimateScoreImpact(improvementPoints, startingUtilization decimal.Decimal) domain.ImpactRange {
	if improvementPoints.IsZero() {
		return domain.ImpactRange{}
	}
	if improvementPoints.IsNegative() {
		b := lookupBand(scoreLossBands, improvementPoints.Abs())
		return domain.ImpactRange{Min: b.Min, Max: b.Max}
	}

	b := lookupBand(scoreGainBands, improvementPoints)
	mult := SeverityMultiplier(startingUtilization)
	return domain.ImpactRange{
		Min: capGain(scalePoints(b.Min, mult)),
		Max: capGain(scalePoints(b.Max, mult)),
	}
}

func scalePoints(points int, mult decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(points)).Mul(mult).Round(0).IntPart())
}

func capGain(points int) int {
	if points > MaxScoreGain {
		return MaxScoreGain
	}
	return points
}
