package calculation

import (
	"testing"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEstimateScoreImpact(t *testing.T) {
	tests := []struct {
		name        string
		improvement string
		starting    string
		expected    domain.ImpactRange
	}{
		{"zero improvement", "0", "80", domain.ImpactRange{}},
		{"zero improvement any start", "0", "5", domain.ImpactRange{}},
		{"small gain from high start", "3", "80", domain.ImpactRange{Min: 7, Max: 16}},
		{"band edge is inclusive", "5", "50", domain.ImpactRange{Min: 6, Max: 13}},
		{"low start dampens", "10", "20", domain.ImpactRange{Min: 6, Max: 12}},
		{"medium start", "40.4545", "45.4545", domain.ImpactRange{Min: 51, Max: 72}},
		{"large gain capped", "60", "80", domain.ImpactRange{Min: 111, Max: MaxScoreGain}},
		{"small increase", "-3", "10", domain.ImpactRange{Min: -15, Max: -5}},
		{"increase not scaled by severity", "-8", "90", domain.ImpactRange{Min: -30, Max: -15}},
		{"large increase", "-50", "10", domain.ImpactRange{Min: -120, Max: -90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateScoreImpact(dec(tt.improvement), dec(tt.starting))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSeverityMultiplier(t *testing.T) {
	cases := map[string]string{
		"100":   "1.3",
		"70":    "1.3",
		"69.99": "1.1",
		"50":    "1.1",
		"30":    "0.85",
		"29.9":  "0.6",
		"0":     "0.6",
	}
	for start, want := range cases {
		got := SeverityMultiplier(dec(start))
		assert.True(t, got.Equal(dec(want)), "start %s: got %s want %s", start, got, want)
	}
}

func TestEstimateScoreImpactMonotonicWithinSeverity(t *testing.T) {
	for _, start := range []string{"20", "40", "60", "85"} {
		prev := domain.ImpactRange{}
		for pts := 1; pts <= 100; pts++ {
			got := EstimateScoreImpact(decimal.NewFromInt(int64(pts)), dec(start))
			assert.GreaterOrEqual(t, got.Min, prev.Min, "start %s pts %d", start, pts)
			assert.GreaterOrEqual(t, got.Max, prev.Max, "start %s pts %d", start, pts)
			assert.LessOrEqual(t, got.Min, got.Max)
			assert.LessOrEqual(t, got.Max, MaxScoreGain)
			prev = got
		}

		prev = domain.ImpactRange{}
		for pts := 1; pts <= 100; pts++ {
			got := EstimateScoreImpact(decimal.NewFromInt(int64(-pts)), dec(start))
			assert.LessOrEqual(t, got.Max, prev.Max, "start %s pts -%d", start, pts)
			assert.LessOrEqual(t, got.Min, prev.Min, "start %s pts -%d", start, pts)
			prev = got
		}
	}
}

func TestEstimateAllocationImpact(t *testing.T) {
	// crosses 50 (+15) and linear half of 18.85
	assert.Equal(t, 24, EstimateAllocationImpact(dec("53.5294"), dec("34.6765")))
	// crosses 50, 30 and 10
	assert.Equal(t, 15+20+30+30, EstimateAllocationImpact(dec("65"), dec("5")))
	// no crossing, linear only
	assert.Equal(t, 2, EstimateAllocationImpact(dec("25"), dec("21")))
	// worse or unchanged earns nothing
	assert.Equal(t, 0, EstimateAllocationImpact(dec("20"), dec("20")))
	assert.Equal(t, 0, EstimateAllocationImpact(dec("20"), dec("40")))
}
