package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Configuration is a portfolio input file: the cards plus optional policy,
// budget and a chain of what-if scenarios.
type Configuration struct {
	ReferenceDate *time.Time        `yaml:"reference_date,omitempty" json:"reference_date,omitempty"`
	Policy        Policy            `yaml:"policy" json:"policy"`
	Cards         []Card            `yaml:"cards" json:"cards" validate:"dive"`
	Budget        decimal.Decimal   `yaml:"budget,omitempty" json:"budget,omitempty" validate:"gte=0"`
	Strategy      StrategyKind      `yaml:"strategy,omitempty" json:"strategy,omitempty" validate:"omitempty,oneof=max_score min_interest utilization_focus equal_distribution"`
	Scenarios     []ScenarioRequest `yaml:"scenarios,omitempty" json:"scenarios,omitempty" validate:"dive"`
}

// Report gathers every engine output rendered by the output formatters.
// Sections left nil were not requested.
type Report struct {
	ReferenceDate time.Time            `json:"reference_date"`
	Policy        Policy               `json:"policy"`
	Assumptions   []string             `json:"assumptions"`
	Optimization  *OptimizationResult  `json:"optimization,omitempty"`
	Priorities    []PriorityScore      `json:"priorities,omitempty"`
	Allocations   []AllocationStrategy `json:"allocations,omitempty"`
	Baseline      *ScenarioResult      `json:"baseline,omitempty"`
	Scenarios     []ScenarioOutcome    `json:"scenarios,omitempty"`
}
