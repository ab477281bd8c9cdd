package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScenarioKind selects a what-if simulator
type ScenarioKind string

const (
	ScenarioPaymentAdjustment ScenarioKind = "payment_adjustment"
	ScenarioPurchase          ScenarioKind = "purchase"
	ScenarioLimitIncrease     ScenarioKind = "limit_increase"
	ScenarioNewCard           ScenarioKind = "new_card"
	ScenarioCardClosure       ScenarioKind = "card_closure"
	ScenarioBalanceTransfer   ScenarioKind = "balance_transfer"
)

// ScenarioRequest carries the kind-specific parameters of a what-if action.
// Only the fields relevant to Kind are read.
type ScenarioRequest struct {
	Name         string           `yaml:"name,omitempty" json:"name,omitempty"`
	Kind         ScenarioKind     `yaml:"kind" json:"kind" validate:"required,oneof=payment_adjustment purchase limit_increase new_card card_closure balance_transfer"`
	CardID       string           `yaml:"card_id,omitempty" json:"card_id,omitempty"`
	TargetCardID string           `yaml:"target_card_id,omitempty" json:"target_card_id,omitempty"`
	Amount       decimal.Decimal  `yaml:"amount,omitempty" json:"amount,omitempty"`
	NewLimit     decimal.Decimal  `yaml:"new_limit,omitempty" json:"new_limit,omitempty"`
	FeePercent   decimal.Decimal  `yaml:"fee_percent,omitempty" json:"fee_percent,omitempty"`
	CardName     string           `yaml:"card_name,omitempty" json:"card_name,omitempty"`
	Date         *time.Time       `yaml:"date,omitempty" json:"date,omitempty"`
	APR          *decimal.Decimal `yaml:"apr,omitempty" json:"apr,omitempty"`
}

// ScenarioMetrics are portfolio aggregates for one card set
type ScenarioMetrics struct {
	TotalBalance       decimal.Decimal `json:"total_balance"`
	TotalCreditLimit   decimal.Decimal `json:"total_credit_limit"`
	AvailableCredit    decimal.Decimal `json:"available_credit"`
	CardsOver30        int             `json:"cards_over_30"`
	CardsOver50        int             `json:"cards_over_50"`
	AverageUtilization decimal.Decimal `json:"average_utilization"`
}

// ScenarioResult is a transformed card set diffed against its baseline
type ScenarioResult struct {
	Kind               ScenarioKind    `json:"kind,omitempty"`
	Cards              []Card          `json:"cards"`
	OverallUtilization decimal.Decimal `json:"overall_utilization"`
	UtilizationChange  decimal.Decimal `json:"utilization_change"`
	ScoreImpact        ImpactRange     `json:"score_impact"`
	Warnings           []string        `json:"warnings"`
	Recommendations    []string        `json:"recommendations"`
	Metrics            ScenarioMetrics `json:"metrics"`
	Applied            bool            `json:"applied"` // false when a guard refused the action
}

// NetChange summarizes a comparison
type NetChange string

const (
	NetPositive NetChange = "positive"
	NetNegative NetChange = "negative"
	NetNeutral  NetChange = "neutral"
)

// ComparisonResult buckets metric changes between a baseline and a scenario
type ComparisonResult struct {
	Improvements []string  `json:"improvements"`
	Declines     []string  `json:"declines"`
	NetChange    NetChange `json:"net_change"`
}

// ScenarioOutcome pairs a named scenario run with its comparison to the prior step
type ScenarioOutcome struct {
	Name       string           `json:"name"`
	Request    ScenarioRequest  `json:"request"`
	Result     ScenarioResult   `json:"result"`
	Comparison ComparisonResult `json:"comparison"`
}
