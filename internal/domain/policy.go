package domain

import (
	"github.com/shopspring/decimal"
)

// Policy holds the tunable assumptions of the engine. Zero-valued fields are
// replaced by the documented defaults in WithDefaults.
type Policy struct {
	// TargetUtilization is the per-card reported utilization goal as a fraction (default 0.05)
	TargetUtilization decimal.Decimal `yaml:"target_utilization" json:"target_utilization"`
	// OptimizationLeadDays is how many days before the statement date an optimization payment lands (default 2)
	OptimizationLeadDays int `yaml:"optimization_lead_days" json:"optimization_lead_days"`
	// OverLimitRecoveryRatio is the fraction of the limit an urgent over-limit payment restores (default 0.90)
	OverLimitRecoveryRatio decimal.Decimal `yaml:"over_limit_recovery_ratio" json:"over_limit_recovery_ratio"`
	// MinimumPaymentRatio is the minimum payment as a fraction of balance (default 0.02)
	MinimumPaymentRatio decimal.Decimal `yaml:"minimum_payment_ratio" json:"minimum_payment_ratio"`
	// MinimumPaymentFloor is the smallest minimum payment on a card with a balance (default 25)
	MinimumPaymentFloor decimal.Decimal `yaml:"minimum_payment_floor" json:"minimum_payment_floor"`
	// AssumedTransferAPR is the source APR used for balance-transfer savings as a fraction (default 0.20)
	AssumedTransferAPR decimal.Decimal `yaml:"assumed_transfer_apr" json:"assumed_transfer_apr"`
	// NewCardStatementDay and NewCardDueDay seed synthetic cards (defaults 15 and 10)
	NewCardStatementDay int `yaml:"new_card_statement_day" json:"new_card_statement_day"`
	NewCardDueDay       int `yaml:"new_card_due_day" json:"new_card_due_day"`
	// HardInquiryPenaltyMin/Max are the points subtracted for a new account (defaults 5 and 10)
	HardInquiryPenaltyMin int `yaml:"hard_inquiry_penalty_min" json:"hard_inquiry_penalty_min"`
	HardInquiryPenaltyMax int `yaml:"hard_inquiry_penalty_max" json:"hard_inquiry_penalty_max"`
}

// DefaultPolicy returns the policy with every documented default applied
func DefaultPolicy() Policy {
	return Policy{
		TargetUtilization:      decimal.NewFromFloat(0.05),
		OptimizationLeadDays:   2,
		OverLimitRecoveryRatio: decimal.NewFromFloat(0.90),
		MinimumPaymentRatio:    decimal.NewFromFloat(0.02),
		MinimumPaymentFloor:    decimal.NewFromInt(25),
		AssumedTransferAPR:     decimal.NewFromFloat(0.20),
		NewCardStatementDay:    15,
		NewCardDueDay:          10,
		HardInquiryPenaltyMin:  5,
		HardInquiryPenaltyMax:  10,
	}
}

// WithDefaults fills unset fields from DefaultPolicy
func (p Policy) WithDefaults() Policy {
	def := DefaultPolicy()
	if p.TargetUtilization.IsZero() {
		p.TargetUtilization = def.TargetUtilization
	}
	if p.OptimizationLeadDays == 0 {
		p.OptimizationLeadDays = def.OptimizationLeadDays
	}
	if p.OverLimitRecoveryRatio.IsZero() {
		p.OverLimitRecoveryRatio = def.OverLimitRecoveryRatio
	}
	if p.MinimumPaymentRatio.IsZero() {
		p.MinimumPaymentRatio = def.MinimumPaymentRatio
	}
	if p.MinimumPaymentFloor.IsZero() {
		p.MinimumPaymentFloor = def.MinimumPaymentFloor
	}
	if p.AssumedTransferAPR.IsZero() {
		p.AssumedTransferAPR = def.AssumedTransferAPR
	}
	if p.NewCardStatementDay == 0 {
		p.NewCardStatementDay = def.NewCardStatementDay
	}
	if p.NewCardDueDay == 0 {
		p.NewCardDueDay = def.NewCardDueDay
	}
	if p.HardInquiryPenaltyMin == 0 {
		p.HardInquiryPenaltyMin = def.HardInquiryPenaltyMin
	}
	if p.HardInquiryPenaltyMax == 0 {
		p.HardInquiryPenaltyMax = def.HardInquiryPenaltyMax
	}
	return p
}
