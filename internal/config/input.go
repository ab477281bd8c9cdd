package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct {
	validate *validator.Validate
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	v := validator.New()
	// decimal fields are validated as numbers by the gt/gte/min/max tags
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &InputParser{validate: v}
}

// LoadFromFile loads a portfolio configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML configuration. Policy defaults are
// applied before validation.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	config.Policy = config.Policy.WithDefaults()

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Cards) == 0 {
		return fmt.Errorf("no cards provided")
	}

	if err := ip.validate.Struct(config); err != nil {
		return describeValidation(err)
	}

	seen := make(map[string]bool, len(config.Cards))
	for i, card := range config.Cards {
		if seen[card.ID] {
			return fmt.Errorf("card %d: duplicate id %q", i, card.ID)
		}
		seen[card.ID] = true
		if card.APR != nil && card.APR.IsNegative() {
			return fmt.Errorf("card %s: apr cannot be negative", card.ID)
		}
	}

	policy := config.Policy.WithDefaults()
	if err := ip.validatePolicy(&policy); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}

	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(seen, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
	}

	return nil
}

// validatePolicy checks the ranges the engine relies on
func (ip *InputParser) validatePolicy(p *domain.Policy) error {
	one := decimal.NewFromInt(1)
	if !p.TargetUtilization.IsPositive() || p.TargetUtilization.GreaterThanOrEqual(one) {
		return fmt.Errorf("target utilization must be between 0 and 1")
	}
	if p.OptimizationLeadDays < 0 || p.OptimizationLeadDays > 27 {
		return fmt.Errorf("optimization lead days must be between 0 and 27")
	}
	if !p.OverLimitRecoveryRatio.IsPositive() || p.OverLimitRecoveryRatio.GreaterThan(one) {
		return fmt.Errorf("over-limit recovery ratio must be between 0 and 1")
	}
	if p.MinimumPaymentRatio.IsNegative() || p.MinimumPaymentRatio.GreaterThan(one) {
		return fmt.Errorf("minimum payment ratio must be between 0 and 1")
	}
	if p.MinimumPaymentFloor.IsNegative() {
		return fmt.Errorf("minimum payment floor cannot be negative")
	}
	if p.NewCardStatementDay < 1 || p.NewCardStatementDay > 31 || p.NewCardDueDay < 1 || p.NewCardDueDay > 31 {
		return fmt.Errorf("new card statement and due days must be between 1 and 31")
	}
	if p.HardInquiryPenaltyMin > p.HardInquiryPenaltyMax {
		return fmt.Errorf("hard inquiry penalty min cannot exceed max")
	}
	return nil
}

// validateScenario checks the fields each scenario kind reads
func (ip *InputParser) validateScenario(cards map[string]bool, s *domain.ScenarioRequest) error {
	needsCard := s.Kind != domain.ScenarioNewCard
	if needsCard && !cards[s.CardID] {
		return fmt.Errorf("%s: unknown card_id %q", s.Kind, s.CardID)
	}

	switch s.Kind {
	case domain.ScenarioPaymentAdjustment, domain.ScenarioPurchase:
		if !s.Amount.IsPositive() {
			return fmt.Errorf("%s: amount must be positive", s.Kind)
		}
	case domain.ScenarioLimitIncrease, domain.ScenarioNewCard:
		if !s.NewLimit.IsPositive() {
			return fmt.Errorf("%s: new_limit must be positive", s.Kind)
		}
	case domain.ScenarioBalanceTransfer:
		if !cards[s.TargetCardID] {
			return fmt.Errorf("%s: unknown target_card_id %q", s.Kind, s.TargetCardID)
		}
		if s.TargetCardID == s.CardID {
			return fmt.Errorf("%s: source and target cards must differ", s.Kind)
		}
		if !s.Amount.IsPositive() {
			return fmt.Errorf("%s: amount must be positive", s.Kind)
		}
		if s.FeePercent.IsNegative() {
			return fmt.Errorf("%s: fee_percent cannot be negative", s.Kind)
		}
	}
	return nil
}

// describeValidation turns the first validator failure into a readable error
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Configuration.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%s failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
}

// CreateExampleConfiguration returns a small three-card portfolio with a
// budget and a scenario chain, used by the example command.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	ref := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	opened := time.Date(2012, 5, 1, 0, 0, 0, 0, time.UTC)
	aprRewards := decimal.RequireFromString("24.99")
	aprTravel := decimal.RequireFromString("21.49")

	return &domain.Configuration{
		ReferenceDate: &ref,
		Policy:        domain.DefaultPolicy(),
		Cards: []domain.Card{
			{
				ID: "rewards", Name: "Rewards Visa",
				CreditLimit: decimal.NewFromInt(10000), Balance: decimal.NewFromInt(5000),
				StatementDay: 15, DueDay: 10, APR: &aprRewards, OpenedDate: &opened,
			},
			{
				ID: "travel", Name: "Travel Mastercard",
				CreditLimit: decimal.NewFromInt(15000), Balance: decimal.NewFromInt(9000),
				StatementDay: 20, DueDay: 15, APR: &aprTravel,
			},
			{
				ID: "store", Name: "Store Card",
				CreditLimit: decimal.NewFromInt(2000), Balance: decimal.Zero,
				StatementDay: 5, DueDay: 28,
			},
		},
		Budget:   decimal.NewFromInt(2500),
		Strategy: domain.StrategyMaxScore,
		Scenarios: []domain.ScenarioRequest{
			{Name: "Pay down travel", Kind: domain.ScenarioPaymentAdjustment, CardID: "travel", Amount: decimal.NewFromInt(2000)},
			{Name: "Move rewards balance", Kind: domain.ScenarioBalanceTransfer, CardID: "rewards", TargetCardID: "store", Amount: decimal.NewFromInt(1500), FeePercent: decimal.NewFromInt(3)},
			{Name: "Ask for a higher limit", Kind: domain.ScenarioLimitIncrease, CardID: "rewards", NewLimit: decimal.NewFromInt(15000)},
		},
	}
}
