package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `reference_date: 2025-03-01
budget: 1500
strategy: min_interest
policy:
  target_utilization: 0.09
cards:
  - id: rewards
    name: "Rewards Visa"
    credit_limit: 10000
    balance: 5000
    statement_day: 15
    due_day: 10
    apr: 24.99
    opened_date: 2012-05-01
  - id: store
    name: "Store Card"
    credit_limit: 2000
    balance: 0
    statement_day: 5
    due_day: 28
scenarios:
  - name: "Transfer"
    kind: balance_transfer
    card_id: rewards
    target_card_id: store
    amount: 1000
    fee_percent: 3
  - kind: new_card
    card_name: "Cashback"
    new_limit: 5000
`

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o600))

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	require.NotNil(t, config.ReferenceDate)
	assert.True(t, config.ReferenceDate.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, config.Budget.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, domain.StrategyMinInterest, config.Strategy)

	require.Len(t, config.Cards, 2)
	rewards := config.Cards[0]
	assert.Equal(t, "Rewards Visa", rewards.Name)
	assert.True(t, rewards.CreditLimit.Equal(decimal.NewFromInt(10000)))
	require.NotNil(t, rewards.APR)
	assert.True(t, rewards.APR.Equal(decimal.RequireFromString("24.99")))
	require.NotNil(t, rewards.OpenedDate)
	assert.Equal(t, 2012, rewards.OpenedDate.Year())
	assert.Nil(t, config.Cards[1].APR)

	// explicit policy values win, the rest take defaults
	assert.True(t, config.Policy.TargetUtilization.Equal(decimal.RequireFromString("0.09")))
	assert.Equal(t, 2, config.Policy.OptimizationLeadDays)
	assert.True(t, config.Policy.MinimumPaymentFloor.Equal(decimal.NewFromInt(25)))

	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, domain.ScenarioBalanceTransfer, config.Scenarios[0].Kind)
	assert.True(t, config.Scenarios[0].FeePercent.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "Cashback", config.Scenarios[1].CardName)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("cards: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateConfiguration_Errors(t *testing.T) {
	apr := decimal.NewFromInt(-1)

	testCases := []struct {
		desc    string
		mutate  func(c *domain.Configuration)
		message string
	}{
		{"no cards", func(c *domain.Configuration) { c.Cards = nil }, "no cards provided"},
		{"missing name", func(c *domain.Configuration) { c.Cards[0].Name = "" }, "cards[0].name is required"},
		{"zero limit", func(c *domain.Configuration) { c.Cards[1].CreditLimit = decimal.Zero }, "cards[1].credit_limit failed gt"},
		{"negative balance", func(c *domain.Configuration) { c.Cards[0].Balance = decimal.NewFromInt(-5) }, "cards[0].balance failed gte"},
		{"statement day out of range", func(c *domain.Configuration) { c.Cards[0].StatementDay = 32 }, "cards[0].statement_day failed max"},
		{"due day zero", func(c *domain.Configuration) { c.Cards[0].DueDay = 0 }, "cards[0].due_day failed min"},
		{"duplicate id", func(c *domain.Configuration) { c.Cards[1].ID = c.Cards[0].ID }, "duplicate id"},
		{"negative apr", func(c *domain.Configuration) { c.Cards[0].APR = &apr }, "apr cannot be negative"},
		{"negative budget", func(c *domain.Configuration) { c.Budget = decimal.NewFromInt(-1) }, "budget failed gte"},
		{"unknown strategy", func(c *domain.Configuration) { c.Strategy = "snowball" }, "strategy must be one of"},
		{"unknown scenario kind", func(c *domain.Configuration) { c.Scenarios[0].Kind = "lottery" }, "scenarios[0].kind must be one of"},
		{"scenario unknown card", func(c *domain.Configuration) { c.Scenarios[0].CardID = "missing" }, "unknown card_id"},
		{"transfer to same card", func(c *domain.Configuration) { c.Scenarios[0].TargetCardID = c.Scenarios[0].CardID }, "must differ"},
		{"new card without limit", func(c *domain.Configuration) { c.Scenarios[1].NewLimit = decimal.Zero }, "new_limit must be positive"},
		{"target utilization too high", func(c *domain.Configuration) { c.Policy.TargetUtilization = decimal.NewFromInt(2) }, "target utilization"},
		{"penalty range inverted", func(c *domain.Configuration) {
			c.Policy.HardInquiryPenaltyMin = 12
			c.Policy.HardInquiryPenaltyMax = 4
		}, "hard inquiry penalty"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			parser := NewInputParser()
			config, err := parser.Parse([]byte(validConfig))
			require.NoError(t, err)

			tc.mutate(config)
			err = parser.ValidateConfiguration(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	assert.Len(t, config.Cards, 3)
	assert.NotEmpty(t, config.Scenarios)
	assert.NoError(t, parser.ValidateConfiguration(config))
}
