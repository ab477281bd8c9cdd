package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPortfolio = "../test/testdata/example_portfolio.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagConfig, flagTarget, flagDate, flagBudget = "portfolio.yaml", "", "", ""
	flagStrategy, flagFormat, flagSave, flagVerbose = "", "console", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPlanCommand(t *testing.T) {
	out, err := execute(t, "plan", "--config", testPortfolio, "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Date,CardID,CardName,Amount,Purpose,Description", lines[0])
	assert.Contains(t, out, "2025-03-13,rewards,Rewards Visa,4500.00,optimization")
	assert.Contains(t, out, "2025-03-18,travel,Travel Mastercard,8250.00,optimization")
}

func TestRankCommand(t *testing.T) {
	out, err := execute(t, "rank", "--config", testPortfolio, "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "Priority 1:")
	assert.NotContains(t, out, "Scenario ")
}

func TestAllocateCommandOverrides(t *testing.T) {
	out, err := execute(t, "allocate", "--config", testPortfolio, "--budget", "1000", "--strategy", "min_interest", "--format", "allocations-csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, "min_interest,"), l)
	}
}

func TestAllocateInsufficientBudget(t *testing.T) {
	_, err := execute(t, "allocate", "--config", testPortfolio, "--budget", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient budget")
}

func TestInvalidOverrides(t *testing.T) {
	_, err := execute(t, "plan", "--config", testPortfolio, "--date", "03/01/2025")
	assert.ErrorContains(t, err, "invalid --date")

	_, err = execute(t, "plan", "--config", testPortfolio, "--strategy", "snowball")
	assert.ErrorContains(t, err, "strategy must be one of")

	_, err = execute(t, "plan", "--config", testPortfolio, "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestReportSave(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "report", "--config", testPortfolio, "--format", "json", "--save", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote ")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}

func TestExampleCommandRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "example.yaml")
	_, err := execute(t, "example", path)
	require.NoError(t, err)

	out, err := execute(t, "scenario", "--config", path, "--format", "console-lite")
	require.NoError(t, err)
	assert.Contains(t, out, "Scenario Pay down travel: applied=true")
}
