package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cardwise/utilization-optimizer/internal/calculation"
	"github.com/cardwise/utilization-optimizer/internal/config"
	"github.com/cardwise/utilization-optimizer/internal/domain"
	"github.com/cardwise/utilization-optimizer/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagTarget   string
	flagDate     string
	flagBudget   string
	flagStrategy string
	flagFormat   string
	flagSave     string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "cardopt",
	Short: "Credit card utilization optimizer",
	Long: "Plan statement-date payments, rank cards, split a payment budget and run\n" +
		"what-if scenarios for a credit card portfolio described in a YAML file.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, calculation.FullReport)
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "portfolio.yaml", "Portfolio YAML file")
	rootCmd.PersistentFlags().StringVar(&flagTarget, "target", "", "Target utilization per card as a fraction (e.g. 0.05)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Reference date YYYY-MM-DD (default: file value or today)")
	rootCmd.PersistentFlags().StringVar(&flagBudget, "budget", "", "Monthly payment budget for allocation")
	rootCmd.PersistentFlags().StringVar(&flagStrategy, "strategy", "", "Allocation strategy: "+strategyList())
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+", all")
	rootCmd.PersistentFlags().StringVar(&flagSave, "save", "", "Write the report to this directory instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print engine debug logging to stderr")
}

func strategyList() string {
	names := make([]string, len(domain.StrategyKinds))
	for i, k := range domain.StrategyKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// loadConfig reads the portfolio file and applies command-line overrides.
func loadConfig() (*domain.Configuration, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagDate != "" {
		ref, err := time.Parse("2006-01-02", flagDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: %w", flagDate, err)
		}
		cfg.ReferenceDate = &ref
	}
	if flagBudget != "" {
		budget, err := decimal.NewFromString(flagBudget)
		if err != nil {
			return nil, fmt.Errorf("invalid --budget %q: %w", flagBudget, err)
		}
		cfg.Budget = budget
	}
	if flagTarget != "" {
		target, err := decimal.NewFromString(flagTarget)
		if err != nil {
			return nil, fmt.Errorf("invalid --target %q: %w", flagTarget, err)
		}
		cfg.Policy.TargetUtilization = target
	}
	if flagStrategy != "" {
		cfg.Strategy = domain.StrategyKind(flagStrategy)
	}

	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// run is the shared path for every command: load, compute the requested
// sections and emit them in the chosen format.
func run(cmd *cobra.Command, opts calculation.ReportOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine := calculation.NewEngineWithPolicy(cfg.Policy)
	engine.SetLogger(newConsoleLogger(os.Stderr, flagVerbose))
	if opts.Allocate && cfg.Strategy != "" {
		opts.AllStrategies = false
	}

	report, err := engine.BuildReport(context.Background(), cfg, opts)
	if err != nil {
		return err
	}
	report.Assumptions = output.GenerateAssumptions(engine.Policy)

	if flagSave != "" {
		files, err := output.GenerateReport(report, flagFormat, flagSave)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %s\n", f)
		}
		return nil
	}

	data, err := output.RenderReport(report, flagFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
