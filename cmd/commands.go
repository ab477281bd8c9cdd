package cmd

import (
	"github.com/cardwise/utilization-optimizer/internal/calculation"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Statement-date payment schedule for every card",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, calculation.ReportOptions{Optimize: true})
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank cards by payment priority",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, calculation.ReportOptions{Rank: true})
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Split the payment budget across cards",
	Long:  "Split the payment budget across cards. Every strategy is compared unless --strategy or the file selects one.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, calculation.ReportOptions{Allocate: true, Rank: true, AllStrategies: true})
	},
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the configured what-if scenario chain",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, calculation.ReportOptions{Scenarios: true})
	},
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Full report: plan, priorities, allocation and scenarios",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd, calculation.FullReport)
	},
}

func init() {
	rootCmd.AddCommand(planCmd, rankCmd, allocateCmd, scenarioCmd, reportCmd)
}
