// Package main provides the CLI entry point for evalstruct.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set by the linker at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "evalstruct",
	Short: "Extract cohort evaluation data from monthly Excel sheets",
	Long: `evalstruct extracts team members, sprint tables and score columns from
monthly cohort evaluation workbooks, writes one JSON document per workbook and
aggregates the months into per-employee records.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(cfg.LogLevel)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "evalstruct %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default: .evalstruct.yaml in . or $HOME)")
	flags.String("input-dir", "", "Directory holding the .xlsx workbooks")
	flags.String("output-dir", "", "Directory receiving the extracted JSON documents")
	flags.String("aggregate-dir", "", "Directory receiving the cohort aggregates")
	flags.String("reports-dir", "", "Directory receiving the per-employee report records")
	flags.Int("workers", 0, "Number of workbooks processed concurrently")
	flags.String("ledger", "", "SQLite ledger path (empty disables run tracking)")
	flags.String("parquet", "", "Parquet export path for aggregated scores")
	flags.String("tiers", "", "YAML tier file for feedback assignment")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	for _, name := range []string{
		"config", "input-dir", "output-dir", "aggregate-dir", "reports-dir",
		"workers", "ledger", "parquet", "tiers", "log-level",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(extractCmd, aggregateCmd, feedbackCmd, historyCmd, versionCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", failColor.Sprint("Error:"), err)
		os.Exit(1)
	}
}
