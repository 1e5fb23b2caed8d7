package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/feedback"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Assign tier feedback to every employee report",
	Args:  cobra.NoArgs,
	RunE:  runFeedback,
}

func runFeedback(cmd *cobra.Command, _ []string) error {
	if cfg.Tiers == "" {
		return errors.New("no tier file configured (use --tiers)")
	}
	tiers, err := feedback.LoadTiers(cfg.Tiers)
	if err != nil {
		return err
	}

	summary, err := feedback.UpdateDir(cfg.ReportsDir, tiers, slog.Default())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = headColor.Fprintln(w, "SUMMARY BY CATEGORY:")
	names := make([]string, 0, len(summary.Members))
	for name := range summary.Members {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, tier := range names {
		members := summary.Members[tier]
		_, _ = fmt.Fprintf(w, "\n%s (%d):\n", tier, len(members))
		for _, m := range members {
			_, _ = fmt.Fprintf(w, "  - %s\n", m)
		}
	}
	for _, path := range summary.Failed {
		_, _ = failColor.Fprintf(w, "  ✗ Error updating %s\n", path)
	}
	return nil
}
