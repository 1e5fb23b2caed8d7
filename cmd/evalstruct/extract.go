package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/ledger"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Convert every workbook of the input directory to JSON",
	Args:  cobra.NoArgs,
	RunE:  runExtract,
}

func runExtract(cmd *cobra.Command, _ []string) error {
	store, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	started := time.Now()
	if _, err := store.BeginRun(cfg.InputDir, started); err != nil {
		slog.Warn("Could not start ledger run", slog.Any("error", err))
	}

	opts := evalstruct.BatchOptions{
		Options: evalstruct.Options{
			Rules:  cfg.Rules,
			Logger: slog.Default(),
		},
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Recorder:  store,
	}

	report, err := evalstruct.RunBatch(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	w := cmd.OutOrStdout()
	if len(report.Files) == 0 {
		_, _ = warnColor.Fprintf(w, "No .xlsx files found in '%s'.\n", cfg.InputDir)
	}
	for _, f := range report.Files {
		name := filepath.Base(f.Input)
		if f.Err != nil {
			_, _ = failColor.Fprintf(w, "  ✗ Error processing %s: %v\n", name, f.Err)
			continue
		}
		_, _ = okColor.Fprintf(w, "  ✓ Generated: %s", filepath.Base(f.Output))
		_, _ = fmt.Fprintf(w, " (%d sheets, %d members)\n", f.Sheets, f.Members)
	}

	failed := len(report.Failed())
	if err := store.EndRun(time.Now(), report.Succeeded(), failed); err != nil {
		slog.Warn("Could not close ledger run", slog.Any("error", err))
	}

	_, _ = fmt.Fprintf(w, "\nTransformation complete! %d written, %d failed in %s.\n",
		report.Succeeded(), failed, time.Since(started).Round(time.Millisecond))
	return nil
}
