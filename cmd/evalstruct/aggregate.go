package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/aggregate"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/export"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/output"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/report"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Fold the monthly JSON documents into per-employee records",
	Args:  cobra.NoArgs,
	RunE:  runAggregate,
}

func runAggregate(cmd *cobra.Command, _ []string) error {
	files, err := filepath.Glob(filepath.Join(cfg.OutputDir, "*.json"))
	if err != nil {
		return err
	}
	sort.Strings(files)
	if len(files) == 0 {
		_, _ = warnColor.Fprintf(cmd.OutOrStdout(), "No .json files found in '%s'.\n", cfg.OutputDir)
		return nil
	}

	for _, dir := range []string{cfg.AggregateDir, cfg.ReportsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	var cohorts []*models.CohortAggregate
	for _, path := range files {
		agg, err := aggregateOne(path)
		if err != nil {
			_, _ = failColor.Fprintf(cmd.OutOrStdout(), "  ✗ Failed to aggregate %s: %v\n", filepath.Base(path), err)
			continue
		}
		cohorts = append(cohorts, agg)
	}

	if cfg.Parquet != "" {
		if err := export.WriteScoresParquet(export.ScoreRows(cohorts...), cfg.Parquet); err != nil {
			slog.Error("Parquet export failed", slog.Any("error", err))
		} else {
			slog.Info("Parquet export written", slog.String("path", cfg.Parquet))
		}
	}

	return writeAggregateTable(cmd.OutOrStdout(), cohorts)
}

// aggregateOne aggregates one workbook document and writes its outputs.
func aggregateOne(path string) (*models.CohortAggregate, error) {
	log := slog.With(slog.String("file", filepath.Base(path)))

	agg, err := aggregate.AggregateFile(path)
	if agg == nil {
		return nil, err
	}
	for _, skipped := range unwrapAll(err) {
		log.Warn("Contribution skipped", slog.Any("error", skipped))
	}

	if cfg.AggregateDir != "" {
		data, err := output.ToJSON(agg, true)
		if err != nil {
			return nil, err
		}
		dest := filepath.Join(cfg.AggregateDir, agg.Cohort+".json")
		if err := output.WriteFileAtomic(dest, data, 0644); err != nil {
			return nil, err
		}
		log.Info("Aggregate written", slog.String("output", dest))
	}

	if cfg.ReportsDir != "" {
		for _, rep := range report.BuildAll(agg) {
			data, err := output.ToJSONIndent(rep, "  ")
			if err != nil {
				log.Error("Report serialization failed", slog.String("employee", rep.EmployeeName), slog.Any("error", err))
				continue
			}
			dest := filepath.Join(cfg.ReportsDir, report.FileName(agg.Cohort, rep.EmployeeName))
			if err := output.WriteFileAtomic(dest, data, 0644); err != nil {
				log.Error("Report write failed", slog.String("employee", rep.EmployeeName), slog.Any("error", err))
			}
		}
	}

	return agg, nil
}

// unwrapAll flattens a joined error into its parts.
func unwrapAll(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

// writeAggregateTable renders one line per employee.
func writeAggregateTable(w io.Writer, cohorts []*models.CohortAggregate) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Cohort", "Employee", "Months", "Scores", "Sprints"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, c := range cohorts {
		for _, emp := range c.Employees {
			var scores []string
			for _, header := range emp.Scores.Headers() {
				s, _ := emp.Scores.Get(header)
				scores = append(scores, header+"="+s.String())
			}
			data = append(data, []string{
				c.Cohort,
				emp.Name,
				strconv.Itoa(len(emp.Months)),
				strings.Join(scores, "; "),
				c.SprintNumbers,
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
