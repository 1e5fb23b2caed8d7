// Package export writes aggregated cohort scores to Parquet files using
// github.com/parquet-go/parquet-go.
package export

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
)

// ScoreRow is one accumulated score of one employee.
type ScoreRow struct {
	// Cohort is the workbook the score was aggregated from
	Cohort string `parquet:"cohort,snappy"`

	// Employee is the member name
	Employee string `parquet:"employee,snappy"`

	// Header is the score column header
	Header string `parquet:"header,snappy"`

	// Value is the cumulative numeric value, 0 when Numeric is false
	Value float64 `parquet:"value,snappy"`

	// Numeric reports whether Value holds the score
	Numeric bool `parquet:"numeric"`

	// Raw is the score as written to JSON
	Raw string `parquet:"raw,snappy"`

	// Months is the number of months folded for the employee
	Months int32 `parquet:"months,snappy"`

	// SprintNumbers is the cohort sprint key display string
	SprintNumbers string `parquet:"sprint_numbers,snappy"`

	// SprintNames is the cohort sprint name display string
	SprintNames string `parquet:"sprint_names,snappy"`
}

// ScoreRows flattens cohort aggregates into one row per employee and header.
func ScoreRows(cohorts ...*models.CohortAggregate) []ScoreRow {
	var rows []ScoreRow
	for _, c := range cohorts {
		for _, emp := range c.Employees {
			for _, header := range emp.Scores.Headers() {
				score, _ := emp.Scores.Get(header)
				rows = append(rows, ScoreRow{
					Cohort:        c.Cohort,
					Employee:      emp.Name,
					Header:        header,
					Value:         score.Value,
					Numeric:       score.Numeric,
					Raw:           score.String(),
					Months:        int32(len(emp.Months)),
					SprintNumbers: c.SprintNumbers,
					SprintNames:   c.SprintNames,
				})
			}
		}
	}
	return rows
}

// WriteScoresParquet writes score rows to a Parquet file.
func WriteScoresParquet(data []ScoreRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	// The schema is derived from the ScoreRow struct tags
	writer := parquet.NewGenericWriter[ScoreRow](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		_ = file.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return file.Close()
}
