// Package evalstruct extracts cohort evaluation data from monthly workbook sheets.
package evalstruct

import (
	"log/slog"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/parser"
)

// DefaultWorkers is the default number of workbooks processed at once.
const DefaultWorkers = 1

// Options configures extraction behavior.
type Options struct {
	// Rules holds the matching heuristics. Nil matchers use the defaults.
	Rules parser.Rules
	// Logger receives structured diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Rules: parser.DefaultRules(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// BatchOptions configures a batch run over a directory of workbooks.
type BatchOptions struct {
	Options
	// InputDir holds the .xlsx workbooks.
	InputDir string
	// OutputDir receives one .json document per workbook.
	OutputDir string
	// Workers bounds the number of workbooks processed concurrently.
	// Values below 1 mean DefaultWorkers.
	Workers int
	// Recorder, if set, is told about every file outcome.
	Recorder Recorder
}

func (o BatchOptions) workers() int {
	if o.Workers < 1 {
		return DefaultWorkers
	}
	return o.Workers
}
