package evalstruct

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/output"
	"golang.org/x/sync/errgroup"
)

// FileOutcome describes the processing of one workbook in a batch.
type FileOutcome struct {
	// Input is the workbook path.
	Input string
	// Output is the written JSON path, empty on failure.
	Output string
	// Sheets is the number of eligible sheets processed.
	Sheets int
	// Members is the number of member records written.
	Members int
	// Duration is the time spent on the file.
	Duration time.Duration
	// Err is the failure, nil on success.
	Err error
}

// Recorder persists batch outcomes.
type Recorder interface {
	RecordFile(outcome FileOutcome) error
}

// BatchReport collects the outcome of every workbook of a batch in input order.
type BatchReport struct {
	Files []FileOutcome
}

// Succeeded returns the number of files written.
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes of the files that could not be processed.
func (r *BatchReport) Failed() []FileOutcome {
	var failed []FileOutcome
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// ListWorkbooks returns the .xlsx files directly inside dir, sorted by name.
// Office lock files (~$name.xlsx) are skipped.
func ListWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputDirMissing, dir)
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".xlsx") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// OutputPath returns the JSON document path for a workbook.
func OutputPath(outputDir, workbookPath string) string {
	base := filepath.Base(workbookPath)
	return filepath.Join(outputDir, strings.TrimSuffix(base, filepath.Ext(base))+".json")
}

// RunBatch extracts every workbook of the input directory into the output
// directory. A failing workbook is reported in the returned BatchReport and
// never stops the others. Only a missing input directory, an unusable output
// directory or a cancelled context end the run with an error.
func RunBatch(ctx context.Context, opts BatchOptions) (*BatchReport, error) {
	log := opts.logger()

	files, err := ListWorkbooks(opts.InputDir)
	if err != nil {
		return nil, err
	}
	report := &BatchReport{Files: make([]FileOutcome, len(files))}
	if len(files) == 0 {
		log.Warn("No .xlsx files found", slog.String("input_dir", opts.InputDir))
		return report, nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Files[i] = processFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	if opts.Recorder != nil {
		for _, outcome := range report.Files {
			if err := opts.Recorder.RecordFile(outcome); err != nil {
				log.Warn("Could not record outcome",
					slog.String("file", outcome.Input), slog.Any("error", err))
			}
		}
	}

	return report, nil
}

// processFile extracts one workbook and writes its JSON document.
func processFile(path string, opts BatchOptions) FileOutcome {
	start := time.Now()
	log := opts.logger().With(slog.String("file", filepath.Base(path)))
	outcome := FileOutcome{Input: path}

	log.Info("Processing workbook")
	wb, err := Extract(path, opts.Options)
	if err != nil {
		outcome.Err = err
		outcome.Duration = time.Since(start)
		log.Error("Extraction failed", slog.Any("error", err))
		return outcome
	}
	outcome.Sheets = len(wb.SheetNames())
	outcome.Members = wb.MemberCount()

	data, err := output.ToJSON(wb, true)
	if err != nil {
		outcome.Err = NewExtractionError(wb.BookName, "", "write", err)
		outcome.Duration = time.Since(start)
		log.Error("Serialization failed", slog.Any("error", err))
		return outcome
	}

	dest := OutputPath(opts.OutputDir, path)
	if err := output.WriteFileAtomic(dest, data, 0644); err != nil {
		outcome.Err = NewExtractionError(wb.BookName, "", "write", err)
		outcome.Duration = time.Since(start)
		log.Error("Write failed", slog.Any("error", err))
		return outcome
	}
	outcome.Output = dest
	outcome.Duration = time.Since(start)

	log.Info("Workbook written",
		slog.String("output", dest),
		slog.Int("sheets", outcome.Sheets),
		slog.Int("members", outcome.Members))
	return outcome
}
