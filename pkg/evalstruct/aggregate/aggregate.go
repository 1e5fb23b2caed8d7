// Package aggregate folds the monthly sheets of a cohort workbook into one
// cumulative record per employee.
package aggregate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
)

// EvaluationWindow is the number of trailing fields of a member record that
// are folded per month.
const EvaluationWindow = 4

// SprintSeparator joins sprint keys and names in the display strings.
const SprintSeparator = " & "

// ErrTypeMismatch indicates a non-numeric value met an addition.
var ErrTypeMismatch = errors.New("value is not numeric")

// ErrShortRecord indicates a member record holds fewer fields than the window.
var ErrShortRecord = errors.New("record shorter than evaluation window")

// Error is a skipped aggregation contribution.
type Error struct {
	Month  string
	Member string
	Header string
	Err    error
}

func (e *Error) Error() string {
	if e.Header == "" {
		return fmt.Sprintf("aggregate %q in %q: %v", e.Member, e.Month, e.Err)
	}
	return fmt.Sprintf("aggregate %q in %q, header %q: %v", e.Member, e.Month, e.Header, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ParseNumber parses a cell value as an integer or a decimal number.
// NaN and infinities are not numbers here.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return float64(i), true
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f, true
	}
	return 0, false
}

// LoadWorkbook reads a workbook JSON document keeping sheet and member order.
func LoadWorkbook(path string) (*models.WorkbookResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	wb := models.NewWorkbookResult(filepath.Base(path))
	if err := json.Unmarshal(data, wb); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return wb, nil
}

// AggregateFile loads a workbook document and aggregates it. The cohort is
// named after the file's base name.
func AggregateFile(path string) (*models.CohortAggregate, error) {
	wb, err := LoadWorkbook(path)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(path)
	return Aggregate(strings.TrimSuffix(base, filepath.Ext(base)), wb)
}

// Aggregate folds every month of wb into per-employee totals.
//
// For each month and member, the last EvaluationWindow fields are folded in
// column order: the first occurrence of a header sets its value, later
// occurrences add to it. Contributions that cannot be added and records
// shorter than the window are skipped; the skipped contributions are returned
// as a joined error next to the complete aggregate. Each call starts from an
// empty accumulator.
func Aggregate(cohort string, wb *models.WorkbookResult) (*models.CohortAggregate, error) {
	agg := &models.CohortAggregate{
		Cohort:    cohort,
		Months:    wb.SheetNames(),
		Employees: []*models.EmployeeAggregate{},
	}
	index := make(map[string]*models.EmployeeAggregate)
	var errs []error

	var allKeys, allNames distinct
	for _, month := range agg.Months {
		sheet, _ := wb.Sheet(month)

		for _, name := range sheet.MemberNames() {
			record, _ := sheet.Member(name)
			if len(record) < EvaluationWindow {
				errs = append(errs, &Error{
					Month:  month,
					Member: name,
					Err:    fmt.Errorf("%w: %d fields", ErrShortRecord, len(record)),
				})
				continue
			}
			window := append(models.FieldRecord(nil), record[len(record)-EvaluationWindow:]...)

			emp, ok := index[name]
			if !ok {
				emp = &models.EmployeeAggregate{Name: name, Scores: models.NewScores()}
				index[name] = emp
				agg.Employees = append(agg.Employees, emp)
			}
			emp.Months = append(emp.Months, models.MonthWindow{Month: month, Fields: window})

			for _, field := range window {
				if err := fold(emp.Scores, field); err != nil {
					errs = append(errs, &Error{Month: month, Member: name, Header: field.Header, Err: err})
				}
			}
		}

		var keys, names distinct
		if sheet != nil {
			sheet.Sprints.Each(func(key string, entry models.SprintEntry) {
				key = strings.TrimRight(key, ":")
				keys.add(key)
				names.add(entry.NameOfSprint)
				allKeys.add(key)
				allNames.add(entry.NameOfSprint)
			})
		}
		agg.MonthSprints = append(agg.MonthSprints, models.MonthSprints{
			Month:   month,
			Numbers: keys.join(),
			Names:   names.join(),
		})
	}
	agg.SprintNumbers = allKeys.join()
	agg.SprintNames = allNames.join()

	return agg, errors.Join(errs...)
}

// fold adds one field into the accumulator.
func fold(scores *models.Scores, field models.Field) error {
	num, numeric := ParseNumber(field.Value)
	current, seen := scores.Get(field.Header)
	if !seen {
		if numeric {
			scores.Set(field.Header, models.Score{Value: num, Numeric: true})
		} else {
			scores.Set(field.Header, models.Score{Text: field.Value})
		}
		return nil
	}
	if !current.Numeric {
		return fmt.Errorf("%w: accumulated %q", ErrTypeMismatch, current.Text)
	}
	if !numeric {
		return fmt.Errorf("%w: %q", ErrTypeMismatch, field.Value)
	}
	current.Value += num
	scores.Set(field.Header, current)
	return nil
}

// distinct collects non-empty strings once each, in first-seen order.
type distinct struct {
	seen  map[string]bool
	items []string
}

func (d *distinct) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" || d.seen[s] {
		return
	}
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	d.seen[s] = true
	d.items = append(d.items, s)
}

func (d *distinct) join() string {
	return strings.Join(d.items, SprintSeparator)
}
