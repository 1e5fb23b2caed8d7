package models

import (
	"encoding/json"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Score is an accumulated value. Numeric scores serialize as JSON numbers,
// anything else keeps its original text.
type Score struct {
	// Value is the numeric total when Numeric is true.
	Value float64
	// Text is the raw value of a non-numeric score.
	Text string
	// Numeric reports whether Value holds the score.
	Numeric bool
}

// String renders the score the way it is written to JSON.
func (s Score) String() string {
	if s.Numeric {
		return strconv.FormatFloat(s.Value, 'f', -1, 64)
	}
	return s.Text
}

// MarshalJSON encodes numeric scores as numbers and the rest as strings.
func (s Score) MarshalJSON() ([]byte, error) {
	if s.Numeric {
		return json.Marshal(s.Value)
	}
	return encodeJSON(s.Text)
}

// UnmarshalJSON accepts either a number or a string.
func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Score{Value: f, Numeric: true}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*s = Score{Text: text}
	return nil
}

// Scores maps headers to accumulated scores in first-seen order.
type Scores struct {
	m *orderedmap.OrderedMap[string, Score]
}

// NewScores returns an empty Scores.
func NewScores() *Scores {
	return &Scores{m: orderedmap.New[string, Score]()}
}

// Set stores the score for header.
func (s *Scores) Set(header string, score Score) {
	if s.m == nil {
		s.m = orderedmap.New[string, Score]()
	}
	s.m.Set(header, score)
}

// Get returns the score for header.
func (s *Scores) Get(header string) (Score, bool) {
	if s == nil || s.m == nil {
		return Score{}, false
	}
	return s.m.Get(header)
}

// Len returns the number of headers.
func (s *Scores) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return s.m.Len()
}

// Headers returns the headers in first-seen order.
func (s *Scores) Headers() []string {
	if s.Len() == 0 {
		return nil
	}
	headers := make([]string, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		headers = append(headers, pair.Key)
	}
	return headers
}

// MarshalJSON encodes the scores as an ordered object.
func (s Scores) MarshalJSON() ([]byte, error) {
	var w objectWriter
	if s.m != nil {
		for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
			if err := w.field(pair.Key, pair.Value); err != nil {
				return nil, err
			}
		}
	}
	return w.bytes(), nil
}

// UnmarshalJSON decodes an ordered object of scores.
func (s *Scores) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, Score]()
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	s.m = m
	return nil
}

// MonthWindow is the evaluation window folded for one employee in one month.
type MonthWindow struct {
	// Month is the sheet name the window was taken from.
	Month string `json:"month"`
	// Fields are the trailing fields of the member record.
	Fields FieldRecord `json:"fields"`
}

// EmployeeAggregate is the cumulative record of one employee across months.
type EmployeeAggregate struct {
	// Name is the member name as written in the sheets.
	Name string `json:"employee_name"`
	// Scores maps header to the cumulative value.
	Scores *Scores `json:"scores"`
	// Months lists the folded windows in month order.
	Months []MonthWindow `json:"months"`
}

// MonthSprints holds the sprint display strings of one month.
type MonthSprints struct {
	Month   string `json:"month"`
	Numbers string `json:"sprint_numbers"`
	Names   string `json:"sprint_names"`
}

// CohortAggregate is the aggregation result of one cohort workbook.
type CohortAggregate struct {
	// Cohort is the workbook base name.
	Cohort string `json:"cohort"`
	// Months lists the sheet names in workbook order.
	Months []string `json:"months"`
	// Employees lists the aggregates in first-seen order.
	Employees []*EmployeeAggregate `json:"employees"`
	// SprintNumbers joins the distinct sprint keys of all months with " & ".
	SprintNumbers string `json:"sprint_numbers"`
	// SprintNames joins the distinct sprint names of all months with " & ".
	SprintNames string `json:"sprint_names"`
	// MonthSprints holds the same strings per month.
	MonthSprints []MonthSprints `json:"month_sprints"`
}

// Employee returns the aggregate of the named employee.
func (c *CohortAggregate) Employee(name string) (*EmployeeAggregate, bool) {
	for _, e := range c.Employees {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}
