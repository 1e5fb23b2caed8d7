package aggregate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/output"
)

// cohortDoc is a transformer document with two months.
const cohortDoc = `{
    "June": {
        "Alice": [
            ["Attendance", "20"],
            ["Sprint Commitments", "40"],
            ["Mini Quizzes", "10"],
            ["Monthly Evaluation", "30"],
            ["Total Score", "80"]
        ],
        "Bob": [
            ["Sprint Commitments", "20"],
            ["Mini Quizzes", "5"],
            ["Monthly Evaluation", "10"],
            ["Total Score", "35"]
        ],
        "sprint_info": {
            "sprint_1": {"name_of_sprint": "Overview", "url": "u1"},
            "sprint_2:": {"name_of_sprint": "Data Structures", "url": "u2"}
        }
    },
    "July": {
        "Bob": [
            ["Sprint Commitments", "25"],
            ["Mini Quizzes", "7.5"],
            ["Monthly Evaluation", "15"],
            ["Total Score", "47.5"]
        ],
        "Alice": [
            ["Sprint Commitments", "45"],
            ["Mini Quizzes", "12"],
            ["Monthly Evaluation", "33"],
            ["Total Score", "90"]
        ],
        "Carol": [
            ["Total Score", "10"]
        ],
        "sprint_info": {
            "sprint_2": {"name_of_sprint": "Data Structures", "url": "u2"},
            "sprint_3": {"name_of_sprint": "Networks", "url": "u3"}
        }
    }
}`

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Cohort A.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func score(t *testing.T, emp *models.EmployeeAggregate, header string) models.Score {
	t.Helper()
	s, ok := emp.Scores.Get(header)
	require.True(t, ok, "missing header %q", header)
	return s
}

func TestAggregateFile(t *testing.T) {
	agg, err := AggregateFile(writeDoc(t, cohortDoc))
	require.NotNil(t, agg)

	assert.Equal(t, "Cohort A", agg.Cohort)
	assert.Equal(t, []string{"June", "July"}, agg.Months)
	require.Len(t, agg.Employees, 2)
	assert.Equal(t, "Alice", agg.Employees[0].Name)
	assert.Equal(t, "Bob", agg.Employees[1].Name)

	alice := agg.Employees[0]
	assert.Equal(t, []string{"Sprint Commitments", "Mini Quizzes", "Monthly Evaluation", "Total Score"}, alice.Scores.Headers())
	assert.Equal(t, models.Score{Value: 85, Numeric: true}, score(t, alice, "Sprint Commitments"))
	assert.Equal(t, models.Score{Value: 170, Numeric: true}, score(t, alice, "Total Score"))
	_, hasAttendance := alice.Scores.Get("Attendance")
	assert.False(t, hasAttendance, "only the trailing window is folded")
	require.Len(t, alice.Months, 2)
	assert.Equal(t, "June", alice.Months[0].Month)
	assert.Len(t, alice.Months[0].Fields, EvaluationWindow)

	bob := agg.Employees[1]
	assert.Equal(t, models.Score{Value: 12.5, Numeric: true}, score(t, bob, "Mini Quizzes"))
	assert.Equal(t, models.Score{Value: 82.5, Numeric: true}, score(t, bob, "Total Score"))

	assert.Equal(t, "sprint_1 & sprint_2 & sprint_3", agg.SprintNumbers)
	assert.Equal(t, "Overview & Data Structures & Networks", agg.SprintNames)
	require.Len(t, agg.MonthSprints, 2)
	assert.Equal(t, models.MonthSprints{Month: "June", Numbers: "sprint_1 & sprint_2", Names: "Overview & Data Structures"}, agg.MonthSprints[0])
	assert.Equal(t, models.MonthSprints{Month: "July", Numbers: "sprint_2 & sprint_3", Names: "Data Structures & Networks"}, agg.MonthSprints[1])

	// Carol has a single field, which is below the window.
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShortRecord))
	var aggErr *Error
	require.True(t, errors.As(err, &aggErr))
	assert.Equal(t, "Carol", aggErr.Member)
	assert.Equal(t, "July", aggErr.Month)
	_, ok := agg.Employee("Carol")
	assert.False(t, ok)
}

func TestAggregateIsIdempotent(t *testing.T) {
	path := writeDoc(t, cohortDoc)
	first, _ := AggregateFile(path)
	second, _ := AggregateFile(path)

	for i, emp := range first.Employees {
		other := second.Employees[i]
		for _, header := range emp.Scores.Headers() {
			a, _ := emp.Scores.Get(header)
			b, _ := other.Scores.Get(header)
			assert.Equal(t, a, b, "%s/%s", emp.Name, header)
		}
	}
}

func TestAggregateTypeMismatch(t *testing.T) {
	doc := `{
        "June": {"Dan": [["A total score", "10"], ["Hackathon", "absent"], ["Mini Quizzes", "1"], ["Monthly Evaluation", "2"]]},
        "July": {"Dan": [["A total score", "n/a"], ["Hackathon", "5"], ["Mini Quizzes", "3"], ["Monthly Evaluation", "4"]]}
    }`
	agg, err := AggregateFile(writeDoc(t, doc))
	require.NotNil(t, agg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	dan := agg.Employees[0]
	assert.Equal(t, models.Score{Value: 10, Numeric: true}, score(t, dan, "A total score"))
	assert.Equal(t, models.Score{Text: "absent"}, score(t, dan, "Hackathon"))
	assert.Equal(t, models.Score{Value: 4, Numeric: true}, score(t, dan, "Mini Quizzes"))
	assert.Equal(t, models.Score{Value: 6, Numeric: true}, score(t, dan, "Monthly Evaluation"))

	var skipped []string
	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var aggErr *Error
		require.True(t, errors.As(e, &aggErr))
		skipped = append(skipped, aggErr.Header)
	}
	assert.Equal(t, []string{"A total score", "Hackathon"}, skipped)
}

func TestAggregateDuplicateHeadersContributeSeparately(t *testing.T) {
	wb := models.NewWorkbookResult("x.json")
	sheet := models.NewSheetResult()
	require.NoError(t, sheet.SetMember("Eve", models.FieldRecord{
		{Header: "Mini Quizzes", Value: "1"},
		{Header: "Mini Quizzes", Value: "2"},
		{Header: "Total Score", Value: "3"},
		{Header: "Mini Quizzes", Value: "4"},
	}))
	wb.SetSheet("May", sheet)

	agg, err := Aggregate("x", wb)
	require.NoError(t, err)
	eve := agg.Employees[0]
	assert.Equal(t, models.Score{Value: 7, Numeric: true}, score(t, eve, "Mini Quizzes"))
	assert.Equal(t, []string{"Mini Quizzes", "Total Score"}, eve.Scores.Headers())
	assert.Equal(t, "", agg.SprintNumbers)
	assert.Equal(t, "", agg.SprintNames)
}

func TestAggregateSkipsEmptySprintNames(t *testing.T) {
	doc := `{"Sep": {"sprint_info": {
        "sprint_4::": {"name_of_sprint": "", "url": ""},
        "Bonus": {"name_of_sprint": "Review", "url": ""}
    }}}`
	agg, err := AggregateFile(writeDoc(t, doc))
	require.NoError(t, err)
	assert.Empty(t, agg.Employees)
	assert.Equal(t, "sprint_4 & Bonus", agg.SprintNumbers)
	assert.Equal(t, "Review", agg.SprintNames)
}

func TestAggregateNonFiniteValues(t *testing.T) {
	doc := `{
        "June": {"Ann": [["Sprint Commitments", "NaN"], ["Mini Quizzes", "2"], ["Monthly Evaluation", "3"], ["Total Score", "Inf"]]},
        "July": {"Ann": [["Sprint Commitments", "Infinity"], ["Mini Quizzes", "4"], ["Monthly Evaluation", "5"], ["Total Score", "9"]]}
    }`
	agg, err := AggregateFile(writeDoc(t, doc))
	require.NotNil(t, agg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	ann := agg.Employees[0]
	assert.Equal(t, models.Score{Text: "NaN"}, score(t, ann, "Sprint Commitments"))
	assert.Equal(t, models.Score{Text: "Inf"}, score(t, ann, "Total Score"))
	assert.Equal(t, models.Score{Value: 6, Numeric: true}, score(t, ann, "Mini Quizzes"))

	data, err := output.ToJSON(agg, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Sprint Commitments":"NaN"`)
	assert.Contains(t, string(data), `"Mini Quizzes":6`)
}

func TestAggregateKeepsSeparatorCharacters(t *testing.T) {
	doc := `{"Oct": {"sprint_info": {
        "1": {"name_of_sprint": "Q&A", "url": ""},
        "R&": {"name_of_sprint": "Research &", "url": ""}
    }}}`
	agg, err := AggregateFile(writeDoc(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "1 & R&", agg.SprintNumbers)
	assert.Equal(t, "Q&A & Research &", agg.SprintNames)
}

func TestLoadWorkbookErrors(t *testing.T) {
	_, err := LoadWorkbook(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadWorkbook(writeDoc(t, `{"July": {"Alice": "not a list"}}`))
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"123", 123, true},
		{"123.45", 123.45, true},
		{"-100", -100, true},
		{" 7 ", 7, true},
		{"hello", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Infinity", 0, false},
		{"1e400", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.input)
		assert.Equal(t, tt.ok, ok, "ParseNumber(%q)", tt.input)
		assert.Equal(t, tt.expected, got, "ParseNumber(%q)", tt.input)
	}
}
