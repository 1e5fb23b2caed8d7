// Package report maps cohort aggregates to the per-employee records consumed
// by the report renderers.
package report

import (
	"strings"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/aggregate"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/parser"
)

// OverallPeriod labels a report covering more than one month.
const OverallPeriod = "Overall"

// CommittedPercent is the commitment every sprint line is measured against.
const CommittedPercent = 100

var (
	isSprintCommitment = parser.ContainsAny("sprint commitments")
	isTotalScore       = parser.ContainsAny("total score")
)

// Build creates the report skeleton of one employee. Attendance and the
// free-text feedback fields are left empty for later stages.
func Build(cohort *models.CohortAggregate, emp *models.EmployeeAggregate) models.EmployeeReport {
	rep := models.EmployeeReport{
		EmployeeName:      emp.Name,
		Team:              cohort.Cohort,
		EvaluationPeriod:  OverallPeriod,
		AttendanceDetails: []models.AttendanceDetail{},
		SprintVelocity:    []models.SprintVelocity{},
		MonthlyEvaluation: models.MonthlyEvaluation{
			KeyStrengths:        []string{},
			AreasForImprovement: []string{},
		},
		TrainersFeedback: []string{},
	}
	if len(emp.Months) == 1 {
		rep.EvaluationPeriod = emp.Months[0].Month
	}

	sprintNames := make(map[string]string, len(cohort.MonthSprints))
	for _, ms := range cohort.MonthSprints {
		sprintNames[ms.Month] = ms.Names
	}

	for _, window := range emp.Months {
		label := sprintNames[window.Month]
		if label == "" {
			label = window.Month
		}
		rep.SprintVelocity = append(rep.SprintVelocity, models.SprintVelocity{
			Sprint:    label,
			Committed: CommittedPercent,
			Delivered: sumMatching(window.Fields, isSprintCommitment),
		})
		rep.MonthlyEvaluation.MonthlyProgress = append(rep.MonthlyEvaluation.MonthlyProgress, models.MonthlyProgress{
			Month:      window.Month,
			Percentage: sumMatching(window.Fields, isTotalScore),
		})
	}

	return rep
}

// BuildAll creates the report skeletons of every employee in cohort order.
func BuildAll(cohort *models.CohortAggregate) []models.EmployeeReport {
	reports := make([]models.EmployeeReport, 0, len(cohort.Employees))
	for _, emp := range cohort.Employees {
		reports = append(reports, Build(cohort, emp))
	}
	return reports
}

// FileName returns the report file name of an employee. The cohort is part
// of the name so namesakes in different cohorts do not share a file.
func FileName(cohort, employee string) string {
	return sanitize(cohort, "cohort") + "_" + sanitize(employee, "unknown") + "_report.json"
}

func sanitize(s, fallback string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		case ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if name == "" {
		return fallback
	}
	return name
}

func sumMatching(fields models.FieldRecord, match parser.Matcher) float64 {
	var total float64
	for _, f := range fields {
		if !match(f.Header) {
			continue
		}
		if n, ok := aggregate.ParseNumber(f.Value); ok {
			total += n
		}
	}
	return total
}
