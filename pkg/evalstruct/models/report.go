package models

// AttendanceSummary counts attendance days.
type AttendanceSummary struct {
	TotalDays   int `json:"total_days"`
	PresentDays int `json:"present_days"`
	AbsentDays  int `json:"absent_days"`
}

// AttendanceDetail is one non-present day.
type AttendanceDetail struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// SprintVelocity is one sprint line of the report.
type SprintVelocity struct {
	Sprint     string  `json:"sprint"`
	Committed  float64 `json:"committed"`
	Delivered  float64 `json:"delivered"`
	Plagiarism string  `json:"plagiarism,omitempty"`
}

// MonthlyProgress is one month line of the monthly evaluation.
type MonthlyProgress struct {
	Month      string  `json:"month"`
	Percentage float64 `json:"percentage"`
	Notes      string  `json:"notes,omitempty"`
}

// MonthlyEvaluation is the evaluation block of the report.
type MonthlyEvaluation struct {
	OverallPerformance  string            `json:"Overall Performance"`
	MonthlyProgress     []MonthlyProgress `json:"Monthly Progress,omitempty"`
	KeyStrengths        []string          `json:"Key Strengths"`
	AreasForImprovement []string          `json:"Areas for Improvement"`
}

// EmployeeReport is the normalized per-employee record consumed by the
// report renderers.
type EmployeeReport struct {
	EmployeeName      string             `json:"employee_name"`
	Team              string             `json:"team"`
	EvaluationPeriod  string             `json:"evaluation_period"`
	AttendanceSummary AttendanceSummary  `json:"attendance_summary"`
	AttendanceDetails []AttendanceDetail `json:"attendance_details"`
	SprintVelocity    []SprintVelocity   `json:"sprint_velocity"`
	MonthlyEvaluation MonthlyEvaluation  `json:"monthly_evaluation"`
	TrainersFeedback  []string           `json:"trainers_feedback"`
}
