package parser

// julySheet is a typical monthly sheet: a header row, two members, a blank
// spacer, the sentinel row and a three-row sprint table.
func julySheet() Rows {
	return Rows{
		{"Name", "Sprint Commitments", "Mini Quizzes", "Monthly Evaluation", "Total Score", "Other"},
		{"Alice", "80", "90", "70", "240", "skip-me"},
		{"  Bob ", "60", "", "50", "110"},
		{""},
		{"Sprint No.", "URL", "Sprint Name"},
		{"1", "https://example.com/1", "Data Structures"},
		{"2", "https://example.com/2", "Networks"},
		{"Bonus", "", "Hackathon Week"},
	}
}
