package models

// MemberRow locates a team member's data row inside a sheet.
type MemberRow struct {
	// Name is the trimmed text found in column 1.
	Name string
	// Row is the row index (1-based).
	Row int
}
