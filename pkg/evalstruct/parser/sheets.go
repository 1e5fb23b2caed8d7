package parser

// IsEligibleSheet reports whether a sheet name contains a month token.
// Matching is plain substring containment, so "Mayhem" is eligible too.
func IsEligibleSheet(name string, rules Rules) bool {
	return rules.withDefaults().MonthSheet(name)
}

// SelectSheets filters sheet names to the eligible ones, keeping workbook order.
func SelectSheets(names []string, rules Rules) []string {
	var selected []string
	for _, name := range names {
		if IsEligibleSheet(name, rules) {
			selected = append(selected, name)
		}
	}
	return selected
}
