package parser

import (
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
)

// MemberBlock is the result of scanning column 1.
type MemberBlock struct {
	// Members lists the member rows in row order.
	Members []models.MemberRow
	// SentinelRow is the row that ended the block, 0 when none was found.
	SentinelRow int
}

// HasSentinel reports whether the scan stopped at a sentinel row.
func (b MemberBlock) HasSentinel() bool {
	return b.SentinelRow > 0
}

// ExtractMembers walks column 1 from row 1 collecting member names until the
// sentinel row. Blank cells and the name header label are skipped. The scan
// never goes past the sheet's last populated row; a sheet without a sentinel
// returns every member found and SentinelRow 0.
func ExtractMembers(g Grid, rules Rules) MemberBlock {
	rules = rules.withDefaults()
	var block MemberBlock

	last := g.RowCount()
	for row := 1; row <= last; row++ {
		text := g.Cell(row, 1)
		if rules.Sentinel(text) {
			block.SentinelRow = row
			break
		}
		if text == "" || rules.NameHeader(text) {
			continue
		}
		block.Members = append(block.Members, models.MemberRow{Name: text, Row: row})
	}

	return block
}
