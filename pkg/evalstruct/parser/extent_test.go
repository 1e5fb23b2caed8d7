package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataExtent(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected Extent
		ref      string
	}{
		{"empty", nil, Extent{}, ""},
		{"blank cells only", [][]string{{"", " "}, {}}, Extent{}, ""},
		{"single cell", [][]string{{"", "x"}}, Extent{MinRow: 1, MaxRow: 1, MinCol: 2, MaxCol: 2}, "B1:B1"},
		{"ragged", [][]string{{}, {"", "a"}, {"", "", "b"}, {"c"}, {""}}, Extent{MinRow: 2, MaxRow: 4, MinCol: 1, MaxCol: 3}, "A2:C4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := DataExtent(tt.rows)
			assert.Equal(t, tt.expected, ext)
			assert.Equal(t, tt.expected.MaxRow == 0, ext.Empty())
			assert.Equal(t, tt.ref, ext.Ref())
		})
	}
}
