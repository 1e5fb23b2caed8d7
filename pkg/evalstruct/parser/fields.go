package parser

import (
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
)

// HeaderWidth returns the number of header columns, counted from column 1 up
// to the first blank header cell.
func HeaderWidth(g Grid) int {
	width := 0
	for g.Cell(HeaderRow, width+1) != "" {
		width++
	}
	return width
}

// ExtractRowFields reads one data row against the header row and keeps the
// columns whose header matches a recognized category. The row width is set
// by the header row; the data row's own length does not matter. Column order
// is kept and a repeated header yields one field per column.
func ExtractRowFields(g Grid, row int, rules Rules) models.FieldRecord {
	rules = rules.withDefaults()
	record := models.FieldRecord{}

	width := HeaderWidth(g)
	for col := 1; col <= width; col++ {
		header := g.Cell(HeaderRow, col)
		if !rules.Category(header) {
			continue
		}
		record = append(record, models.Field{Header: header, Value: g.Cell(row, col)})
	}

	return record
}
