// Package models defines data structures for cohort evaluation extraction.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Field is one (header, value) pair taken from a member row.
// It serializes as a two-element JSON array: ["header", "value"].
type Field struct {
	// Header is the trimmed row-1 header text of the column.
	Header string
	// Value is the trimmed cell text, or "" for an empty cell.
	Value string
}

// FieldRecord is the ordered list of recognized fields for one member on one sheet.
// Order follows the sheet's column order and repeated headers are kept.
type FieldRecord []Field

// MarshalJSON encodes the field as [header, value].
func (f Field) MarshalJSON() ([]byte, error) {
	return encodeJSON([2]string{f.Header, f.Value})
}

// UnmarshalJSON decodes a [header, value] pair. Non-string values are kept
// as their literal JSON text so numbers written by other tools still load.
func (f *Field) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("field must have 2 elements, got %d", len(parts))
	}
	f.Header = rawText(parts[0])
	f.Value = rawText(parts[1])
	return nil
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}
