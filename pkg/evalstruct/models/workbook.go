package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// WorkbookResult is the workbook-level container of per-sheet results.
// It serializes as an object keyed by sheet name in workbook order.
type WorkbookResult struct {
	// BookName is the workbook file name (no path). It is not serialized.
	BookName string
	sheets   *orderedmap.OrderedMap[string, *SheetResult]
}

// NewWorkbookResult returns an empty result for the named workbook.
func NewWorkbookResult(bookName string) *WorkbookResult {
	return &WorkbookResult{
		BookName: bookName,
		sheets:   orderedmap.New[string, *SheetResult](),
	}
}

// SetSheet stores the result for a sheet.
func (w *WorkbookResult) SetSheet(name string, sheet *SheetResult) {
	if w.sheets == nil {
		w.sheets = orderedmap.New[string, *SheetResult]()
	}
	w.sheets.Set(name, sheet)
}

// Sheet returns the result stored for a sheet.
func (w *WorkbookResult) Sheet(name string) (*SheetResult, bool) {
	if w == nil || w.sheets == nil {
		return nil, false
	}
	return w.sheets.Get(name)
}

// SheetNames returns sheet names in workbook order.
func (w *WorkbookResult) SheetNames() []string {
	if w == nil || w.sheets == nil {
		return nil
	}
	names := make([]string, 0, w.sheets.Len())
	for pair := w.sheets.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// MemberCount returns the number of member records across all sheets.
func (w *WorkbookResult) MemberCount() int {
	if w == nil || w.sheets == nil {
		return 0
	}
	n := 0
	for pair := w.sheets.Oldest(); pair != nil; pair = pair.Next() {
		n += pair.Value.MemberCount()
	}
	return n
}

// MarshalJSON encodes the workbook as {"<sheet>": {...}, ...}.
func (w WorkbookResult) MarshalJSON() ([]byte, error) {
	var ow objectWriter
	if w.sheets != nil {
		for pair := w.sheets.Oldest(); pair != nil; pair = pair.Next() {
			sheet := pair.Value
			if sheet == nil {
				sheet = NewSheetResult()
			}
			if err := ow.field(pair.Key, sheet); err != nil {
				return nil, err
			}
		}
	}
	return ow.bytes(), nil
}

// UnmarshalJSON decodes a workbook document keeping sheet order.
func (w *WorkbookResult) UnmarshalJSON(data []byte) error {
	sheets := orderedmap.New[string, *SheetResult]()
	if err := sheets.UnmarshalJSON(data); err != nil {
		return err
	}
	w.sheets = sheets
	return nil
}
