package models

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SprintInfoKey is the reserved key holding the sprint table in a sheet document.
// No member may be stored under this name.
const SprintInfoKey = "sprint_info"

// SheetResult holds the structured data extracted from one monthly sheet.
// It serializes as {"<member>": [[header, value], ...], ..., "sprint_info": {...}},
// members first in row order, sprint_info last and only when non-empty.
type SheetResult struct {
	members *orderedmap.OrderedMap[string, FieldRecord]
	// Sprints is the sheet's sprint table.
	Sprints *SprintTable
}

// NewSheetResult returns an empty SheetResult.
func NewSheetResult() *SheetResult {
	return &SheetResult{
		members: orderedmap.New[string, FieldRecord](),
		Sprints: NewSprintTable(),
	}
}

// SetMember stores the field record of a member. A repeated name replaces the
// earlier record and keeps its original position. Storing under SprintInfoKey
// is rejected.
func (s *SheetResult) SetMember(name string, record FieldRecord) error {
	if name == SprintInfoKey {
		return fmt.Errorf("member name %q is reserved", name)
	}
	if s.members == nil {
		s.members = orderedmap.New[string, FieldRecord]()
	}
	if record == nil {
		record = FieldRecord{}
	}
	s.members.Set(name, record)
	return nil
}

// Member returns the field record stored for name.
func (s *SheetResult) Member(name string) (FieldRecord, bool) {
	if s == nil || s.members == nil {
		return nil, false
	}
	return s.members.Get(name)
}

// MemberNames returns member names in sheet row order.
func (s *SheetResult) MemberNames() []string {
	if s.MemberCount() == 0 {
		return nil
	}
	names := make([]string, 0, s.members.Len())
	for pair := s.members.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// MemberCount returns the number of members.
func (s *SheetResult) MemberCount() int {
	if s == nil || s.members == nil {
		return 0
	}
	return s.members.Len()
}

// MarshalJSON encodes the sheet as a single ordered object.
func (s SheetResult) MarshalJSON() ([]byte, error) {
	var w objectWriter
	if s.members != nil {
		for pair := s.members.Oldest(); pair != nil; pair = pair.Next() {
			if err := w.field(pair.Key, pair.Value); err != nil {
				return nil, err
			}
		}
	}
	if s.Sprints.Len() > 0 {
		if err := w.field(SprintInfoKey, s.Sprints); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// UnmarshalJSON decodes a sheet object, splitting sprint_info from the members.
func (s *SheetResult) UnmarshalJSON(data []byte) error {
	raw := orderedmap.New[string, json.RawMessage]()
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	s.members = orderedmap.New[string, FieldRecord]()
	s.Sprints = NewSprintTable()
	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == SprintInfoKey {
			if err := json.Unmarshal(pair.Value, s.Sprints); err != nil {
				return fmt.Errorf("decode %s: %w", SprintInfoKey, err)
			}
			continue
		}
		var record FieldRecord
		if err := json.Unmarshal(pair.Value, &record); err != nil {
			return fmt.Errorf("decode member %q: %w", pair.Key, err)
		}
		if record == nil {
			record = FieldRecord{}
		}
		s.members.Set(pair.Key, record)
	}
	return nil
}
