package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SprintEntry holds the metadata of one sprint row.
type SprintEntry struct {
	// NameOfSprint is the sprint title taken from column 3.
	NameOfSprint string `json:"name_of_sprint"`
	// URL is the sprint link taken from column 2.
	URL string `json:"url"`
}

// SprintTable maps sprint keys to sprint metadata in sheet row order.
// Setting an existing key replaces its entry but keeps its position.
type SprintTable struct {
	entries *orderedmap.OrderedMap[string, SprintEntry]
}

// NewSprintTable returns an empty SprintTable.
func NewSprintTable() *SprintTable {
	return &SprintTable{entries: orderedmap.New[string, SprintEntry]()}
}

func (t *SprintTable) init() {
	if t.entries == nil {
		t.entries = orderedmap.New[string, SprintEntry]()
	}
}

// Set stores entry under key and reports whether an earlier entry was replaced.
func (t *SprintTable) Set(key string, entry SprintEntry) bool {
	t.init()
	_, replaced := t.entries.Set(key, entry)
	return replaced
}

// Get returns the entry stored under key.
func (t *SprintTable) Get(key string) (SprintEntry, bool) {
	if t == nil || t.entries == nil {
		return SprintEntry{}, false
	}
	return t.entries.Get(key)
}

// Len returns the number of sprints.
func (t *SprintTable) Len() int {
	if t == nil || t.entries == nil {
		return 0
	}
	return t.entries.Len()
}

// Keys returns the sprint keys in insertion order.
func (t *SprintTable) Keys() []string {
	if t.Len() == 0 {
		return nil
	}
	keys := make([]string, 0, t.entries.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every sprint in insertion order.
func (t *SprintTable) Each(fn func(key string, entry SprintEntry)) {
	if t.Len() == 0 {
		return
	}
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// MarshalJSON encodes the table as an object keyed by sprint key.
func (t SprintTable) MarshalJSON() ([]byte, error) {
	var w objectWriter
	var err error
	t.Each(func(key string, entry SprintEntry) {
		if err == nil {
			err = w.field(key, entry)
		}
	})
	if err != nil {
		return nil, err
	}
	return w.bytes(), nil
}

// UnmarshalJSON decodes an object keyed by sprint key, keeping key order.
func (t *SprintTable) UnmarshalJSON(data []byte) error {
	entries := orderedmap.New[string, SprintEntry]()
	if err := entries.UnmarshalJSON(data); err != nil {
		return err
	}
	t.entries = entries
	return nil
}
