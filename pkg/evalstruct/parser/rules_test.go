package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsAny(t *testing.T) {
	m := ContainsAny("Sprint No", " ")
	assert.True(t, m("Sprint No."))
	assert.True(t, m("  SPRINT NO:"))
	assert.False(t, m("Sprint"))
	assert.False(t, m(""))
}

func TestEqualsAny(t *testing.T) {
	m := EqualsAny("name")
	assert.True(t, m("Name"))
	assert.True(t, m("  NAME "))
	assert.False(t, m("Names"))
	assert.False(t, m("Full name"))
}

func TestDefaultMonthTokens(t *testing.T) {
	tokens := DefaultMonthTokens()
	require.Len(t, tokens, 24)
	assert.Equal(t, "january", tokens[0])
	assert.Equal(t, "december", tokens[11])
	assert.Equal(t, "jan", tokens[12])
	assert.Equal(t, "sep", tokens[20])
}

func TestRuleConfigFallsBackToDefaults(t *testing.T) {
	rules := RuleConfig{Categories: []string{"attendance"}}.Rules()

	assert.True(t, rules.Category("Attendance %"))
	assert.False(t, rules.Category("Total Score"))
	assert.True(t, rules.MonthSheet("July"))
	assert.True(t, rules.Sentinel("Sprint No."))
	assert.True(t, rules.NameHeader("name"))
}

func TestRulesWithDefaults(t *testing.T) {
	strict := Rules{Sentinel: EqualsAny("sprint no.")}.withDefaults()

	assert.False(t, strict.Sentinel("Sprint No. (old)"))
	assert.True(t, strict.Sentinel("sprint no."))
	assert.NotNil(t, strict.MonthSheet)
	assert.NotNil(t, strict.NameHeader)
	assert.NotNil(t, strict.Category)
}
