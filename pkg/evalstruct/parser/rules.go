// Package parser locates member blocks, sprint tables and score columns in
// cohort evaluation sheets.
package parser

import (
	"strings"
	"time"
)

// HeaderRow is the row holding the column headers.
const HeaderRow = 1

// Matcher decides whether a piece of sheet text matches a rule.
type Matcher func(text string) bool

// ContainsAny matches text whose lowercase form contains any token.
// Tokens are compared lowercased; blank tokens are ignored.
func ContainsAny(tokens ...string) Matcher {
	lowered := lowerTokens(tokens)
	return func(text string) bool {
		t := strings.ToLower(text)
		for _, tok := range lowered {
			if strings.Contains(t, tok) {
				return true
			}
		}
		return false
	}
}

// EqualsAny matches text whose trimmed lowercase form equals any token.
func EqualsAny(tokens ...string) Matcher {
	lowered := lowerTokens(tokens)
	return func(text string) bool {
		t := strings.ToLower(strings.TrimSpace(text))
		for _, tok := range lowered {
			if t == tok {
				return true
			}
		}
		return false
	}
}

func lowerTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Rules groups the matchers driving the extraction heuristics.
type Rules struct {
	// MonthSheet selects the sheets to process by name.
	MonthSheet Matcher
	// Sentinel marks the row ending the member block and starting the sprint table.
	Sentinel Matcher
	// NameHeader matches column-1 header labels that are not member names.
	NameHeader Matcher
	// Category matches the headers whose columns are kept.
	Category Matcher
}

// RuleConfig is the configuration data behind Rules.
type RuleConfig struct {
	Months     []string `mapstructure:"months" yaml:"months"`
	Sentinels  []string `mapstructure:"sentinels" yaml:"sentinels"`
	NameHeader []string `mapstructure:"name-header" yaml:"name-header"`
	Categories []string `mapstructure:"categories" yaml:"categories"`
}

// DefaultCategories are the recognized score categories.
var DefaultCategories = []string{
	"sprint commitments",
	"mini quizzes",
	"monthly evaluation",
	"final evaluation",
	"hackathon",
	"total score",
}

// DefaultMonthTokens returns the full and three-letter English month names, lowercased.
func DefaultMonthTokens() []string {
	tokens := make([]string, 0, 24)
	for m := time.January; m <= time.December; m++ {
		tokens = append(tokens, strings.ToLower(m.String()))
	}
	for m := time.January; m <= time.December; m++ {
		tokens = append(tokens, strings.ToLower(m.String()[:3]))
	}
	return tokens
}

// DefaultRuleConfig returns the stock layout convention.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Months:     DefaultMonthTokens(),
		Sentinels:  []string{"sprint no"},
		NameHeader: []string{"name"},
		Categories: append([]string(nil), DefaultCategories...),
	}
}

// Rules builds the matchers. Empty lists fall back to the defaults.
func (c RuleConfig) Rules() Rules {
	def := DefaultRuleConfig()
	pick := func(v, fallback []string) []string {
		if len(lowerTokens(v)) == 0 {
			return fallback
		}
		return v
	}
	return Rules{
		MonthSheet: ContainsAny(pick(c.Months, def.Months)...),
		Sentinel:   ContainsAny(pick(c.Sentinels, def.Sentinels)...),
		NameHeader: EqualsAny(pick(c.NameHeader, def.NameHeader)...),
		Category:   ContainsAny(pick(c.Categories, def.Categories)...),
	}
}

// DefaultRules returns the matchers of the stock layout convention.
func DefaultRules() Rules {
	return DefaultRuleConfig().Rules()
}

// withDefaults fills nil matchers from DefaultRules.
func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.MonthSheet == nil {
		r.MonthSheet = def.MonthSheet
	}
	if r.Sentinel == nil {
		r.Sentinel = def.Sentinel
	}
	if r.NameHeader == nil {
		r.NameHeader = def.NameHeader
	}
	if r.Category == nil {
		r.Category = def.Category
	}
	return r
}
