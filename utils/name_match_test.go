package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameMatcherMatch(t *testing.T) {
	matcher := NewNameMatcher(TokenSetSimilarity{}, DefaultNameMatchThreshold)

	tests := []struct {
		name      string
		declared  string
		extracted string
		matched   bool
		method    string
		score     int
	}{
		{"exact after normalisation", "anita  VERMA.", "Anita Verma", true, MatchExact, 100},
		{"extracted contains declared", "Ravi Kumar", "Ravi Kumar Sharma", true, MatchContainment, 100},
		{"declared contains extracted", "Ravi Kumar Sharma", "Ravi Kumar", true, MatchContainment, 100},
		{"one letter off", "Anita Varma", "Anita Verma", true, MatchFuzzy, 91},
		{"reordered words", "Kumar Ravi", "Ravi Kumar", true, MatchFuzzy, 100},
		{"different person", "Anita Verma", "Sunita Sharma", false, MatchNone, 23},
		{"empty declared", "", "Anita Verma", false, MatchNone, 0},
		{"empty extracted", "Anita Verma", "", false, MatchNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matcher.Match(tt.declared, tt.extracted)
			assert.Equal(t, tt.matched, got.Matched)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.score, got.Score)
			assert.True(t, got.FuzzyAvailable)
		})
	}
}

func TestNameMatcherWithoutFuzzy(t *testing.T) {
	matcher := NewNameMatcher(nil, 0)

	assert.False(t, matcher.FuzzyAvailable())

	got := matcher.Match("Anita Varma", "Anita Verma")
	assert.False(t, got.Matched)
	assert.Equal(t, MatchNone, got.Method)
	assert.False(t, got.FuzzyAvailable)

	got = matcher.Match("Ravi Kumar", "Ravi Kumar Sharma")
	assert.True(t, got.Matched)
	assert.Equal(t, MatchContainment, got.Method)
}

func TestNameMatcherThreshold(t *testing.T) {
	strict := NewNameMatcher(TokenSetSimilarity{}, 95)

	got := strict.Match("Anita Varma", "Anita Verma")

	assert.False(t, got.Matched)
	assert.Equal(t, MatchNone, got.Method)
	assert.Equal(t, 91, got.Score)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "anita verma", NormalizeName("  Anita,   VERMA. "))
	assert.Equal(t, "", NormalizeName("..."))
}

type countingSimilarity struct {
	calls int
}

func (c *countingSimilarity) Similarity(a, b string) (int, bool) {
	c.calls++
	return 0, true
}

func (c *countingSimilarity) Available() bool { return true }

func TestNameMatcherScoresOnlyWhenNeeded(t *testing.T) {
	similarity := &countingSimilarity{}
	matcher := NewNameMatcher(similarity, DefaultNameMatchThreshold)

	got := matcher.Match("Anita Verma", "anita verma")
	assert.True(t, got.Matched)
	assert.True(t, got.FuzzyAvailable)
	got = matcher.Match("Ravi Kumar", "Ravi Kumar Sharma")
	assert.True(t, got.Matched)
	assert.True(t, matcher.FuzzyAvailable())
	assert.Equal(t, 0, similarity.calls)

	got = matcher.Match("Anita Verma", "Sunita Sharma")
	assert.False(t, got.Matched)
	assert.Equal(t, 1, similarity.calls)
}
