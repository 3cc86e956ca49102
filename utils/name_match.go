package utils

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// DefaultNameMatchThreshold is the minimum fuzzy score (0-100) accepted as a match.
const DefaultNameMatchThreshold = 80

// Name match methods reported in NameMatchResult.
const (
	MatchExact       = "exact"
	MatchContainment = "containment"
	MatchFuzzy       = "fuzzy"
	MatchNone        = "none"
)

// NameSimilarity scores two normalised names from 0 to 100. ok is false when
// the capability cannot produce a score. Available reports whether scores
// can be produced at all.
type NameSimilarity interface {
	Similarity(a, b string) (score int, ok bool)
	Available() bool
}

// UnavailableSimilarity is used when fuzzy matching is disabled. It never
// produces a score, so only exact and containment checks can match.
type UnavailableSimilarity struct{}

func (UnavailableSimilarity) Similarity(a, b string) (int, bool) {
	return 0, false
}

func (UnavailableSimilarity) Available() bool { return false }

// TokenSetSimilarity compares the word sets of two names, so reordered or
// partially repeated names still score high.
type TokenSetSimilarity struct{}

func (TokenSetSimilarity) Similarity(a, b string) (int, bool) {
	return tokenSetRatio(a, b), true
}

func (TokenSetSimilarity) Available() bool { return true }

// NameMatchResult describes how a declared name compared with an extracted one.
type NameMatchResult struct {
	Matched        bool
	Method         string
	Score          int
	FuzzyAvailable bool
}

type NameMatcher struct {
	similarity NameSimilarity
	threshold  int
}

// NewNameMatcher builds a matcher. A nil similarity means fuzzy matching is unavailable.
func NewNameMatcher(similarity NameSimilarity, threshold int) *NameMatcher {
	if similarity == nil {
		similarity = UnavailableSimilarity{}
	}
	if threshold <= 0 {
		threshold = DefaultNameMatchThreshold
	}
	return &NameMatcher{similarity: similarity, threshold: threshold}
}

// FuzzyAvailable reports whether the matcher can fall back to fuzzy scoring.
func (m *NameMatcher) FuzzyAvailable() bool {
	return m.similarity.Available()
}

// Match compares a declared name with an extracted one: exact or containment
// after normalisation first, then the fuzzy score against the threshold.
func (m *NameMatcher) Match(declared, extracted string) NameMatchResult {
	result := NameMatchResult{Method: MatchNone, FuzzyAvailable: m.FuzzyAvailable()}

	d := NormalizeName(declared)
	e := NormalizeName(extracted)
	if d == "" || e == "" {
		return result
	}

	if d == e {
		result.Matched, result.Method, result.Score = true, MatchExact, 100
		return result
	}
	if strings.Contains(e, d) || strings.Contains(d, e) {
		result.Matched, result.Method, result.Score = true, MatchContainment, 100
		return result
	}

	score, ok := m.similarity.Similarity(d, e)
	if !ok {
		return result
	}
	result.Score = score
	if score >= m.threshold {
		result.Matched, result.Method = true, MatchFuzzy
	}
	return result
}

var reNamePunctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// NormalizeName lowercases, strips punctuation and collapses whitespace.
func NormalizeName(s string) string {
	s = reNamePunctuation.ReplaceAllString(strings.ToLower(s), "")
	return strings.Join(strings.Fields(s), " ")
}

// tokenSetRatio splits both names into word sets and scores the shared words
// against each side's remainder, keeping the best pairing.
func tokenSetRatio(a, b string) int {
	setA := wordSet(a)
	setB := wordSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for w := range setA {
		if setB[w] {
			common = append(common, w)
		} else {
			onlyA = append(onlyA, w)
		}
	}
	for w := range setB {
		if !setA[w] {
			onlyB = append(onlyB, w)
		}
	}

	// One word set contains the other.
	if len(common) > 0 && (len(onlyA) == 0 || len(onlyB) == 0) {
		return 100
	}

	sect := joinSorted(common)
	withA := strings.TrimSpace(sect + " " + joinSorted(onlyA))
	withB := strings.TrimSpace(sect + " " + joinSorted(onlyB))

	best := ratio(withA, withB)
	if sect != "" {
		best = max(best, ratio(sect, withA), ratio(sect, withB))
	}
	return best
}

// ratio is the Levenshtein similarity of two strings scaled to 0-100.
func ratio(a, b string) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func joinSorted(words []string) string {
	sort.Strings(words)
	return strings.Join(words, " ")
}
