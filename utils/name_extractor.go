package utils

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// nameRule is one name heuristic. Rules are tried in order and the first
// accepted candidate wins. Capture groups only use spaces so a candidate
// never runs into the next OCR line. A firstOnly rule gives up after its
// first candidate.
type nameRule struct {
	name      string
	pattern   *regexp.Regexp
	firstOnly bool
}

var nameRules = []nameRule{
	{name: "label", pattern: regexp.MustCompile(`(?i)\bname[:\s]+([A-Za-z]+(?: +[A-Za-z]+)*)`)},
	{name: "label_hindi", pattern: regexp.MustCompile(`नाम[:\s]+([A-Za-z]+(?: +[A-Za-z]+)*)`)},
	{name: "capitalized", pattern: regexp.MustCompile(`([A-Z][a-z]+(?: +[A-Z][a-z]+)+)`)},
	{name: "hyphenated", pattern: regexp.MustCompile(`([A-Za-z]+(?:[- ]+[A-Za-z]+)+)`), firstOnly: true},
}

// Issuing-authority boilerplate and field labels that OCR often returns as
// capitalized word runs.
var bannedNameTokens = []string{
	"uidai", "unique identification", "government", "india",
	"year", "male", "female", "dob", "date of birth", "address",
	"adhar", "aadhar", "aadhaar", "your aadhaar",
	"enrolment", "enrollment", "issue date", "download date",
}

var (
	reLineBreaks   = regexp.MustCompile(`[\t\r]+`)
	reZeroWidth    = regexp.MustCompile("[\u200b\u200c\u200d\ufeff]")
	rePunctuation  = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]`)
	reSpaces       = regexp.MustCompile(`\s+`)
	reAlphaOnlyRow = regexp.MustCompile(`^[A-Za-z ]+$`)

	// S/O, W/O, D/O and C/O introduce a relative's name, not the holder's.
	// Everything from the marker to the end of the line is dropped.
	reRelationMarker = regexp.MustCompile(`(?i)(?:^|[^\p{L}])[swdc]\s*/\s*o\b.*$`)
	// The same markers after OCR lost the slash.
	reRelationLine = regexp.MustCompile(`(?i)^(?:so|wo|do|co)\b`)
)

// ExtractName recovers the holder's name from OCR text. It returns at most
// three title-cased words, or false when no candidate passes the filters.
func ExtractName(text string) (name string, found bool) {
	name, _, found = extractName(text)
	return name, found
}

// extractName also reports which rule produced the name.
func extractName(text string) (name, rule string, found bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Name extraction failed")
			name, rule, found = "", "", false
		}
	}()

	lines := cleanNameLines(text)
	if len(lines) == 0 {
		return "", "", false
	}
	joined := strings.Join(lines, "\n")

	for _, r := range nameRules {
		limit := -1
		if r.firstOnly {
			limit = 1
		}
		for _, m := range r.pattern.FindAllStringSubmatch(joined, limit) {
			candidate := reSpaces.ReplaceAllString(strings.TrimSpace(m[1]), " ")
			if !acceptNameCandidate(candidate) {
				continue
			}
			log.Debug().Str("rule", r.name).Msg("Name candidate accepted")
			return formatName(candidate), r.name, true
		}
	}

	for _, line := range lines {
		if !reAlphaOnlyRow.MatchString(line) || len(strings.Fields(line)) < 2 {
			continue
		}
		if containsBannedToken(line) {
			continue
		}
		log.Debug().Str("rule", "line_scan").Msg("Name candidate accepted")
		return formatName(line), "line_scan", true
	}

	return "", "", false
}

// cleanNameLines normalises whitespace, strips zero-width characters,
// relative's names and punctuation, and drops empty lines.
func cleanNameLines(text string) []string {
	text = reLineBreaks.ReplaceAllString(text, "\n")
	text = reZeroWidth.ReplaceAllString(text, "")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = reRelationMarker.ReplaceAllString(line, "")
		line = rePunctuation.ReplaceAllString(line, "")
		line = strings.TrimSpace(reSpaces.ReplaceAllString(line, " "))
		if line == "" || reRelationLine.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func acceptNameCandidate(candidate string) bool {
	if len(candidate) <= 2 {
		return false
	}
	return !containsBannedToken(candidate)
}

func containsBannedToken(s string) bool {
	lower := strings.ToLower(s)
	for _, token := range bannedNameTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// formatName keeps the first three words and title-cases them.
func formatName(s string) string {
	words := strings.Fields(s)
	if len(words) > 3 {
		words = words[:3]
	}
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
