package utils

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	// Lines carrying the Virtual ID hold a 16-digit number whose first
	// twelve digits look exactly like an Aadhaar number.
	reDecoyLine = regexp.MustCompile(`(?i)\b(vid|virtual\s*id)\b`)

	// 4-4-4 digit groups, optionally separated by spaces, tabs or hyphens,
	// with no digit immediately before or after the run. Separators never
	// span lines, otherwise a year at the end of the DOB line joins the
	// number printed below it.
	reAadhaarNumber = regexp.MustCompile(`(?:^|\D)(\d{4}[ \t-]*\d{4}[ \t-]*\d{4})(?:\D|$)`)

	reNonDigit = regexp.MustCompile(`[^0-9]`)
)

// ExtractAadhaarNumber finds the first Aadhaar number in OCR text and returns
// it as "XXXX XXXX XXXX". The second result is false when nothing was found.
func ExtractAadhaarNumber(text string) (number string, found bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Aadhaar number extraction failed")
			number, found = "", false
		}
	}()

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if reDecoyLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}

	m := reAadhaarNumber.FindStringSubmatch(strings.Join(kept, "\n"))
	if len(m) < 2 {
		return "", false
	}

	return FormatAadhaarNumber(m[1])
}

// AadhaarDigits strips everything but ASCII digits.
func AadhaarDigits(s string) string {
	return reNonDigit.ReplaceAllString(s, "")
}

// FormatAadhaarNumber renders any spacing of a 12-digit number as
// "XXXX XXXX XXXX". It reports false when the input does not hold exactly 12 digits.
func FormatAadhaarNumber(s string) (string, bool) {
	d := AadhaarDigits(s)
	if len(d) != 12 {
		return "", false
	}
	return d[0:4] + " " + d[4:8] + " " + d[8:12], true
}

// VerifyAadhaarNumber compares the declared and extracted numbers by digits.
// A missing value on either side is never a match.
func VerifyAadhaarNumber(declared, extracted string) bool {
	declaredDigits := AadhaarDigits(declared)
	extractedDigits := AadhaarDigits(extracted)
	if declaredDigits == "" || extractedDigits == "" {
		return false
	}
	return declaredDigits == extractedDigits
}
