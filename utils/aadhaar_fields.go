package utils

import (
	"regexp"
	"strings"
)

var (
	reLabelledDOB = regexp.MustCompile(`(?i)(?:dob|date\s+of\s+birth|year\s+of\s+birth|yob)\s*[:\-]?\s*([0-9]{2}[/-][0-9]{2}[/-][0-9]{4}|[0-9]{4})`)
	reAnyDate     = regexp.MustCompile(`\b([0-9]{2}[/-][0-9]{2}[/-][0-9]{4})\b`)
)

// ExtractDOB returns the date (or year) of birth printed on the card and the
// index of the line it was found on, or -1.
func ExtractDOB(text string) (string, int) {
	lines := normalizeLines(text)

	for i, line := range lines {
		if m := reLabelledDOB.FindStringSubmatch(line); len(m) > 1 {
			return m[1], i
		}
	}

	// Any DD/MM/YYYY; on the card front the only full date is the birth date.
	for i, line := range lines {
		if m := reAnyDate.FindStringSubmatch(line); len(m) > 1 {
			return m[1], i
		}
	}

	return "", -1
}

// ExtractGender looks for the gender token in a small window around the DOB
// line, so disclaimer text further down cannot be picked up.
func ExtractGender(text string) string {
	lines := normalizeLines(text)
	_, dobIdx := ExtractDOB(text)

	start, end := 0, len(lines)
	if dobIdx >= 0 {
		start = max(0, dobIdx-2)
		end = min(len(lines), dobIdx+5)
	}

	for _, line := range lines[start:end] {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "female") || strings.Contains(line, "महिला"):
			return "Female"
		case strings.Contains(lower, "male") || strings.Contains(line, "पुरुष"):
			return "Male"
		case strings.Contains(lower, "transgender"):
			return "Transgender"
		}
	}
	return ""
}

// normalizeLines splits OCR text into trimmed, non-empty lines.
func normalizeLines(text string) []string {
	text = strings.ReplaceAll(text, "\r", "")
	rawLines := strings.Split(text, "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
