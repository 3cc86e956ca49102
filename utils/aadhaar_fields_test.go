package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDOB(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		line int
	}{
		{"labelled with hyphens", "Anita Verma\nDOB: 01-01-1990\nFemale", "01-01-1990", 1},
		{"labelled with slashes", "Ravi Kumar\nDate of Birth : 15/08/1985", "15/08/1985", 1},
		{"year only", "Suresh Patel\nYear of Birth : 1972\nMale", "1972", 1},
		{"unlabelled date", "Priya Sharma\n\n  12/11/2001\nFemale", "12/11/2001", 1},
		{"missing", "Government of India", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, line := ExtractDOB(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestExtractGender(t *testing.T) {
	assert.Equal(t, "Female", ExtractGender("Anita Verma\nDOB: 01-01-1990\nFEMALE"))
	assert.Equal(t, "Male", ExtractGender("Ravi Kumar\nDOB: 15/08/1985\nपुरुष / Male"))
	assert.Equal(t, "Female", ExtractGender("नाम\nDOB: 01/01/1990\nमहिला"))
	assert.Equal(t, "", ExtractGender("1234 5678 9012"))
}

func TestExtractGenderIgnoresTextFarFromDOB(t *testing.T) {
	text := "Anita Verma\nDOB: 01-01-1990\n1234 5678 9012\nline\nline\nline\nline\nmale members of the household"

	assert.Equal(t, "", ExtractGender(text))
}
