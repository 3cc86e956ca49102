package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAadhaarNumber(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"spaced", "Aadhaar No: 1234 5678 9012", "1234 5678 9012", true},
		{"hyphenated", "1234-5678-9012", "1234 5678 9012", true},
		{"compact", "your number 123456789012 here", "1234 5678 9012", true},
		{"first occurrence wins", "1111 2222 3333\n4444 5555 6666", "1111 2222 3333", true},
		{"longer number is not a match", "9123456789012", "", false},
		{"digit before run", "01234 5678 9012", "", false},
		{"too short", "1234 5678 901", "", false},
		{"empty", "", "", false},
		{"no digits", "GOVERNMENT OF INDIA", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractAadhaarNumber(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAadhaarNumberSkipsVID(t *testing.T) {
	text := "VID : 9876 5432 1098 7654\nAnita Verma\n1234 5678 9012"

	got, found := ExtractAadhaarNumber(text)

	assert.True(t, found)
	assert.Equal(t, "1234 5678 9012", got)
}

func TestExtractAadhaarNumberSkipsVirtualID(t *testing.T) {
	text := "Virtual ID 9876-5432-1098\nno other number"

	_, found := ExtractAadhaarNumber(text)

	assert.False(t, found)
}

func TestFormatAadhaarNumberIsStable(t *testing.T) {
	inputs := []string{"123456789012", "1234 5678 9012", "12-34 56 78-9012", " 1 2 3 4 5 6 7 8 9 0 1 2 "}

	for _, in := range inputs {
		once, ok := FormatAadhaarNumber(in)
		assert.True(t, ok, in)
		twice, ok := FormatAadhaarNumber(once)
		assert.True(t, ok, in)
		assert.Equal(t, "1234 5678 9012", once)
		assert.Equal(t, once, twice)
	}

	_, ok := FormatAadhaarNumber("1234 5678")
	assert.False(t, ok)
}

func TestVerifyAadhaarNumber(t *testing.T) {
	assert.True(t, VerifyAadhaarNumber("123456789012", "1234 5678 9012"))
	assert.True(t, VerifyAadhaarNumber("1234-5678-9012", "1234 5678 9012"))
	assert.False(t, VerifyAadhaarNumber("123456789012", "1234 5678 9013"))
	// fail closed
	assert.False(t, VerifyAadhaarNumber("123456789012", ""))
	assert.False(t, VerifyAadhaarNumber("", "1234 5678 9012"))
	assert.False(t, VerifyAadhaarNumber("", ""))
}

func TestExtractionAndVerificationEndToEnd(t *testing.T) {
	text := "Name: Anita Verma\nDOB: 01-01-1990\n1234 5678 9012\nVID 9876 5432 1098"

	number, found := ExtractAadhaarNumber(text)
	assert.True(t, found)
	assert.Equal(t, "1234 5678 9012", number)
	assert.True(t, VerifyAadhaarNumber("123456789012", number))

	name, found := ExtractName(text)
	assert.True(t, found)
	assert.Equal(t, "Anita Verma", name)
}

func TestExtractAadhaarNumberDoesNotJoinLines(t *testing.T) {
	got, found := ExtractAadhaarNumber("DOB: 01-01-1990\n1234 5678")

	assert.False(t, found)
	assert.Empty(t, got)
}
