package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

func TestExtractAadhaar(t *testing.T) {
	s := newTestServer(cardText)

	w := s.do(multipartRequest(t, "/api/v1/aadhaar/extract", nil, formFile{"file", "card.png", pngBytes(t)}))

	assert.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.AadhaarExtraction](t, w)
	assert.Equal(t, "1234 5678 9012", got.AadhaarNumber)
	assert.Equal(t, "Anita Verma", got.Name)
	assert.Equal(t, "ocr", got.Source)
	assert.NotContains(t, w.Body.String(), "Government of India")
}

func TestExtractAadhaarErrors(t *testing.T) {
	s := newTestServer(cardText)

	tests := []struct {
		name   string
		files  []formFile
		status int
	}{
		{"missing file", nil, http.StatusBadRequest},
		{"unsupported type", []formFile{{"file", "notes.txt", []byte("hello there")}}, http.StatusBadRequest},
		{"undecodable image", []formFile{{"file", "card.png", []byte("not really a png")}}, http.StatusBadRequest},
		{"too large", []formFile{{"file", "card.png", make([]byte, 2<<20)}}, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(multipartRequest(t, "/api/v1/aadhaar/extract", nil, tt.files...))

			assert.Equal(t, tt.status, w.Code)
			got := decode[dto.ErrorResponse](t, w)
			assert.Equal(t, aadhaarErrorCode, got.Error)
			assert.Equal(t, tt.status, got.Code)
		})
	}
}

func TestVerifyNumberEndpoint(t *testing.T) {
	s := newTestServer(cardText)

	w := s.do(multipartRequest(t, "/api/v1/aadhaar/verify-number",
		map[string]string{"aadhaar_number": "123456789012"},
		formFile{"file", "card.png", pngBytes(t)}))

	assert.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.AadhaarNumberVerification](t, w)
	assert.True(t, got.Verified)
	assert.Equal(t, "1234 5678 9012", got.Extracted)
}

func TestVerifyNumberFailsClosed(t *testing.T) {
	s := newTestServer("")

	w := s.do(multipartRequest(t, "/api/v1/aadhaar/verify-number",
		map[string]string{"aadhaar_number": "123456789012"},
		formFile{"file", "card.png", pngBytes(t)}))

	assert.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.AadhaarNumberVerification](t, w)
	assert.False(t, got.Verified)
	assert.Empty(t, got.Extracted)
}

func TestVerifyNumberRequiresDeclaredNumber(t *testing.T) {
	s := newTestServer(cardText)

	w := s.do(multipartRequest(t, "/api/v1/aadhaar/verify-number", nil, formFile{"file", "card.png", pngBytes(t)}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyNameEndpoint(t *testing.T) {
	s := newTestServer(cardText)

	w := s.do(multipartRequest(t, "/api/v1/aadhaar/verify-name",
		map[string]string{"name": "Anita Varma"},
		formFile{"file", "card.png", pngBytes(t)}))

	assert.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.NameVerification](t, w)
	assert.True(t, got.Matched)
	assert.Equal(t, "fuzzy", got.Method)
	assert.Equal(t, "Anita Verma", got.Extracted)
}
