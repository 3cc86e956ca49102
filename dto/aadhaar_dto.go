package dto

import (
	"encoding/xml"
	"strings"
)

// AadhaarExtraction is everything recovered from one Aadhaar document.
// Empty strings mean the field was not found; absence is not an error.
type AadhaarExtraction struct {
	AadhaarNumber string         `json:"aadhaar_number,omitempty"`
	Name          string         `json:"name,omitempty"`
	DOB           string         `json:"dob,omitempty"`
	Gender        string         `json:"gender,omitempty"`
	Source        string         `json:"source"` // "ocr" or "pdf_text"
	QR            *AadhaarQRInfo `json:"qr,omitempty"`
	RawText       string         `json:"-"`
}

// AadhaarQRInfo is the subset of the printed QR payload reported alongside OCR results.
type AadhaarQRInfo struct {
	Name         string `json:"name"`
	DOB          string `json:"dob,omitempty"`
	Gender       string `json:"gender,omitempty"`
	AadhaarLast4 string `json:"aadhaar_last4"`
}

// AadhaarNumberVerification compares a declared Aadhaar number with the document.
type AadhaarNumberVerification struct {
	Verified  bool   `json:"verified"`
	Declared  string `json:"declared"`
	Extracted string `json:"extracted,omitempty"`
}

// NameVerification is the outcome of comparing a declared name with the document.
type NameVerification struct {
	Matched        bool   `json:"matched"`
	Method         string `json:"method"` // exact, containment, fuzzy or none
	Score          int    `json:"score,omitempty"`
	FuzzyAvailable bool   `json:"fuzzy_available"`
	Declared       string `json:"declared"`
	Extracted      string `json:"extracted,omitempty"`
}

// AadhaarQRData represents the XML structure in Aadhaar QR code
// Based on UIDAI's secure QR code format
type AadhaarQRData struct {
	XMLName     xml.Name `xml:"PrintLetterBarcodeData"`
	UID         string   `xml:"uid,attr"`
	Name        string   `xml:"name,attr"`
	Gender      string   `xml:"gender,attr"`
	YearOfBirth string   `xml:"yob,attr"`
	DateOfBirth string   `xml:"dob,attr"`
}

// Info converts the decoded payload into the reported QR evidence.
func (q *AadhaarQRData) Info() *AadhaarQRInfo {
	return &AadhaarQRInfo{
		Name:         strings.TrimSpace(q.Name),
		DOB:          q.GetDOB(),
		Gender:       q.Gender,
		AadhaarLast4: q.GetLast4Digits(),
	}
}

// GetLast4Digits returns the last 4 digits of Aadhaar number
func (q *AadhaarQRData) GetLast4Digits() string {
	uid := strings.ReplaceAll(q.UID, " ", "")
	if len(uid) >= 4 {
		return uid[len(uid)-4:]
	}
	return uid
}

// GetDOB returns the date of birth, falling back to the year of birth.
func (q *AadhaarQRData) GetDOB() string {
	if q.DateOfBirth != "" {
		return q.DateOfBirth
	}
	return q.YearOfBirth
}
