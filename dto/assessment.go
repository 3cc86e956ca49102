package dto

import "time"

type EligibilityStatus string

const (
	StatusEligible    EligibilityStatus = "Eligible"
	StatusNotEligible EligibilityStatus = "Not Eligible"
)

// AssessmentResult is the eligibility decision for one submission.
// It is built once and not modified afterwards.
type AssessmentResult struct {
	Status          EligibilityStatus `json:"status"`
	Reason          string            `json:"reason"`
	Recommendations []string          `json:"recommendations"`
	Summary         string            `json:"summary"`
}

// AssessmentRecord is a persisted assessment together with its inputs.
type AssessmentRecord struct {
	ID           string                    `json:"id"`
	CreatedAt    time.Time                 `json:"created_at"`
	Profile      ApplicantProfile          `json:"profile"`
	AadhaarCheck AadhaarNumberVerification `json:"aadhaar_check"`
	NameCheck    *NameVerification         `json:"name_check,omitempty"`
	Result       AssessmentResult          `json:"result"`
}
