package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

// MinMonthlyIncome is the lowest declared monthly income that is eligible.
const MinMonthlyIncome = 25000

const (
	ReasonAadhaarMismatch    = "Aadhaar Number Mismatch - Document verification failed"
	ReasonSufficientIncome   = "Sufficient income for requested loan"
	ReasonInsufficientIncome = "Income below minimum threshold"
)

var (
	mismatchRecommendations = []string{
		"Please ensure the Aadhaar number you entered matches the document",
		"Upload a clear, high-quality image of your Aadhaar card",
		"Contact support if you believe this is an error",
	}
	eligibleRecommendations = []string{
		"You're on track! Maintain your financial discipline.",
		"Upload clear documents to speed up approval.",
	}
	lowIncomeRecommendations = []string{
		"Maintain consistent income inflow",
		"Keep existing EMIs low to improve affordability",
		"Consider adding a co-applicant to strengthen the application",
		"Choose a longer tenure to reduce monthly EMI",
	}
)

// AssessEligibility decides eligibility from the declared profile and the
// Aadhaar check. It has no side effects and the same input always gives the
// same result.
func AssessEligibility(profile dto.ApplicantProfile, aadhaarVerified bool, extractedAadhaar string) dto.AssessmentResult {
	var result dto.AssessmentResult

	switch {
	case !aadhaarVerified:
		result.Status = dto.StatusNotEligible
		result.Reason = ReasonAadhaarMismatch
		result.Recommendations = clone(mismatchRecommendations)
	case profile.MonthlyIncome >= MinMonthlyIncome:
		result.Status = dto.StatusEligible
		result.Reason = ReasonSufficientIncome
		result.Recommendations = clone(eligibleRecommendations)
	default:
		result.Status = dto.StatusNotEligible
		result.Reason = ReasonInsufficientIncome
		result.Recommendations = clone(lowIncomeRecommendations)
	}

	result.Summary = renderSummary(profile, result, extractedAadhaar)
	return result
}

func renderSummary(p dto.ApplicantProfile, r dto.AssessmentResult, extractedAadhaar string) string {
	var b strings.Builder

	b.WriteString("Loan Eligibility Assessment\n\n")
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Reason: %s\n", r.Reason)
	fmt.Fprintf(&b, "Applicant Name: %s\n", orNA(p.Name))
	fmt.Fprintf(&b, "Entered Aadhaar: %s\n", orNA(p.AadhaarNumber))
	fmt.Fprintf(&b, "Document Aadhaar: %s\n", orNA(extractedAadhaar))
	fmt.Fprintf(&b, "Monthly Income: ₹%d\n", p.MonthlyIncome)
	fmt.Fprintf(&b, "Bank: %s\n", orNA(p.BankName))
	fmt.Fprintf(&b, "Loan Type: %s\n", orNA(p.LoanType))
	fmt.Fprintf(&b, "Requested Amount: ₹%s\n", positiveOrNA(p.LoanAmount))
	fmt.Fprintf(&b, "Tenure: %s months\n", positiveOrNA(int64(p.TenureMonths)))

	b.WriteString("\nRecommendations:\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func positiveOrNA(n int64) string {
	if n <= 0 {
		return "N/A"
	}
	return strconv.FormatInt(n, 10)
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
