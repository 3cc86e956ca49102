package dto

// ApplicantProfile holds the fields declared by the applicant during the
// intake dialogue. Numeric fields are zero when not declared.
type ApplicantProfile struct {
	Name              string `json:"name"`
	Age               int    `json:"age,omitempty"`
	EmploymentType    string `json:"employment_type,omitempty"`
	MonthlyIncome     int64  `json:"income"`
	ExistingEMIs      string `json:"existing_emis,omitempty"`
	BankName          string `json:"bank_name"`
	CoApplicant       string `json:"co_applicant,omitempty"`
	CoApplicantIncome string `json:"co_income,omitempty"`
	AadhaarNumber     string `json:"aadhaar_number"`
	PANNumber         string `json:"pan_number,omitempty"`
	LoanType          string `json:"loan_type"`
	LoanAmount        int64  `json:"loan_amnt"`
	TenureMonths      int    `json:"loan_tenure"`
	Collateral        string `json:"collateral,omitempty"`
}
