package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/storage"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/utils"
)

const (
	replyCollected = "Thanks! You can now upload your Aadhaar card for the eligibility assessment."
	replyFinished  = "You're all set! Upload your Aadhaar card to view your eligibility report."
)

// ErrProfileIncomplete is returned when an assessment is requested before
// the dialogue has collected every field.
var ErrProfileIncomplete = errors.New("applicant profile is incomplete")

// dialogueStep asks for one profile field. apply stores a valid answer and
// reports false for input that must be asked again.
type dialogueStep struct {
	field   string
	prompt  func(p *dto.ApplicantProfile) string
	apply   func(input string, p *dto.ApplicantProfile) bool
	invalid string // empty when every answer is accepted
	skip    func(p *dto.ApplicantProfile) bool
}

func fixed(prompt string) func(*dto.ApplicantProfile) string {
	return func(*dto.ApplicantProfile) string { return prompt }
}

var dialogueSteps = []dialogueStep{
	{
		field:  "name",
		prompt: fixed("Hi! I'm your loan advisor. What's your full name?"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			p.Name = in
			return in != ""
		},
	},
	{
		field:  "age",
		prompt: func(p *dto.ApplicantProfile) string { return fmt.Sprintf("Hi %s! How old are you?", p.Name) },
		apply: func(in string, p *dto.ApplicantProfile) bool {
			n, ok := parseDigits(in)
			if ok {
				p.Age = int(n)
			}
			return ok
		},
		invalid: "Please enter a valid age.",
	},
	{
		field:  "employment_type",
		prompt: fixed("What's your employment type? (Salaried, Self-employed, or Freelancer)"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			switch v := strings.ToLower(in); v {
			case "salaried", "self-employed", "freelancer":
				p.EmploymentType = v
				return true
			}
			return false
		},
		invalid: "Please enter a valid employment type.",
	},
	{
		field:  "income",
		prompt: fixed("What is your monthly income?"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			n, ok := parseDigits(in)
			if ok {
				p.MonthlyIncome = n
			}
			return ok
		},
		invalid: "Please enter your income in numbers.",
	},
	{
		field:  "existing_emis",
		prompt: fixed("Do you have any existing EMIs or loans? (if No enter 0)"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			p.ExistingEMIs = in
			return true
		},
	},
	{
		field:  "bank_name",
		prompt: fixed("Which bank do you hold your salary account with?"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			p.BankName = in
			return true
		},
	},
	{
		field:  "co_applicant",
		prompt: fixed("Do you have a co-applicant? (Yes / No)"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			p.CoApplicant = in
			if !hasCoApplicant(p) {
				p.CoApplicantIncome = "N/A"
			}
			return true
		},
	},
	{
		field:  "co_income",
		prompt: fixed("Please enter co-applicant's monthly income."),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			if _, ok := parseDigits(in); !ok {
				return false
			}
			p.CoApplicantIncome = in
			return true
		},
		invalid: "Enter co-applicant's income in numbers.",
		skip:    func(p *dto.ApplicantProfile) bool { return !hasCoApplicant(p) },
	},
	{
		field:  "aadhaar_number",
		prompt: fixed("Please enter your 12-digit Aadhaar number."),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			formatted, ok := utils.FormatAadhaarNumber(in)
			if ok {
				p.AadhaarNumber = formatted
			}
			return ok
		},
		invalid: "Please enter your 12-digit Aadhaar number (digits only).",
	},
	{
		field:  "pan_number",
		prompt: fixed("What is your PAN number?"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			p.PANNumber = strings.ToUpper(in)
			return true
		},
	},
	{
		field:  "loan_type",
		prompt: fixed("What type of loan are you applying for? (Personal/Home/Vehicle/Business/Education/Gold/Other)"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			p.LoanType = in
			return true
		},
	},
	{
		field:  "loan_amnt",
		prompt: fixed("What is the desired loan amount?"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			n, ok := parseDigits(in)
			if ok {
				p.LoanAmount = n
			}
			return ok
		},
		invalid: "Enter loan amount in numbers.",
	},
	{
		field:  "loan_tenure",
		prompt: fixed("What is the preferred tenure in months?"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			n, ok := parseDigits(in)
			if ok {
				p.TenureMonths = int(n)
			}
			return ok
		},
		invalid: "Enter tenure in months (numbers only).",
	},
	{
		field:  "collateral",
		prompt: fixed("Do you have collateral or property to pledge?"),
		apply: func(in string, p *dto.ApplicantProfile) bool {
			p.Collateral = in
			return true
		},
	},
}

// DialogueService collects an ApplicantProfile one answer at a time.
type DialogueService struct {
	store storage.SessionStore
}

func NewDialogueService(store storage.SessionStore) *DialogueService {
	return &DialogueService{store: store}
}

// Reply records one user message and returns the next question. An empty
// sessionID, or one that expired, starts a new dialogue.
func (s *DialogueService) Reply(ctx context.Context, sessionID, message string) (*dto.ChatResponse, error) {
	message = strings.TrimSpace(message)

	session, err := s.loadOrStart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fresh := session.Step == 0 && session.Profile.Name == ""

	var reply string
	switch {
	case session.Step >= len(dialogueSteps):
		reply = replyFinished
	case fresh && message == "":
		reply = dialogueSteps[0].prompt(&session.Profile)
	default:
		step := dialogueSteps[session.Step]
		profile := session.Profile
		if !step.apply(message, &profile) {
			reply = step.invalid
			break
		}
		session.Profile = profile
		session.Step = nextStep(session.Step+1, &session.Profile)
		log.Debug().Str("session_id", session.ID).Str("field", step.field).Msg("Dialogue field collected")

		if session.Step >= len(dialogueSteps) {
			reply = replyCollected
		} else {
			reply = dialogueSteps[session.Step].prompt(&session.Profile)
		}
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &dto.ChatResponse{
		SessionID: session.ID,
		Reply:     reply,
		Complete:  session.Step >= len(dialogueSteps),
	}, nil
}

// Profile returns the collected profile of a finished dialogue.
func (s *DialogueService) Profile(ctx context.Context, sessionID string) (*dto.ApplicantProfile, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step < len(dialogueSteps) {
		return nil, ErrProfileIncomplete
	}
	profile := session.Profile
	return &profile, nil
}

// Reset forgets a dialogue.
func (s *DialogueService) Reset(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *DialogueService) loadOrStart(ctx context.Context, sessionID string) (*dto.ApplicantSession, error) {
	if sessionID != "" {
		session, err := s.store.Get(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, storage.ErrSessionNotFound) {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		log.Info().Str("session_id", sessionID).Msg("Session not found, starting a new dialogue")
	}
	return &dto.ApplicantSession{ID: uuid.NewString()}, nil
}

func nextStep(i int, p *dto.ApplicantProfile) int {
	for i < len(dialogueSteps) && dialogueSteps[i].skip != nil && dialogueSteps[i].skip(p) {
		i++
	}
	return i
}

func hasCoApplicant(p *dto.ApplicantProfile) bool {
	return strings.EqualFold(strings.TrimSpace(p.CoApplicant), "yes")
}

// parseDigits accepts only ASCII digits, so "25,000" or "-5" are rejected.
func parseDigits(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
