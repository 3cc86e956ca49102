package storage

import (
	"context"
	"errors"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// SessionStore keeps intake dialogue state between chat turns.
type SessionStore interface {
	Get(ctx context.Context, id string) (*dto.ApplicantSession, error)
	Save(ctx context.Context, session *dto.ApplicantSession) error
	Delete(ctx context.Context, id string) error
}

// AssessmentStore persists finished assessments.
type AssessmentStore interface {
	Save(ctx context.Context, record *dto.AssessmentRecord) error
	Get(ctx context.Context, id string) (*dto.AssessmentRecord, error)
}
