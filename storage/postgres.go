package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

const createAssessmentsTable = `
CREATE TABLE IF NOT EXISTS loan_assessments (
	id            TEXT PRIMARY KEY,
	created_at    TIMESTAMPTZ NOT NULL,
	status        TEXT NOT NULL,
	profile       JSONB NOT NULL,
	aadhaar_check JSONB NOT NULL,
	name_check    JSONB,
	result        JSONB NOT NULL
)`

// PostgresAssessmentStore persists assessments in PostgreSQL.
type PostgresAssessmentStore struct {
	db *sql.DB
}

// NewPostgresAssessmentStore opens the database and creates the table if needed.
func NewPostgresAssessmentStore(ctx context.Context, databaseURL string) (*PostgresAssessmentStore, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(pingCtx, createAssessmentsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create assessments table: %w", err)
	}

	return &PostgresAssessmentStore{db: db}, nil
}

func (p *PostgresAssessmentStore) Save(ctx context.Context, record *dto.AssessmentRecord) error {
	profile, err := json.Marshal(record.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	aadhaarCheck, err := json.Marshal(record.AadhaarCheck)
	if err != nil {
		return fmt.Errorf("failed to marshal aadhaar check: %w", err)
	}
	result, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	var nameCheck []byte
	if record.NameCheck != nil {
		if nameCheck, err = json.Marshal(record.NameCheck); err != nil {
			return fmt.Errorf("failed to marshal name check: %w", err)
		}
	}

	query := `
		INSERT INTO loan_assessments (id, created_at, status, profile, aadhaar_check, name_check, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err := p.db.ExecContext(ctx, query,
		record.ID,
		record.CreatedAt,
		string(record.Result.Status),
		string(profile),
		string(aadhaarCheck),
		nullableJSON(nameCheck),
		string(result),
	); err != nil {
		return fmt.Errorf("failed to insert assessment: %w", err)
	}
	return nil
}

func (p *PostgresAssessmentStore) Get(ctx context.Context, id string) (*dto.AssessmentRecord, error) {
	query := `
		SELECT id, created_at, profile, aadhaar_check, name_check, result
		FROM loan_assessments
		WHERE id = $1`

	var (
		record                        dto.AssessmentRecord
		profile, aadhaarCheck, result []byte
		nameCheck                     []byte
	)
	err := p.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.CreatedAt, &profile, &aadhaarCheck, &nameCheck, &result,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assessment: %w", err)
	}

	if err := json.Unmarshal(profile, &record.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	if err := json.Unmarshal(aadhaarCheck, &record.AadhaarCheck); err != nil {
		return nil, fmt.Errorf("failed to decode aadhaar check: %w", err)
	}
	if err := json.Unmarshal(result, &record.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	if len(nameCheck) > 0 {
		record.NameCheck = &dto.NameVerification{}
		if err := json.Unmarshal(nameCheck, record.NameCheck); err != nil {
			return nil, fmt.Errorf("failed to decode name check: %w", err)
		}
	}
	return &record, nil
}

func (p *PostgresAssessmentStore) Close() error {
	return p.db.Close()
}

// nullableJSON passes JSON as text; lib/pq would send []byte as bytea.
func nullableJSON(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}
