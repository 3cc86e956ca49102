package storage

import (
	"context"
	"sync"
	"time"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

type memorySession struct {
	session   dto.ApplicantSession
	expiresAt time.Time
}

// MemorySessionStore is a process-local SessionStore for single-instance
// deployments and tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memorySession
}

// NewMemorySessionStore creates a store. A zero ttl keeps sessions forever.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (*dto.ApplicantSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		delete(m.sessions, id)
		return nil, ErrSessionNotFound
	}

	session := entry.session
	return &session, nil
}

func (m *MemorySessionStore) Save(ctx context.Context, session *dto.ApplicantSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memorySession{session: *session}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.sessions[session.ID] = entry
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// MemoryAssessmentStore is a process-local AssessmentStore.
type MemoryAssessmentStore struct {
	mu      sync.RWMutex
	records map[string]dto.AssessmentRecord
}

func NewMemoryAssessmentStore() *MemoryAssessmentStore {
	return &MemoryAssessmentStore{records: make(map[string]dto.AssessmentRecord)}
}

func (m *MemoryAssessmentStore) Save(ctx context.Context, record *dto.AssessmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *record
	stored.Result.Recommendations = append([]string(nil), record.Result.Recommendations...)
	m.records[record.ID] = stored
	return nil
}

func (m *MemoryAssessmentStore) Get(ctx context.Context, id string) (*dto.AssessmentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrAssessmentNotFound
	}
	record.Result.Recommendations = append([]string(nil), record.Result.Recommendations...)
	return &record, nil
}
