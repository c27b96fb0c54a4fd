package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"scribe/internal/app/model"
	"scribe/internal/app/repository"
)

// MockTranscriptionDAO is an in-memory repository.TranscriptionDAO.
// Set ErrorMap[method] to make that method fail.
type MockTranscriptionDAO struct {
	mu sync.RWMutex

	transcriptions map[int64]model.Transcription
	nextID         int64
	closed         bool

	ErrorMap    map[string]error
	CallHistory []DAOCall
}

// DAOCall represents a single DAO method call for tracking
type DAOCall struct {
	Method    string
	Arguments []any
	Error     error
	Timestamp time.Time
}

var _ repository.TranscriptionDAO = (*MockTranscriptionDAO)(nil)

// NewMockTranscriptionDAO creates an empty MockTranscriptionDAO
func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{
		transcriptions: make(map[int64]model.Transcription),
		nextID:         1,
		ErrorMap:       make(map[string]error),
	}
}

// WithError makes method return err
func (m *MockTranscriptionDAO) WithError(method string, err error) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[method] = err
	return m
}

// Close implements the TranscriptionDAO interface
func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ErrorMap["Close"]
	m.track("Close", err)
	if err == nil {
		m.closed = true
	}
	return err
}

// Record implements the TranscriptionDAO interface
func (m *MockTranscriptionDAO) Record(_ context.Context, t *model.Transcription) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ErrorMap["Record"]
	m.track("Record", err, t.FileName)
	if err != nil {
		return 0, err
	}

	stored := *t
	stored.ID = m.nextID
	m.transcriptions[stored.ID] = stored
	m.nextID++
	return stored.ID, nil
}

// List implements the TranscriptionDAO interface
func (m *MockTranscriptionDAO) List(_ context.Context, limit int) ([]model.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ErrorMap["List"]
	m.track("List", err, limit)
	if err != nil {
		return nil, err
	}

	all := m.sorted()
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return truncate(all, limit), nil
}

// ListAfter implements the TranscriptionDAO interface
func (m *MockTranscriptionDAO) ListAfter(_ context.Context, afterID int64, limit int) ([]model.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ErrorMap["ListAfter"]
	m.track("ListAfter", err, afterID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]model.Transcription, 0)
	for _, t := range m.sorted() {
		if t.ID > afterID {
			result = append(result, t)
		}
	}
	return truncate(result, limit), nil
}

// All returns every stored transcription in id order
func (m *MockTranscriptionDAO) All() []model.Transcription {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted()
}

// Closed reports whether Close succeeded
func (m *MockTranscriptionDAO) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Calls returns the recorded method calls
func (m *MockTranscriptionDAO) Calls() []DAOCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]DAOCall(nil), m.CallHistory...)
}

func (m *MockTranscriptionDAO) sorted() []model.Transcription {
	all := make([]model.Transcription, 0, len(m.transcriptions))
	for _, t := range m.transcriptions {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (m *MockTranscriptionDAO) track(method string, err error, args ...any) {
	m.CallHistory = append(m.CallHistory, DAOCall{
		Method:    method,
		Arguments: args,
		Error:     err,
		Timestamp: time.Now(),
	})
}

func truncate(ts []model.Transcription, limit int) []model.Transcription {
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}
	if len(ts) > limit {
		return ts[:limit]
	}
	return ts
}
