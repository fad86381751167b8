package remote

import (
	"context"
	"sync"

	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/service"
)

// MockStore is an in-memory service.RemoteStore for tests.
type MockStore struct {
	mu      sync.Mutex
	records map[string]model.Transaction

	// FailWrites makes every write return an error.
	FailWrites bool
	// FetchErr, when set, is returned by FetchAll.
	FetchErr error
	// FetchHook, when set, runs at the start of every FetchAll. Tests
	// use it to race local mutations against an in-flight refresh.
	FetchHook func()
	// LoginResult is returned verbatim by Login.
	LoginResult service.LoginResult

	Inserts int
	Updates int
	Deletes int
	Fetches int
}

// NewMockStore creates an empty mock remote store.
func NewMockStore() *MockStore {
	return &MockStore{
		records:     make(map[string]model.Transaction),
		LoginResult: service.LoginResult{Authorized: true},
	}
}

// Seed loads records without counting as writes.
func (m *MockStore) Seed(records ...model.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tx := range records {
		m.records[tx.ID] = tx
	}
}

// FetchAll returns every seeded and written record.
func (m *MockStore) FetchAll(_ context.Context) ([]model.Transaction, error) {
	if m.FetchHook != nil {
		m.FetchHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches++
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	out := make([]model.Transaction, 0, len(m.records))
	for _, tx := range m.records {
		out = append(out, tx)
	}
	return out, nil
}

// Insert stores a new record.
func (m *MockStore) Insert(_ context.Context, tx model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserts++
	if m.FailWrites {
		return errMockWrite
	}
	m.records[tx.ID] = tx
	return nil
}

// Update replaces a record by id.
func (m *MockStore) Update(_ context.Context, tx model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates++
	if m.FailWrites {
		return errMockWrite
	}
	m.records[tx.ID] = tx
	return nil
}

// Delete removes a record by id across all partitions.
func (m *MockStore) Delete(_ context.Context, id string, _ model.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	if m.FailWrites {
		return errMockWrite
	}
	delete(m.records, id)
	return nil
}

// Login returns the configured result.
func (m *MockStore) Login(_ context.Context, _, _ string) (service.LoginResult, error) {
	return m.LoginResult, nil
}

var errMockWrite = &mockWriteError{}

type mockWriteError struct{}

func (*mockWriteError) Error() string { return "mock write failure" }
