package store

import (
	"sync"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu   sync.RWMutex
	runs map[string][]Result
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{runs: make(map[string][]Result)}
}

// Put appends a result.
func (m *Memory) Put(r Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.RunID] = append(m.runs[r.RunID], r)
	return nil
}

// Results returns a copy of the results of a run.
func (m *Memory) Results(runID string) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Result(nil), m.runs[runID]...), nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
