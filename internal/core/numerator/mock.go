package numerator

import (
	"context"
	"sync"
)

// Mock is an in-memory Generator for tests.
type Mock struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewMock creates a mock generator starting every sequence at zero.
func NewMock() *Mock {
	return &Mock{counters: make(map[string]int64)}
}

// Next returns the next formatted number for the prefix.
func (m *Mock) Next(_ context.Context, cfg Config) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[cfg.Prefix]++
	return cfg.Format(m.counters[cfg.Prefix]), nil
}

// SetNext positions the counter so the next call to Next returns value.
func (m *Mock) SetNext(_ context.Context, cfg Config, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[cfg.Prefix] = value - 1
	return nil
}

var _ Generator = (*Mock)(nil)
