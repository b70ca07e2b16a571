package mocks

import (
	"context"
	"sync"

	"github.com/example/storefront/internal/catalog"
)

// MockPublisher records published events in memory for testing
type MockPublisher struct {
	mu sync.RWMutex

	PublishCalls    []PublishCall
	PublishErr      error
	PublishCallback func(ctx context.Context, key string, event any) error
}

// PublishCall records parameters passed to Publish
type PublishCall struct {
	Key   string
	Event any
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{PublishCalls: make([]PublishCall, 0)}
}

func (m *MockPublisher) Publish(ctx context.Context, key string, event any) error {
	m.mu.Lock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Key: key, Event: event})
	callback, err := m.PublishCallback, m.PublishErr
	m.mu.Unlock()

	if callback != nil {
		return callback(ctx, key, event)
	}
	return err
}

// SetError makes every later Publish fail with err.
func (m *MockPublisher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishErr = err
}

// Events returns the catalog events published so far, in order
func (m *MockPublisher) Events() []catalog.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []catalog.Event
	for _, c := range m.PublishCalls {
		if e, ok := c.Event.(catalog.Event); ok {
			out = append(out, e)
		}
	}
	return out
}

// EventTypes returns the type of every published catalog event, in order
func (m *MockPublisher) EventTypes() []string {
	types := []string{}
	for _, e := range m.Events() {
		types = append(types, e.Type)
	}
	return types
}

// Reset clears recorded calls and configured failures
func (m *MockPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = make([]PublishCall, 0)
	m.PublishErr = nil
	m.PublishCallback = nil
}
