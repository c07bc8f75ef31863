package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"cmdbot/internal/core/domain"
)

// MockStore is a map-backed stand-in for the key-value port.
type MockStore struct {
	mu     sync.Mutex
	values map[string]string
	lists  map[string][]string
	err    error
}

func NewMockStore() *MockStore {
	return &MockStore{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

func (m *MockStore) failWith(err error) {
	m.err = err
}

func (m *MockStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.values[key], nil
}

func (m *MockStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

func (m *MockStore) SetExpire(ctx context.Context, key, value string, _ time.Duration) error {
	return m.Set(ctx, key, value)
}

func (m *MockStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.values, key)
	return nil
}

func (m *MockStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.values[key]
	return ok, nil
}

func (m *MockStore) ListAppend(_ context.Context, list, item string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.lists[list] = append(m.lists[list], item)
	return nil
}

func (m *MockStore) ListRemove(_ context.Context, list string, _ int64, item string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	var kept []string
	for _, existing := range m.lists[list] {
		if existing != item {
			kept = append(kept, existing)
		}
	}
	m.lists[list] = kept
	return nil
}

func (m *MockStore) ListRange(_ context.Context, list string, _, _ int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.lists[list], nil
}

// MockSender records every reply it is asked to send.
type MockSender struct {
	mu       sync.Mutex
	err      error
	Messages []string
}

func (m *MockSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.Messages = append(m.Messages, text)
	return nil
}

func (m *MockSender) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}

var errMock = errors.New("mock error")
