// Package testutil provides mock implementations shared across package tests.
package testutil

import (
	"context"
	"sync"

	"lyricsent/internal/backend"
)

// MockBackend is a func-field mock of backend.Backend.
type MockBackend struct {
	InvokeFunc func(ctx context.Context, prompt string) (string, error)

	mu         sync.Mutex
	callCount  int
	lastPrompt string
}

// Invoke implements backend.Backend.
func (m *MockBackend) Invoke(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastPrompt = prompt
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, prompt)
	}
	return "", backend.ErrUnavailable
}

// CallCount returns how many times Invoke was called.
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompt returns the prompt of the most recent Invoke.
func (m *MockBackend) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}
