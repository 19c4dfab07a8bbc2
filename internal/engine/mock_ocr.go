package engine

import (
	"context"
	"sync"
)

// MockTextSource is a canned TextSource for tests: it maps raw document
// content to recognized text and can fail on demand.
type MockTextSource struct {
	mu    sync.Mutex
	Texts map[string]string
	Errs  map[string]error
	Calls int
}

// Text returns the canned text for the document content.
func (m *MockTextSource) Text(_ context.Context, document []byte) (string, error) {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()

	key := string(document)
	if err, ok := m.Errs[key]; ok {
		return "", err
	}
	return m.Texts[key], nil
}
