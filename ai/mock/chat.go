package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/poiesic/voicenote/ai"
)

// MockChatModel is a test double for ai.ChatModel.
// It allows custom behavior injection via function fields.
//
// Unlike the production client, the mock records every request it receives.
// All methods are safe for concurrent use so the mock can sit behind the
// summarizer's worker pool.
type MockChatModel struct {
	// CompleteFunc is called by Complete if set.
	// If nil, uses a default deterministic echo response.
	CompleteFunc func(ctx context.Context, req ai.CompletionRequest) (string, error)

	mu        sync.Mutex
	callCount int
	requests  []ai.CompletionRequest
}

// NewMockChatModel creates a mock chat model with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockChatModel().
func NewMockChatModel() *MockChatModel {
	return &MockChatModel{}
}

// Complete returns a deterministic mock completion.
// Default behavior: a short summary-shaped response derived from the prompt.
func (m *MockChatModel) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.requests = append(m.requests, req)
	fn := m.CompleteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}

	words := strings.Fields(req.Prompt)
	if len(words) > 12 {
		words = words[:12]
	}
	return fmt.Sprintf("Mock summary of: %s", strings.Join(words, " ")), nil
}

// CallCount returns the number of times Complete was called.
func (m *MockChatModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Requests returns a copy of every request received so far, in arrival order.
func (m *MockChatModel) Requests() []ai.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ai.CompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Reset clears the call count, recorded requests, and custom functions.
func (m *MockChatModel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.requests = nil
	m.CompleteFunc = nil
}
