package mock

import (
	"context"
	"fmt"
	"sync"
)

// MockTranscriber is a test double for ai.Transcriber.
// It allows custom behavior injection via function fields.
type MockTranscriber struct {
	// TranscribeFunc is called by Transcribe if set.
	// If nil, returns a deterministic transcript derived from the input size.
	TranscribeFunc func(ctx context.Context, audio []byte, filename string) (string, error)

	mu        sync.Mutex
	callCount int
}

// NewMockTranscriber creates a mock transcriber with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockTranscriber().
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{}
}

// Transcribe returns a deterministic mock transcript.
func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	m.mu.Lock()
	m.callCount++
	fn := m.TranscribeFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, audio, filename)
	}

	return fmt.Sprintf("Mock transcript of %s (%d bytes of audio).", filename, len(audio)), nil
}

// CallCount returns the number of times Transcribe was called.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockTranscriber) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.TranscribeFunc = nil
}
