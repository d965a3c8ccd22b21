// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.ChatModel, ai.Transcriber,
// and ai.Provider for use in unit tests. The mocks allow tests to run without
// external AI service dependencies and enable controlled, deterministic
// behavior. All mocks are safe for concurrent use, which matters because the
// summarizer fans chunk calls out over a worker pool.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	text, err := mockProvider.ChatModel().Complete(ctx, req)
//
//	// Custom behavior injection
//	chat := mock.NewMockChatModel()
//	chat.CompleteFunc = func(ctx context.Context, req ai.CompletionRequest) (string, error) {
//	    return "canned response", nil
//	}
//
//	// Check call counts
//	count := chat.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockChatModel: Returns a short deterministic echo of the prompt
//   - MockTranscriber: Returns a transcript derived from the audio size
//   - MockProvider: Aggregates mock chat model and transcriber
package mock
