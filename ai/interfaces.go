package ai

import "context"

// CompletionRequest describes one chat-completion call.
type CompletionRequest struct {
	// System is the system prompt. Empty means no system message.
	System string

	// Prompt is the user message content.
	Prompt string

	// Temperature is the sampling temperature for this call.
	Temperature float64

	// MaxTokens bounds the completion length. Zero means provider default.
	MaxTokens int

	// JSONMode requests a structured JSON response from the model.
	JSONMode bool
}

// ChatModel performs chat-completion calls against a language model.
// Implementations must be thread-safe for concurrent use.
type ChatModel interface {
	// Complete submits one completion request and returns the model's text
	// response, trimmed of surrounding whitespace.
	// Returns an error if the call fails or yields no choices.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Transcriber converts recorded audio into transcript text.
// Implementations must be thread-safe for concurrent use.
type Transcriber interface {
	// Transcribe submits audio bytes to a speech-to-text model and returns
	// the transcript text. The filename hint carries the audio container
	// extension for the provider.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages ChatModel and Transcriber
// instances, ensuring they share configuration appropriately.
type Provider interface {
	// ChatModel returns the chat-completion service.
	// The returned ChatModel is safe for concurrent use.
	ChatModel() ChatModel

	// Transcriber returns the speech-to-text service.
	// The returned Transcriber is safe for concurrent use.
	Transcriber() Transcriber

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
