package pipeline

import "errors"

var (
	// ErrRecordingStoreRequired indicates that a nil recording store was provided.
	ErrRecordingStoreRequired = errors.New("recording store is required")

	// ErrTranscriptionStoreRequired indicates that a nil transcription store was provided.
	ErrTranscriptionStoreRequired = errors.New("transcription store is required")

	// ErrArtifactStoreRequired indicates that a nil artifact store was provided.
	ErrArtifactStoreRequired = errors.New("artifact store is required")

	// ErrAIProviderRequired indicates that a nil AI provider was provided.
	ErrAIProviderRequired = errors.New("AI provider is required")
)
