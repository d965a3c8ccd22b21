package ai

import "errors"

var (
	// ErrEmptyCompletion indicates the model returned no choices.
	ErrEmptyCompletion = errors.New("model returned no completion choices")

	// ErrEmptyTranscript indicates the speech-to-text call returned no text.
	ErrEmptyTranscript = errors.New("transcription returned no text")
)
