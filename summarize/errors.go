package summarize

import "errors"

var (
	// ErrChatModelRequired indicates that a nil chat model was provided.
	ErrChatModelRequired = errors.New("chat model is required")
)
