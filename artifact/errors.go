package artifact

import "errors"

var (
	// ErrBlobStoreRequired indicates that a nil blob store was provided.
	ErrBlobStoreRequired = errors.New("blob store is required")

	// ErrChunkRowStoreRequired indicates that a nil chunk row store was provided.
	ErrChunkRowStoreRequired = errors.New("chunk row store is required")

	// ErrSummaryRowStoreRequired indicates that a nil summary row store was provided.
	ErrSummaryRowStoreRequired = errors.New("summary row store is required")
)
