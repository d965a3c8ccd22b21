package core

// PipelineStatus is the graduated outcome of one pipeline run.
type PipelineStatus string

const (
	// PipelineSuccess means every chunk summary succeeded.
	PipelineSuccess PipelineStatus = "success"
	// PipelinePartialSuccess means some, but not all, chunk summaries succeeded.
	PipelinePartialSuccess PipelineStatus = "partial_success"
	// PipelineError means no chunk summaries were produced, a prerequisite was
	// missing, or the unified summary could not be made durable.
	PipelineError PipelineStatus = "error"
)

// Result is what the pipeline hands back to its caller. Callers always
// receive one of the three statuses with a human-readable message; internal
// errors are never propagated raw. UnifiedSummary is omitted on error.
type Result struct {
	Status         PipelineStatus  `json:"status"`
	RecordingID    ID              `json:"recordingId"`
	Message        string          `json:"message"`
	UnifiedSummary *UnifiedSummary `json:"unifiedSummary,omitempty"`
	SummaryID      ID              `json:"summaryId,omitempty"`
	SummaryPath    string          `json:"summaryPath,omitempty"`
}

// StatusFor maps chunk-summary counts to the overall pipeline status.
// success iff all summaries succeeded with at least one chunk,
// partial_success iff some succeeded and some failed,
// error iff none succeeded.
func StatusFor(successful, total int) PipelineStatus {
	switch {
	case total > 0 && successful == total:
		return PipelineSuccess
	case successful > 0:
		return PipelinePartialSuccess
	default:
		return PipelineError
	}
}
