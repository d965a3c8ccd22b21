// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateRecordingStatus checks that a status is one of the known lifecycle
// values.
func ValidateRecordingStatus(status RecordingStatus) error {
	switch status {
	case StatusRecorded, StatusProcessing, StatusTranscribed, StatusSummarized, StatusError:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - ID, RecordingID and TranscriptionID must be set
//   - Text must not be empty
//   - Position must be within 1..TotalChunks
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.ID == "" || chunk.RecordingID == "" || chunk.TranscriptionID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyID)
	}
	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}
	if chunk.Position < 1 || chunk.Position > chunk.TotalChunks {
		return fmt.Errorf("%w: %w: position %d of %d", ErrInvalidChunk, ErrInvalidPosition,
			chunk.Position, chunk.TotalChunks)
	}
	return nil
}

// ValidateUnifiedSummary validates the structural invariants of a unified
// summary before it is persisted:
//   - identifiers are set
//   - SuccessfulSummaries + FailedSummaries == TotalChunks
//   - the ChunkSummaries key set is exactly chunk_1..chunk_N
func ValidateUnifiedSummary(summary *UnifiedSummary) error {
	if summary == nil {
		return fmt.Errorf("%w: summary is nil", ErrInvalidUnifiedSummary)
	}
	if summary.SummaryID == "" || summary.RecordingID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUnifiedSummary, ErrEmptyID)
	}
	if summary.SuccessfulSummaries+summary.FailedSummaries != summary.TotalChunks {
		return fmt.Errorf("%w: %w: %d+%d != %d", ErrInvalidUnifiedSummary, ErrSummaryCountMismatch,
			summary.SuccessfulSummaries, summary.FailedSummaries, summary.TotalChunks)
	}
	if len(summary.ChunkSummaries) != summary.TotalChunks {
		return fmt.Errorf("%w: %w: %d entries for %d chunks", ErrInvalidUnifiedSummary,
			ErrSummaryNumberingGap, len(summary.ChunkSummaries), summary.TotalChunks)
	}
	for n := 1; n <= summary.TotalChunks; n++ {
		if _, ok := summary.ChunkSummaries[ChunkKey(n)]; !ok {
			return fmt.Errorf("%w: %w: missing %s", ErrInvalidUnifiedSummary,
				ErrSummaryNumberingGap, ChunkKey(n))
		}
	}
	return nil
}
