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

import (
	"fmt"
	"time"
)

// ChunkSummary is the map-stage result for one chunk. Exactly one
// ChunkSummary exists per chunk, even when the model call failed: a failure
// is an explicit variant (Failed + FailureReason), never a magic string
// prefix, so ordering and counts are always preserved.
type ChunkSummary struct {
	ChunkID       ID
	RecordingID   ID
	Position      int // matches the owning chunk's 1-based position
	Text          string
	Failed        bool
	FailureReason string
}

// FailedChunkSummary builds the failure-marker summary for a chunk whose
// model call did not produce a usable result. The marker text stands in for
// the summary wherever one is embedded downstream.
func FailedChunkSummary(chunk *Chunk, reason string) *ChunkSummary {
	return &ChunkSummary{
		ChunkID:       chunk.ID,
		RecordingID:   chunk.RecordingID,
		Position:      chunk.Position,
		Text:          fmt.Sprintf("Error summarizing %s: %s", ChunkKey(chunk.Position), reason),
		Failed:        true,
		FailureReason: reason,
	}
}

// ConsolidatedSummary is the reduce-stage result synthesized across all chunk
// summaries. All three fields are always populated; consumers never need to
// special-case a degraded consolidation.
type ConsolidatedSummary struct {
	ExecutiveSummary string `json:"executiveSummary"`
	KeyPoints        string `json:"keyPoints"`
	DetailedSummary  string `json:"detailedSummary"`
}

// ChunkSummaryEntry is one numbered entry in a unified summary.
type ChunkSummaryEntry struct {
	ChunkID      ID     `json:"chunkId"`
	ChunkSummary string `json:"chunkSummary"`
}

// UnifiedSummary is the single persisted artifact combining all chunk
// summaries and the consolidated summary for one recording. The JSON tags
// define the document written to the blob store.
//
// ChunkSummaries is keyed by the stable numbering chunk_1..chunk_N with no
// gaps, independent of which underlying chunk calls failed.
type UnifiedSummary struct {
	RecordingID         ID                           `json:"recordingId"`
	SummaryID           ID                           `json:"summaryId"`
	CreatedAt           time.Time                    `json:"createdAt"`
	TotalChunks         int                          `json:"totalChunks"`
	SuccessfulSummaries int                          `json:"successfulSummaries"`
	FailedSummaries     int                          `json:"failedSummaries"`
	ChunkSummaries      map[string]ChunkSummaryEntry `json:"chunkSummaries"`
	Consolidated        ConsolidatedSummary          `json:"consolidatedSummary"`
}

// ChunkKey renders the stable numbering key for a 1-based chunk position.
func ChunkKey(position int) string {
	return fmt.Sprintf("chunk_%d", position)
}

// NewUnifiedSummary assembles a unified summary from the ordered chunk
// summaries of one pipeline run. The summaries slice must already be in
// original chunk order; numbering is assigned from slice order so the key set
// is exactly chunk_1..chunk_N regardless of per-chunk failures.
func NewUnifiedSummary(recordingID ID, summaries []*ChunkSummary, consolidated ConsolidatedSummary, createdAt time.Time) *UnifiedSummary {
	entries := make(map[string]ChunkSummaryEntry, len(summaries))
	successful := 0
	for i, summary := range summaries {
		entries[ChunkKey(i+1)] = ChunkSummaryEntry{
			ChunkID:      summary.ChunkID,
			ChunkSummary: summary.Text,
		}
		if !summary.Failed {
			successful++
		}
	}

	return &UnifiedSummary{
		RecordingID:         recordingID,
		SummaryID:           NewID(),
		CreatedAt:           createdAt,
		TotalChunks:         len(summaries),
		SuccessfulSummaries: successful,
		FailedSummaries:     len(summaries) - successful,
		ChunkSummaries:      entries,
		Consolidated:        consolidated,
	}
}
