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

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecording indicates a Recording failed validation.
	ErrInvalidRecording = errors.New("invalid recording")

	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidUnifiedSummary indicates a UnifiedSummary failed validation.
	ErrInvalidUnifiedSummary = errors.New("invalid unified summary")

	// ErrEmptyID indicates a required identifier is empty.
	ErrEmptyID = errors.New("identifier cannot be empty")

	// ErrEmptyText indicates a required text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidStatus indicates an unknown RecordingStatus value.
	ErrInvalidStatus = errors.New("invalid recording status")

	// ErrInvalidPosition indicates a chunk position outside 1..TotalChunks.
	ErrInvalidPosition = errors.New("chunk position out of range")

	// ErrSummaryCountMismatch indicates successful+failed counts do not add
	// up to the total chunk count.
	ErrSummaryCountMismatch = errors.New("summary counts do not match total chunks")

	// ErrSummaryNumberingGap indicates the chunk_1..chunk_N key set has a gap
	// or an unexpected key.
	ErrSummaryNumberingGap = errors.New("chunk summary numbering is not contiguous")
)
