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


// Package pipeline orchestrates transcript summarization end to end.
//
// A run loads the recording's most recent transcription, producing one from
// the stored audio first when none exists, splits the transcript into chunks, persists the chunks, summarizes them concurrently,
// consolidates the summaries into one document, persists that unified
// summary, and advances the recording's lifecycle status.
//
// Outcomes are graduated rather than binary. A run where every chunk summary
// succeeded is a success; a run where only some succeeded is a partial
// success whose summary records the failures explicitly; a run that produced
// nothing durable is an error. Callers always receive a core.Result and
// never a raw internal error.
//
// Runs are idempotent. Chunk identifiers derive from content, so re-running
// a recording rewrites no blobs, and a recording already in the summarized
// state returns its persisted summary without new model calls.
package pipeline
