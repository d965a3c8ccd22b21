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


// Package summarize implements the two model-calling stages of the
// summarization pipeline.
//
// The Summarizer is the map stage: one chat completion per transcript chunk,
// fanned out over a bounded worker pool. A chunk whose call fails yields an
// explicit failure-marker summary in its slot; the batch never aborts and
// ordering is preserved.
//
// The Consolidator is the reduce stage: a single JSON-mode completion that
// merges all chunk summaries into one ConsolidatedSummary. Consolidation is
// total - when the response cannot be parsed the result is derived locally
// from the raw text, and when the call itself fails all three fields carry
// the error description.
package summarize
