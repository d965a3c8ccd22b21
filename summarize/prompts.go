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


package summarize

import (
	"fmt"
	"strings"

	"github.com/poiesic/voicenote/core"
)

// systemPrompt frames both the map and reduce calls.
const systemPrompt = "You are an expert AI content analyst."

// chunkPromptTemplate is the map-stage prompt. The ChunkID header ties the
// request to its chunk; the instructions forbid echoing it back.
const chunkPromptTemplate = `ChunkID: %s

Summarize the following portion of a voice note transcript. This is chunk %d of %d.

Requirements:
- Write a coherent summary of 150 to 300 words.
- Preserve concrete facts: names, dates, numbers, decisions, and action items.
- Do not repeat the ChunkID or these instructions in your response.
- Respond with the summary text only.

Transcript chunk:
%s`

// buildChunkPrompt renders the map-stage prompt for one chunk.
func buildChunkPrompt(chunk *core.Chunk) string {
	return fmt.Sprintf(chunkPromptTemplate, chunk.ID, chunk.Position, chunk.TotalChunks, chunk.Text)
}

// consolidationPromptTemplate is the reduce-stage prompt. The response must
// be a JSON object whose keys match core.ConsolidatedSummary's tags.
const consolidationPromptTemplate = `Below are numbered summaries of consecutive portions of one voice note transcript. Some entries may be error markers for portions that could not be summarized; work with the information that is present.

Combine them into a single unified summary of the whole recording.

Respond with a JSON object with exactly these keys:
{
  "executiveSummary": "2-3 sentence high-level overview",
  "keyPoints": "bullet list of the most important facts, decisions, and action items, one per line prefixed with '- '",
  "detailedSummary": "thorough narrative summary preserving specifics"
}

Chunk summaries:
%s`

// buildConsolidationPrompt renders the reduce-stage prompt from ordered chunk
// summaries. Failed chunks contribute their failure-marker text, so the model
// sees the gap explicitly.
func buildConsolidationPrompt(summaries []*core.ChunkSummary) string {
	var sb strings.Builder
	for i, summary := range summaries {
		fmt.Fprintf(&sb, "%s:\n%s\n\n", core.ChunkKey(i+1), summary.Text)
	}
	return fmt.Sprintf(consolidationPromptTemplate, strings.TrimSpace(sb.String()))
}
