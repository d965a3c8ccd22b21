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
	"encoding/json"
	"strings"

	"github.com/poiesic/voicenote/core"
)

// consolidatedPayload mirrors core.ConsolidatedSummary for unmarshaling, with
// a tolerant keyPoints field that accepts either a string or an array.
type consolidatedPayload struct {
	ExecutiveSummary string         `json:"executiveSummary"`
	KeyPoints        keyPointsField `json:"keyPoints"`
	DetailedSummary  string         `json:"detailedSummary"`
}

// keyPointsField unmarshals from either a JSON string or a JSON array of
// strings. Models drift between the two shapes.
type keyPointsField string

func (k *keyPointsField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*k = keyPointsField(s)
		return nil
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	for i, item := range items {
		item = strings.TrimSpace(item)
		if !strings.HasPrefix(item, "-") {
			item = "- " + item
		}
		items[i] = item
	}
	*k = keyPointsField(strings.Join(items, "\n"))
	return nil
}

// stripFences removes surrounding markdown code fences from a model response.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseConsolidated parses the reduce-stage model response into a
// ConsolidatedSummary. It tolerates code fences, common key-quoting mistakes,
// and key points delivered as an array. Returns false if the response is not
// parseable JSON or carries no content.
func parseConsolidated(raw string) (core.ConsolidatedSummary, bool) {
	text := stripFences(raw)
	if text == "" {
		return core.ConsolidatedSummary{}, false
	}

	text = repairJSON(text)

	var payload consolidatedPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return core.ConsolidatedSummary{}, false
	}

	out := core.ConsolidatedSummary{
		ExecutiveSummary: strings.TrimSpace(payload.ExecutiveSummary),
		KeyPoints:        strings.TrimSpace(string(payload.KeyPoints)),
		DetailedSummary:  strings.TrimSpace(payload.DetailedSummary),
	}
	if out.ExecutiveSummary == "" && out.KeyPoints == "" && out.DetailedSummary == "" {
		return core.ConsolidatedSummary{}, false
	}
	return out, true
}

// fallbackConsolidated derives a consolidated summary directly from the raw
// reduce-stage response when it could not be parsed as JSON. All three fields
// are populated so downstream consumers never see an empty consolidation.
func fallbackConsolidated(raw string) core.ConsolidatedSummary {
	text := stripFences(raw)
	if text == "" {
		text = "No consolidated summary could be generated."
	}

	executive := text
	if len(executive) > 300 {
		executive = executive[:300]
	}

	return core.ConsolidatedSummary{
		ExecutiveSummary: executive,
		KeyPoints:        "- " + firstLine(text),
		DetailedSummary:  text,
	}
}

// firstLine returns the first non-empty line of text.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return text
}

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects.
func repairJSON(s string) string {
	// Fix missing opening quote before keys
	// Pattern: after { or , followed by optional whitespace, then a word followed by ":
	// Example: `, keyPoints":` -> `, "keyPoints":`
	result := []rune(s)
	fixed := make([]rune, 0, len(result)+100)

	i := 0
	for i < len(result) {
		ch := result[i]

		// After { or , look for unquoted keys
		if ch == '{' || ch == ',' {
			fixed = append(fixed, ch)
			i++

			// Skip whitespace
			for i < len(result) && (result[i] == ' ' || result[i] == '\n' || result[i] == '\t') {
				fixed = append(fixed, result[i])
				i++
			}

			// Check if we have an unquoted key (starts with letter, not with quote)
			if i < len(result) && result[i] != '"' && isLetter(result[i]) {
				keyStart := i
				// Find the end of the key name
				for i < len(result) && (isLetter(result[i]) || result[i] == '_' || result[i] == ' ') {
					i++
				}
				keyEnd := i

				// Check if this is followed by ": which indicates a missing opening quote
				if i+1 < len(result) && result[i] == '"' && result[i+1] == ':' {
					// Add opening quote, key, keep closing quote
					fixed = append(fixed, '"')
					for j := keyStart; j < keyEnd; j++ {
						if result[j] != ' ' || (j > keyStart && j < keyEnd-1) {
							fixed = append(fixed, result[j])
						}
					}
					// Don't add closing quote - it's already there at result[i]
					continue
				} else {
					// Not an unquoted key, just copy what we skipped
					for j := keyStart; j < i; j++ {
						fixed = append(fixed, result[j])
					}
				}
			}
		} else {
			fixed = append(fixed, ch)
			i++
		}
	}

	return string(fixed)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
