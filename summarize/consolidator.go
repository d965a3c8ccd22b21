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
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/core"
)

// consolidationTemperature is the sampling temperature for the reduce call.
// Low because the output must track the chunk summaries, not embellish them.
const consolidationTemperature = 0.1

// Consolidator runs the reduce stage: one model call that merges all chunk
// summaries into a ConsolidatedSummary. Consolidation never fails the
// pipeline; when the model call or its JSON response is unusable, a degraded
// summary is derived locally instead.
type Consolidator struct {
	chat        ai.ChatModel
	callTimeout time.Duration
	logger      *slog.Logger
}

// ConsolidatorOption configures a Consolidator.
type ConsolidatorOption func(*Consolidator)

// WithConsolidatorTimeout sets the reduce-stage model call timeout.
// Default is DefaultCallTimeout.
func WithConsolidatorTimeout(timeout time.Duration) ConsolidatorOption {
	return func(c *Consolidator) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithConsolidatorLogger sets a custom logger.
// Default is slog.Default().
func WithConsolidatorLogger(logger *slog.Logger) ConsolidatorOption {
	return func(c *Consolidator) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewConsolidator creates a reduce-stage consolidator backed by the given
// chat model.
func NewConsolidator(chat ai.ChatModel, opts ...ConsolidatorOption) (*Consolidator, error) {
	if chat == nil {
		return nil, ErrChatModelRequired
	}

	c := &Consolidator{
		chat:        chat,
		callTimeout: DefaultCallTimeout,
		logger:      slog.Default().With("component", "consolidator"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Consolidate merges ordered chunk summaries into a single consolidated
// summary. The result always has all three fields populated: a parse failure
// degrades to a locally derived summary, and a call failure degrades to error
// text in all three fields.
func (c *Consolidator) Consolidate(ctx context.Context, summaries []*core.ChunkSummary) core.ConsolidatedSummary {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	raw, err := c.chat.Complete(callCtx, ai.CompletionRequest{
		System:      systemPrompt,
		Prompt:      buildConsolidationPrompt(summaries),
		Temperature: consolidationTemperature,
		MaxTokens:   maxCompletionTokens,
		JSONMode:    true,
	})
	if err != nil {
		c.logger.Error("consolidation call failed", "err", err)
		text := fmt.Sprintf("Error generating consolidated summary: %s", err)
		return core.ConsolidatedSummary{
			ExecutiveSummary: text,
			KeyPoints:        text,
			DetailedSummary:  text,
		}
	}

	if consolidated, ok := parseConsolidated(raw); ok {
		return consolidated
	}

	c.logger.Warn("consolidation response not parseable, using fallback",
		"responseLen", len(raw))
	return fallbackConsolidated(raw)
}
