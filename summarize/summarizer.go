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
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/core"
)

// chunkTemperature is the sampling temperature for map-stage calls.
const chunkTemperature = 0.3

// maxCompletionTokens bounds the length of each model response.
const maxCompletionTokens = 2000

// DefaultCallTimeout bounds each individual chunk-summary model call.
const DefaultCallTimeout = 60 * time.Second

// Summarizer runs the map stage: one model call per chunk, fanned out over a
// bounded worker pool. Chunk failures never abort the batch; each failed
// chunk yields an explicit failure-marker summary instead.
type Summarizer struct {
	chat        ai.ChatModel
	pool        *ants.Pool
	callTimeout time.Duration
	logger      *slog.Logger
}

// SummarizerOption configures a Summarizer.
type SummarizerOption func(*Summarizer) error

// WithPoolSize sets the worker pool size for concurrent chunk calls.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) SummarizerOption {
	return func(s *Summarizer) error {
		if size < 1 {
			size = 1
		}

		if s.pool != nil {
			s.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		s.pool = pool
		return nil
	}
}

// WithCallTimeout sets the per-chunk model call timeout.
// Default is DefaultCallTimeout.
func WithCallTimeout(timeout time.Duration) SummarizerOption {
	return func(s *Summarizer) error {
		if timeout > 0 {
			s.callTimeout = timeout
		}
		return nil
	}
}

// WithSummarizerLogger sets a custom logger.
// Default is slog.Default().
func WithSummarizerLogger(logger *slog.Logger) SummarizerOption {
	return func(s *Summarizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSummarizer creates a map-stage summarizer backed by the given chat model.
func NewSummarizer(chat ai.ChatModel, opts ...SummarizerOption) (*Summarizer, error) {
	if chat == nil {
		return nil, ErrChatModelRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Summarizer{
		chat:        chat,
		pool:        pool,
		callTimeout: DefaultCallTimeout,
		logger:      slog.Default().With("component", "summarizer"),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// SummarizeChunks produces exactly one ChunkSummary per input chunk, in the
// same order as the input. Calls run concurrently on the worker pool; each
// call gets its own timeout. A failed or empty model response becomes a
// failure-marker summary rather than an error.
func (s *Summarizer) SummarizeChunks(ctx context.Context, chunks []*core.Chunk) []*core.ChunkSummary {
	results := make([]*core.ChunkSummary, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		i, chunk := i, chunk
		if err := s.pool.Submit(func() {
			defer wg.Done()
			results[i] = s.summarizeChunk(ctx, chunk)
		}); err != nil {
			// Pool rejected the task (released or overloaded). Record the
			// failure inline so the slot is never nil.
			results[i] = core.FailedChunkSummary(chunk, err.Error())
			wg.Done()
		}
	}
	wg.Wait()

	return results
}

// summarizeChunk performs one map-stage model call.
func (s *Summarizer) summarizeChunk(ctx context.Context, chunk *core.Chunk) *core.ChunkSummary {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	text, err := s.chat.Complete(callCtx, ai.CompletionRequest{
		System:      systemPrompt,
		Prompt:      buildChunkPrompt(chunk),
		Temperature: chunkTemperature,
		MaxTokens:   maxCompletionTokens,
	})
	if err != nil {
		s.logger.Warn("chunk summary failed",
			"chunkId", chunk.ID,
			"position", chunk.Position,
			"err", err)
		return core.FailedChunkSummary(chunk, err.Error())
	}

	text = stripChunkEcho(text)
	if text == "" {
		s.logger.Warn("chunk summary empty",
			"chunkId", chunk.ID,
			"position", chunk.Position)
		return core.FailedChunkSummary(chunk, "model returned an empty summary")
	}

	return &core.ChunkSummary{
		ChunkID:     chunk.ID,
		RecordingID: chunk.RecordingID,
		Position:    chunk.Position,
		Text:        text,
	}
}

// stripChunkEcho removes a leading "ChunkID: ..." line if the model echoed
// the prompt header back despite instructions.
func stripChunkEcho(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "ChunkID:") {
		if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
			trimmed = strings.TrimSpace(trimmed[idx+1:])
		} else {
			trimmed = ""
		}
	}
	return trimmed
}

// Release releases the worker pool.
// The summarizer should not be used after calling Release.
func (s *Summarizer) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}
