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


package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/artifact"
	"github.com/poiesic/voicenote/chunking"
	"github.com/poiesic/voicenote/core"
	"github.com/poiesic/voicenote/storage"
	"github.com/poiesic/voicenote/summarize"
)

// Pipeline orchestrates the summarization of a recording's transcript:
// chunking, fanned-out chunk summaries, consolidation, and persistence.
//
// Process never returns a raw error to its caller. Every run ends in a
// core.Result carrying one of the three graduated statuses and a
// human-readable message; failures are additionally reflected on the
// recording's lifecycle status.
type Pipeline struct {
	recordings     storage.RecordingStore
	transcriptions storage.TranscriptionStore
	artifacts      *artifact.Store
	transcriber    ai.Transcriber
	chunker        *chunking.Chunker
	summarizer     *summarize.Summarizer
	consolidator   *summarize.Consolidator
	logger         *slog.Logger

	poolSize    int
	callTimeout time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent chunk summaries.
// Default is the summarizer's default (half the CPUs, minimum 1).
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		p.poolSize = size
		return nil
	}
}

// WithChunker sets a custom chunker.
// Default is a chunker with default parameters.
func WithChunker(chunker *chunking.Chunker) Option {
	return func(p *Pipeline) error {
		if chunker != nil {
			p.chunker = chunker
		}
		return nil
	}
}

// WithCallTimeout sets the per-call model timeout for both stages.
// Default is summarize.DefaultCallTimeout.
func WithCallTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout > 0 {
			p.callTimeout = timeout
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a summarization pipeline over the given stores and AI
// provider.
func NewPipeline(
	recordings storage.RecordingStore,
	transcriptions storage.TranscriptionStore,
	artifacts *artifact.Store,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if recordings == nil {
		return nil, ErrRecordingStoreRequired
	}
	if transcriptions == nil {
		return nil, ErrTranscriptionStoreRequired
	}
	if artifacts == nil {
		return nil, ErrArtifactStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		recordings:     recordings,
		transcriptions: transcriptions,
		artifacts:      artifacts,
		logger:         slog.Default().With("component", "pipeline"),
		callTimeout:    summarize.DefaultCallTimeout,
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.chunker == nil {
		chunker, err := chunking.New()
		if err != nil {
			return nil, err
		}
		p.chunker = chunker
	}

	summarizerOpts := []summarize.SummarizerOption{
		summarize.WithCallTimeout(p.callTimeout),
		summarize.WithSummarizerLogger(p.logger),
	}
	if p.poolSize > 0 {
		summarizerOpts = append(summarizerOpts, summarize.WithPoolSize(p.poolSize))
	}

	summarizer, err := summarize.NewSummarizer(provider.ChatModel(), summarizerOpts...)
	if err != nil {
		return nil, err
	}

	consolidator, err := summarize.NewConsolidator(provider.ChatModel(),
		summarize.WithConsolidatorTimeout(p.callTimeout),
		summarize.WithConsolidatorLogger(p.logger))
	if err != nil {
		summarizer.Release()
		return nil, err
	}

	p.transcriber = provider.Transcriber()
	p.summarizer = summarizer
	p.consolidator = consolidator
	return p, nil
}

// Process runs the full summarization pipeline for one recording.
//
// A recording already in the summarized state short-circuits: its persisted
// unified summary is returned without any model calls. Otherwise the
// transcript is chunked, each chunk is summarized concurrently, the chunk
// summaries are consolidated, and the unified summary is made durable before
// the recording is marked summarized.
func (p *Pipeline) Process(ctx context.Context, recordingID core.ID) *core.Result {
	recording, err := p.recordings.GetRecording(ctx, recordingID)
	if err != nil {
		return p.errorResult(ctx, recordingID, false, fmt.Sprintf("recording not found: %s", recordingID))
	}

	if recording.Status == core.StatusSummarized {
		if result := p.existingResult(ctx, recordingID); result != nil {
			return result
		}
		// Marked summarized but the summary is gone. Rebuild it.
		p.logger.Warn("summarized recording has no readable summary, reprocessing",
			"recordingId", recordingID)
	}

	if err := p.recordings.SetRecordingStatus(ctx, recordingID, core.StatusProcessing, ""); err != nil {
		return p.errorResult(ctx, recordingID, false, fmt.Sprintf("failed to mark recording processing: %s", err))
	}

	transcription, err := p.transcriptions.CurrentTranscription(ctx, recordingID)
	if err != nil {
		// No transcription yet. Produce one from the stored audio when there
		// is any; a recording with neither is unprocessable.
		transcription, err = p.transcribe(ctx, recording)
		if err != nil {
			return p.errorResult(ctx, recordingID, true, fmt.Sprintf("recording has no transcription: %s", err))
		}
	}

	transcript, err := p.artifacts.GetTranscript(ctx, transcription.TextPath)
	if err != nil {
		return p.errorResult(ctx, recordingID, true, fmt.Sprintf("failed to load transcript: %s", err))
	}

	pieces, err := p.chunker.Chunk(transcript)
	if err != nil {
		return p.errorResult(ctx, recordingID, true, fmt.Sprintf("failed to chunk transcript: %s", err))
	}
	if len(pieces) == 0 {
		return p.errorResult(ctx, recordingID, true, "transcript is empty, nothing to summarize")
	}

	now := time.Now().UTC()
	chunks := make([]*core.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = core.NewChunk(recordingID, transcription.ID, i+1, len(pieces), piece, now)
	}

	for _, chunk := range chunks {
		if _, err := p.artifacts.PutChunk(ctx, chunk, recording.UserID); err != nil {
			return p.errorResult(ctx, recordingID, true, fmt.Sprintf("failed to persist chunk %d: %s", chunk.Position, err))
		}
	}

	p.logger.Info("summarizing recording",
		"recordingId", recordingID,
		"transcriptionId", transcription.ID,
		"chunks", len(chunks))

	summaries := p.summarizer.SummarizeChunks(ctx, chunks)

	successful := 0
	for _, summary := range summaries {
		if !summary.Failed {
			successful++
		}
	}
	if successful == 0 {
		return p.errorResult(ctx, recordingID, true, "all chunk summaries failed")
	}

	consolidated := p.consolidator.Consolidate(ctx, summaries)

	unified := core.NewUnifiedSummary(recordingID, summaries, consolidated, time.Now().UTC())
	path, err := p.artifacts.PutUnifiedSummary(ctx, unified)
	if err != nil {
		return p.errorResult(ctx, recordingID, true, fmt.Sprintf("failed to persist unified summary: %s", err))
	}

	if err := p.recordings.SetRecordingStatus(ctx, recordingID, core.StatusSummarized, ""); err != nil {
		return p.errorResult(ctx, recordingID, false, fmt.Sprintf("failed to mark recording summarized: %s", err))
	}

	status := core.StatusFor(successful, len(summaries))
	message := fmt.Sprintf("summarized %d of %d chunks", successful, len(summaries))
	if status == core.PipelineSuccess {
		message = fmt.Sprintf("summarized %d chunks", len(summaries))
	}

	p.logger.Info("recording summarized",
		"recordingId", recordingID,
		"status", status,
		"successful", successful,
		"total", len(summaries))

	return &core.Result{
		Status:         status,
		RecordingID:    recordingID,
		Message:        message,
		UnifiedSummary: unified,
		SummaryID:      unified.SummaryID,
		SummaryPath:    path,
	}
}

// transcribe produces and stores a transcription from a recording's audio.
func (p *Pipeline) transcribe(ctx context.Context, recording *core.Recording) (*core.Transcription, error) {
	if recording.AudioPath == "" {
		return nil, fmt.Errorf("no stored audio")
	}

	audio, err := p.artifacts.GetAudio(ctx, recording.AudioPath)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	text, err := p.transcriber.Transcribe(callCtx, audio, filepath.Base(recording.AudioPath))
	if err != nil {
		return nil, err
	}

	transcription := &core.Transcription{
		ID:          core.NewID(),
		RecordingID: recording.ID,
		UserID:      recording.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	transcription.TextPath, err = p.artifacts.PutTranscription(ctx, recording.ID, transcription.ID, text)
	if err != nil {
		return nil, err
	}
	if err := p.transcriptions.AddTranscription(ctx, transcription); err != nil {
		return nil, err
	}

	p.logger.Info("transcribed recording",
		"recordingId", recording.ID,
		"transcriptionId", transcription.ID,
		"chars", len(text))
	return transcription, nil
}

// existingResult loads the persisted summary of an already summarized
// recording. Returns nil if the summary cannot be read.
func (p *Pipeline) existingResult(ctx context.Context, recordingID core.ID) *core.Result {
	unified, err := p.artifacts.UnifiedSummaryByRecording(ctx, recordingID)
	if err != nil {
		return nil
	}

	return &core.Result{
		Status:         core.StatusFor(unified.SuccessfulSummaries, unified.TotalChunks),
		RecordingID:    recordingID,
		Message:        "recording already summarized",
		UnifiedSummary: unified,
		SummaryID:      unified.SummaryID,
		SummaryPath:    storage.SummaryPath(unified.SummaryID),
	}
}

// errorResult builds the error outcome for a run and, when markRecording is
// set, moves the recording into the error state with the same message.
func (p *Pipeline) errorResult(ctx context.Context, recordingID core.ID, markRecording bool, message string) *core.Result {
	p.logger.Error("pipeline run failed", "recordingId", recordingID, "message", message)

	if markRecording {
		if err := p.recordings.SetRecordingStatus(ctx, recordingID, core.StatusError, message); err != nil {
			p.logger.Error("failed to record error status", "recordingId", recordingID, "err", err)
		}
	}

	return &core.Result{
		Status:      core.PipelineError,
		RecordingID: recordingID,
		Message:     message,
	}
}

// Release releases the summarizer's worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.summarizer != nil {
		p.summarizer.Release()
	}
}
