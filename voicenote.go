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


package voicenote

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/ai/openai"
	"github.com/poiesic/voicenote/artifact"
	"github.com/poiesic/voicenote/core"
	"github.com/poiesic/voicenote/pipeline"
	"github.com/poiesic/voicenote/storage"
	"github.com/poiesic/voicenote/storage/badger"
)

// ErrNoAudio indicates a transcription was requested for a recording that
// has no stored audio.
var ErrNoAudio = errors.New("recording has no stored audio")

// Service is the top-level entry point. It owns the storage backend, the AI
// provider, and a summarization pipeline, and exposes the recording
// lifecycle: capture, transcribe, summarize, retrieve.
type Service struct {
	stores    *badger.Stores
	artifacts *artifact.Store
	provider  ai.Provider
	pipeline  *pipeline.Pipeline
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig     *ai.Config
	provider     ai.Provider
	inMemory     bool
	pipelineOpts []pipeline.Option
}

// WithAIConfig sets the configuration used to build the OpenAI-compatible
// provider. Ignored when WithProvider is also given.
func WithAIConfig(config *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects a pre-built AI provider instead of constructing one
// from configuration. Used by tests to run against mocks.
func WithProvider(provider ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemory runs storage in memory instead of on disk.
func WithInMemory(inMemory bool) ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = inMemory
	}
}

// WithPipelineOptions passes options through to the summarization pipeline.
func WithPipelineOptions(opts ...pipeline.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// NewService opens storage at filePath and wires up the full service.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	stores, err := badger.OpenStores(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	artifacts, err := artifact.NewStore(stores.Blobs, stores.ChunkRows, stores.SummaryRows)
	if err != nil {
		stores.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			stores.Close()
			return nil, err
		}
	}

	p, err := pipeline.NewPipeline(stores.Recordings, stores.Transcriptions, artifacts, provider, options.pipelineOpts...)
	if err != nil {
		provider.Close()
		stores.Close()
		return nil, err
	}

	return &Service{
		stores:    stores,
		artifacts: artifacts,
		provider:  provider,
		pipeline:  p,
		logger:    slog.Default(),
	}, nil
}

// AddRecording stores uploaded audio and creates a recording for it in the
// recorded state.
func (s *Service) AddRecording(ctx context.Context, userID core.ID, audio []byte, filename string) (*core.Recording, error) {
	recording := &core.Recording{
		ID:     core.NewID(),
		UserID: userID,
		Status: core.StatusRecorded,
	}
	recording.AudioPath = storage.AudioPath(recording.ID, filename)

	if err := s.stores.Blobs.Put(ctx, recording.AudioPath, audio, "application/octet-stream"); err != nil {
		return nil, err
	}
	if err := s.stores.Recordings.AddRecording(ctx, recording); err != nil {
		return nil, err
	}

	s.logger.Info("recording added", "recordingId", recording.ID, "audioPath", recording.AudioPath)
	return recording, nil
}

// AddTranscript attaches transcript text to an existing recording without a
// speech-to-text call, for clients that transcribe on-device. Creates a new
// transcription that becomes the recording's current one and moves the
// recording to the transcribed state.
func (s *Service) AddTranscript(ctx context.Context, recordingID core.ID, text string) (*core.Transcription, error) {
	recording, err := s.stores.Recordings.GetRecording(ctx, recordingID)
	if err != nil {
		return nil, err
	}

	transcription := &core.Transcription{
		ID:          core.NewID(),
		RecordingID: recording.ID,
		UserID:      recording.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	path, err := s.artifacts.PutTranscription(ctx, recording.ID, transcription.ID, text)
	if err != nil {
		return nil, err
	}
	transcription.TextPath = path

	if err := s.stores.Transcriptions.AddTranscription(ctx, transcription); err != nil {
		return nil, err
	}
	if err := s.stores.Recordings.SetRecordingStatus(ctx, recording.ID, core.StatusTranscribed, ""); err != nil {
		return nil, err
	}

	s.logger.Info("transcript added", "recordingId", recording.ID, "transcriptionId", transcription.ID)
	return transcription, nil
}

// Transcribe runs speech-to-text over a recording's stored audio and attaches
// the resulting transcript. Returns ErrNoAudio for recordings created
// directly from a transcript.
func (s *Service) Transcribe(ctx context.Context, recordingID core.ID) (*core.Transcription, error) {
	recording, err := s.stores.Recordings.GetRecording(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	if recording.AudioPath == "" {
		return nil, ErrNoAudio
	}

	audio, err := s.stores.Blobs.Get(ctx, recording.AudioPath)
	if err != nil {
		return nil, err
	}

	text, err := s.provider.Transcriber().Transcribe(ctx, audio, filenameOf(recording.AudioPath))
	if err != nil {
		if statusErr := s.stores.Recordings.SetRecordingStatus(ctx, recordingID, core.StatusError, err.Error()); statusErr != nil {
			s.logger.Error("failed to record error status", "recordingId", recordingID, "err", statusErr)
		}
		return nil, err
	}

	return s.AddTranscript(ctx, recordingID, text)
}

// Process runs the summarization pipeline for a recording.
func (s *Service) Process(ctx context.Context, recordingID core.ID) *core.Result {
	return s.pipeline.Process(ctx, recordingID)
}

// Recording retrieves a recording by ID.
func (s *Service) Recording(ctx context.Context, recordingID core.ID) (*core.Recording, error) {
	return s.stores.Recordings.GetRecording(ctx, recordingID)
}

// UnifiedSummary retrieves the current unified summary of a recording.
// Returns storage.ErrNotFound if the recording has not been summarized.
func (s *Service) UnifiedSummary(ctx context.Context, recordingID core.ID) (*core.UnifiedSummary, error) {
	return s.artifacts.UnifiedSummaryByRecording(ctx, recordingID)
}

// Transcript retrieves the text of a recording's current transcription.
func (s *Service) Transcript(ctx context.Context, recordingID core.ID) (string, error) {
	transcription, err := s.stores.Transcriptions.CurrentTranscription(ctx, recordingID)
	if err != nil {
		return "", err
	}
	return s.artifacts.GetTranscript(ctx, transcription.TextPath)
}

// Close releases the pipeline, the AI provider, and the storage backend.
func (s *Service) Close() error {
	s.pipeline.Release()

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.stores.Close(); err != nil {
		s.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

// filenameOf returns the final path segment of a blob path.
func filenameOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
