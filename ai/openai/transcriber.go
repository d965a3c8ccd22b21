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


package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/poiesic/voicenote/ai"
)

// Transcriber implements ai.Transcriber against the audio/transcriptions
// endpoint of an OpenAI-compatible API.
//
// langchaingo has no speech-to-text surface, so this client speaks the
// multipart protocol directly.
type Transcriber struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
	logger   *slog.Logger
}

// transcriptionResponse matches the JSON body returned by the endpoint.
type transcriptionResponse struct {
	Text string `json:"text"`
}

// newTranscriber is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTranscriber(config *ai.Config) (*Transcriber, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Transcriber{
		endpoint: config.Host + "/audio/transcriptions",
		apiKey:   config.APIKey,
		model:    config.WhisperModel,
		client:   &http.Client{Timeout: config.CallTimeout},
		logger:   slog.Default().With("component", "openai-transcriber"),
	}, nil
}

// NewTranscriber creates a speech-to-text service using the provided
// configuration.
//
// Returns ai.Transcriber interface to enforce abstraction.
func NewTranscriber(config *ai.Config) (ai.Transcriber, error) {
	return newTranscriber(config)
}

// Transcribe submits audio bytes as a multipart upload and returns the
// transcript text.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", t.model); err != nil {
		return "", err
	}

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Error("transcription request failed", "err", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		t.logger.Error("transcription request rejected",
			"status", resp.StatusCode,
			"body", string(b))
		return "", fmt.Errorf("transcription http %d: %s", resp.StatusCode, string(b))
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}

	text := strings.TrimSpace(tr.Text)
	if text == "" {
		return "", ai.ErrEmptyTranscript
	}
	return text, nil
}
