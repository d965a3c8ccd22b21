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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the OpenAI-compatible API.
	// Example: "https://api.openai.com/v1", or
	// "http://localhost:11434/v1" for a local server
	Host string

	// APIKey is the bearer token for the API.
	// Use "none" for local OpenAI-compatible services that don't require
	// authentication.
	APIKey string

	// ChatModel is the model identifier for chat completions.
	// Example: "gpt-4o-mini", "qwen2.5:3b"
	ChatModel string

	// WhisperModel is the model identifier for speech-to-text.
	// Example: "whisper-1"
	WhisperModel string

	// CallTimeout bounds each individual provider call.
	// Default: 60s
	CallTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the API host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the API bearer token.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithChatModel sets the chat-completion model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// WithWhisperModel sets the speech-to-text model identifier.
func WithWhisperModel(model string) ConfigOption {
	return func(c *Config) {
		c.WhisperModel = model
	}
}

// WithCallTimeout sets the per-call timeout.
func WithCallTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.CallTimeout = timeout
	}
}

// DefaultConfig returns a Config with sensible defaults for the OpenAI API.
func DefaultConfig() *Config {
	return &Config{
		Host:         "https://api.openai.com/v1",
		APIKey:       "none",
		ChatModel:    "gpt-4o-mini",
		WhisperModel: "whisper-1",
		CallTimeout:  60 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom
// settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithChatModel("qwen2.5:3b"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM).
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(c.Host, "/")
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required")
	}
	if c.ChatModel == "" {
		return errors.New("ai config: ChatModel is required")
	}
	if c.WhisperModel == "" {
		return errors.New("ai config: WhisperModel is required")
	}
	if c.CallTimeout <= 0 {
		return errors.New("ai config: CallTimeout must be positive")
	}
	return nil
}
