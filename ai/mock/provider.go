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


package mock

import "github.com/poiesic/voicenote/ai"

// MockProvider is a test double for ai.Provider.
// It aggregates mock chat model and transcriber instances.
type MockProvider struct {
	chat        *MockChatModel
	transcriber *MockTranscriber
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockChatModel()/GetMockTranscriber() to access concrete types for
// test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		chat:        NewMockChatModel(),
		transcriber: NewMockTranscriber(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(chat *MockChatModel, transcriber *MockTranscriber) ai.Provider {
	return &MockProvider{
		chat:        chat,
		transcriber: transcriber,
	}
}

// ChatModel returns the mock chat model.
func (p *MockProvider) ChatModel() ai.ChatModel {
	return p.chat
}

// Transcriber returns the mock transcriber.
func (p *MockProvider) Transcriber() ai.Transcriber {
	return p.transcriber
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockChatModel returns the underlying mock chat model for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockChatModel() *MockChatModel {
	return p.chat
}

// GetMockTranscriber returns the underlying mock transcriber for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockTranscriber() *MockTranscriber {
	return p.transcriber
}
