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


package chunking

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// TokenCharRatio is the character budget assumed per token when converting
// token-denominated sizes into character counts for the splitter.
const TokenCharRatio = 4

// Default splitting parameters, in tokens.
const (
	DefaultChunkSize    = 2000
	DefaultChunkOverlap = 200
)

// defaultSeparators is the boundary preference order for the recursive
// splitter. Paragraph breaks first, then lines, then sentence punctuation,
// then clause and word boundaries.
var defaultSeparators = []string{"\n\n", "\n", ".", "!", "?", ",", " ", ""}

// Chunker splits normalized transcript text into overlapping chunks sized
// for language-model context windows.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	foldCase     bool
	splitter     textsplitter.RecursiveCharacter
	logger       *slog.Logger
}

// Option is a functional option for configuring a Chunker.
type Option func(*Chunker)

// WithChunkSize sets the target chunk size in tokens.
func WithChunkSize(tokens int) Option {
	return func(c *Chunker) {
		c.chunkSize = tokens
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks in tokens.
func WithChunkOverlap(tokens int) Option {
	return func(c *Chunker) {
		c.chunkOverlap = tokens
	}
}

// WithCaseFolding controls whether normalization lowercases the transcript.
// Folding is off by default so summaries keep proper nouns and acronyms
// intact; turn it on to reproduce the legacy lowercasing behavior.
func WithCaseFolding(fold bool) Option {
	return func(c *Chunker) {
		c.foldCase = fold
	}
}

// WithLogger sets the logger used by the chunker.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) {
		c.logger = logger
	}
}

// New creates a Chunker with the default parameters and applies the provided
// options.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		logger:       slog.Default().With("component", "chunker"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.chunkSize <= 0 {
		return nil, errors.New("chunker: chunk size must be positive")
	}
	if c.chunkOverlap < 0 {
		return nil, errors.New("chunker: chunk overlap cannot be negative")
	}
	if c.chunkOverlap >= c.chunkSize {
		return nil, errors.New("chunker: chunk overlap must be smaller than chunk size")
	}

	c.splitter = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(c.chunkSize*TokenCharRatio),
		textsplitter.WithChunkOverlap(c.chunkOverlap*TokenCharRatio),
		textsplitter.WithSeparators(defaultSeparators),
	)
	return c, nil
}

// ChunkSize returns the configured chunk size in tokens.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// ChunkOverlap returns the configured chunk overlap in tokens.
func (c *Chunker) ChunkOverlap() int {
	return c.chunkOverlap
}

// Normalize collapses runs of whitespace in text to single spaces and trims
// the ends. When foldCase is set the text is also lowercased.
func Normalize(text string, foldCase bool) string {
	if foldCase {
		text = strings.ToLower(text)
	}
	return strings.Join(strings.Fields(text), " ")
}

// EstimateTokens returns the approximate token count of text under the
// TokenCharRatio assumption.
func EstimateTokens(text string) int {
	return (len(text) + TokenCharRatio - 1) / TokenCharRatio
}

// Chunk normalizes text and splits it into ordered, overlapping chunks.
// An empty or whitespace-only transcript yields zero chunks. Any non-empty
// normalized transcript yields at least one chunk, and splitting the same
// text twice yields identical chunks.
func (c *Chunker) Chunk(text string) ([]string, error) {
	normalized := Normalize(text, c.foldCase)
	if normalized == "" {
		c.logger.Debug("empty transcript, nothing to chunk")
		return nil, nil
	}

	chunks, err := c.splitter.SplitText(normalized)
	if err != nil {
		return nil, err
	}

	// The splitter can emit fragments that trim to nothing. Chunk positions
	// must stay dense, so those are dropped here.
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk != "" {
			out = append(out, chunk)
		}
	}
	if len(out) == 0 {
		out = append(out, normalized)
	}

	c.logger.Debug("split transcript",
		"chars", len(normalized),
		"estTokens", EstimateTokens(normalized),
		"chunks", len(out))
	return out, nil
}
