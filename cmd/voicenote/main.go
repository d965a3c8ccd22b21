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


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/voicenote"
	"github.com/poiesic/voicenote/ai"
	"github.com/poiesic/voicenote/chunking"
	"github.com/poiesic/voicenote/core"
	"github.com/poiesic/voicenote/pipeline"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "voicenote",
		Usage: "Voice note transcription and summarization",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add an audio recording",
				ArgsUsage: "<audio-file>",
				Action:    addCommand,
				Flags: append(serviceFlags(),
					&cli.StringFlag{
						Name:  "user",
						Usage: "User ID owning the recording",
						Value: "local",
					},
				),
			},
			{
				Name:      "add-transcript",
				Usage:     "Attach a transcript file to a recording",
				ArgsUsage: "<recording-id> <transcript-file>",
				Action:    addTranscriptCommand,
				Flags:     serviceFlags(),
			},
			{
				Name:      "transcribe",
				Usage:     "Transcribe a recording's stored audio",
				ArgsUsage: "<recording-id>",
				Action:    transcribeCommand,
				Flags:     serviceFlags(),
			},
			{
				Name:      "process",
				Usage:     "Summarize a recording's transcript",
				ArgsUsage: "<recording-id>",
				Action:    processCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Concurrent chunk summary calls",
					},
					&cli.IntFlag{
						Name:  "chunk-size",
						Usage: "Target chunk size in tokens",
						Value: chunking.DefaultChunkSize,
					},
					&cli.IntFlag{
						Name:  "chunk-overlap",
						Usage: "Overlap between adjacent chunks in tokens",
						Value: chunking.DefaultChunkOverlap,
					},
				),
			},
			{
				Name:      "show",
				Usage:     "Show a recording and its unified summary",
				ArgsUsage: "<recording-id>",
				Action:    showCommand,
				Flags:     serviceFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// serviceFlags are the flags shared by every command that opens the service.
func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "ai-host",
			Usage: "OpenAI-compatible service host URL",
			Value: "https://api.openai.com/v1",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI service",
			EnvVars: []string{"VOICENOTE_API_KEY"},
			Value:   "none",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model for summarization",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:  "whisper-model",
			Usage: "Speech-to-text model",
			Value: "whisper-1",
		},
		&cli.DurationFlag{
			Name:  "call-timeout",
			Usage: "Timeout for each model call",
			Value: 60 * time.Second,
		},
	}
}

// openService builds the service from command flags.
func openService(c *cli.Context, extra ...voicenote.ServiceOption) (*voicenote.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithWhisperModel(c.String("whisper-model")),
		ai.WithCallTimeout(c.Duration("call-timeout")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := append([]voicenote.ServiceOption{voicenote.WithAIConfig(aiConfig)}, extra...)
	return voicenote.NewService(c.String("db"), opts...)
}

func addCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one audio file argument")
	}
	audioPath := c.Args().First()

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return fmt.Errorf("failed to read audio file: %w", err)
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	recording, err := svc.AddRecording(context.Background(), core.ID(c.String("user")), audio, filepath.Base(audioPath))
	if err != nil {
		return fmt.Errorf("failed to add recording: %w", err)
	}

	fmt.Printf("recording %s added (%d bytes)\n", recording.ID, len(audio))
	return nil
}

func addTranscriptCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected recording ID and transcript file arguments")
	}
	recordingID := core.ID(c.Args().Get(0))

	text, err := os.ReadFile(c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("failed to read transcript file: %w", err)
	}

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	transcription, err := svc.AddTranscript(context.Background(), recordingID, string(text))
	if err != nil {
		return fmt.Errorf("failed to add transcript: %w", err)
	}

	fmt.Printf("transcription %s attached to recording %s\n", transcription.ID, recordingID)
	return nil
}

func transcribeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one recording ID argument")
	}
	recordingID := core.ID(c.Args().First())

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	transcription, err := svc.Transcribe(context.Background(), recordingID)
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	text, err := svc.Transcript(context.Background(), recordingID)
	if err != nil {
		return err
	}

	fmt.Printf("transcription %s created\n\n%s\n", transcription.ID, text)
	return nil
}

func processCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one recording ID argument")
	}
	recordingID := core.ID(c.Args().First())

	chunker, err := chunking.New(
		chunking.WithChunkSize(c.Int("chunk-size")),
		chunking.WithChunkOverlap(c.Int("chunk-overlap")),
	)
	if err != nil {
		return err
	}

	extra := []voicenote.ServiceOption{
		voicenote.WithPipelineOptions(pipeline.WithChunker(chunker)),
	}
	if poolSize := c.Int("pool-size"); poolSize > 0 {
		extra = append(extra, voicenote.WithPipelineOptions(pipeline.WithPoolSize(poolSize)))
	}

	svc, err := openService(c, extra...)
	if err != nil {
		return err
	}
	defer svc.Close()

	result := svc.Process(context.Background(), recordingID)

	fmt.Printf("status:  %s\n", result.Status)
	fmt.Printf("message: %s\n", result.Message)
	if result.Status == core.PipelineError {
		os.Exit(1)
	}

	fmt.Printf("summary: %s (%s)\n", result.SummaryID, result.SummaryPath)
	fmt.Printf("\n%s\n", result.UnifiedSummary.Consolidated.ExecutiveSummary)
	return nil
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one recording ID argument")
	}
	recordingID := core.ID(c.Args().First())

	svc, err := openService(c)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := context.Background()

	recording, err := svc.Recording(ctx, recordingID)
	if err != nil {
		return fmt.Errorf("failed to load recording: %w", err)
	}

	fmt.Printf("recording: %s\n", recording.ID)
	fmt.Printf("status:    %s\n", recording.Status)
	if recording.StatusMessage != "" {
		fmt.Printf("message:   %s\n", recording.StatusMessage)
	}

	summary, err := svc.UnifiedSummary(ctx, recordingID)
	if err != nil {
		fmt.Println("no unified summary yet")
		return nil
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
