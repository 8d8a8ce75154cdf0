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
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/conceptmap"
	"github.com/poiesic/conceptmap/ai"
	"github.com/poiesic/conceptmap/pipeline"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "conceptmap",
		Usage: "Generate hierarchical concept maps from raw text",
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
				Name:   "generate",
				Usage:  "Generate a concept map from text and print it as JSON",
				Action: generateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "text",
						Aliases: []string{"t"},
						Usage:   "Input text (reads stdin when neither --text nor --file is given)",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read input text from a file",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the JSON document to a file instead of stdout",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL for all services",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (overrides --host)",
					},
					&cli.StringFlag{
						Name:  "inference-host",
						Usage: "Inference service host URL (overrides --host)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "inference-model",
						Usage: "Inference model name for labeling, summarization and NER",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "embedding-dim",
						Usage: "Embedding vector dimension",
						Value: 384,
					},
					&cli.StringSliceFlag{
						Name:  "labels",
						Usage: "Candidate label vocabulary (repeatable; default is a general-purpose topic list)",
					},
					&cli.StringFlag{
						Name:  "root",
						Usage: "Title of the document root node",
						Value: "Mind Map",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Maximum simultaneous AI calls",
						Value: 4,
					},
					&cli.DurationFlag{
						Name:  "call-timeout",
						Usage: "Timeout for each individual AI call",
						Value: 10 * time.Second,
					},
					&cli.DurationFlag{
						Name:  "deadline",
						Usage: "Overall run deadline; the run completes degraded when it passes",
						Value: 2 * time.Minute,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Clustering seed",
						Value: 42,
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Indent the JSON output",
					},
				},
			},
			{
				Name:   "status",
				Usage:  "Print the resolved AI service configuration",
				Action: statusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "OpenAI-compatible service host URL for all services",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (overrides --host)",
					},
					&cli.StringFlag{
						Name:  "inference-host",
						Usage: "Inference service host URL (overrides --host)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.StringFlag{
						Name:  "inference-model",
						Usage: "Inference model name",
						Value: "qwen2.5:3b",
					},
					&cli.IntFlag{
						Name:  "embedding-dim",
						Usage: "Embedding vector dimension",
						Value: 384,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generateCommand(c *cli.Context) error {
	ctx := context.Background()

	text, err := readInput(c)
	if err != nil {
		return err
	}

	aiConfig := buildAIConfig(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	labels := pipeline.DefaultCandidateLabels
	if given := c.StringSlice("labels"); len(given) > 0 {
		labels = given
	}

	generator, err := conceptmap.NewGenerator(
		conceptmap.WithAIConfig(aiConfig),
		conceptmap.WithPipelineOptions(
			pipeline.WithCandidateLabels(labels),
			pipeline.WithRootTitle(c.String("root")),
			pipeline.WithConcurrency(c.Int("concurrency")),
			pipeline.WithCallTimeout(c.Duration("call-timeout")),
			pipeline.WithDeadline(c.Duration("deadline")),
			pipeline.WithSeed(c.Int64("seed")),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}
	defer generator.Close()

	doc, err := generator.Generate(ctx, text)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	var data []byte
	if c.Bool("pretty") {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	data = append(data, '\n')

	if out := c.String("output"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		return nil
	}

	_, err = os.Stdout.Write(data)
	return err
}

func statusCommand(c *cli.Context) error {
	aiConfig := buildAIConfig(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	fmt.Printf("Embedding host:  %s\n", aiConfig.EmbeddingHost)
	fmt.Printf("Embedding model: %s (dim %d)\n", aiConfig.EmbeddingModel, aiConfig.EmbeddingDim)
	fmt.Printf("Inference host:  %s\n", aiConfig.InferenceHost)
	fmt.Printf("Inference model: %s\n", aiConfig.InferenceModel)
	return nil
}

func buildAIConfig(c *cli.Context) *ai.Config {
	opts := []ai.ConfigOption{
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithInferenceModel(c.String("inference-model")),
		ai.WithEmbeddingDim(c.Int("embedding-dim")),
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("inference-host"); host != "" {
		opts = append(opts, ai.WithInferenceHost(host))
	}
	return ai.NewConfig(opts...)
}

// readInput resolves the input text from --text, --file, or stdin, in that
// order of preference.
func readInput(c *cli.Context) (string, error) {
	if text := c.String("text"); text != "" {
		return text, nil
	}
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("no input text: pass --text, --file, or pipe text on stdin")
	}
	return string(data), nil
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
