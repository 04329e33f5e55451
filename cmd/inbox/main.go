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
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/projectinbox"
	"github.com/poiesic/projectinbox/ai"
	"github.com/poiesic/projectinbox/assistant"
	"github.com/poiesic/projectinbox/core"
	"github.com/poiesic/projectinbox/reembed"
	"github.com/urfave/cli/v2"
)

// openInbox builds the Inbox for a command. Replaced in tests.
var openInbox = func(c *cli.Context) (*projectinbox.Inbox, error) {
	metric, err := core.ParseMetric(c.String("metric"))
	if err != nil {
		return nil, err
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingToken(c.String("embedding-token")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithEmbeddingDimension(c.Int("embedding-dimension")),
		ai.WithGenerationHost(c.String("generation-host")),
		ai.WithGenerationToken(c.String("generation-token")),
		ai.WithGenerationModel(c.String("generation-model")),
		ai.WithTemperature(c.Float64("temperature")),
	)

	return projectinbox.New(c.String("db"),
		projectinbox.WithAIConfig(aiConfig),
		projectinbox.WithIndexName(c.String("index")),
		projectinbox.WithMetric(metric),
	)
}

func main() {
	// Load .env before flags read their EnvVars
	_ = godotenv.Load()

	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	defaults := ai.DefaultConfig()

	return &cli.App{
		Name:      "inbox",
		Usage:     "Project knowledge assistant for status updates, questions and email drafts",
		Reader:    in,
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./inbox_db",
				EnvVars: []string{"INBOX_DB"},
			},
			&cli.StringFlag{
				Name:    "index",
				Usage:   "Vector index name",
				Value:   projectinbox.DefaultIndexName,
				EnvVars: []string{"INBOX_INDEX"},
			},
			&cli.StringFlag{
				Name:  "metric",
				Usage: "Similarity metric used when the index is created (cosine, dotproduct, euclidean)",
				Value: core.MetricCosine.String(),
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				Value:   defaults.EmbeddingHost,
				EnvVars: []string{"EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-token",
				Usage:   "Embedding service API key",
				EnvVars: []string{ai.EnvEmbeddingToken},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   defaults.EmbeddingModel,
				EnvVars: []string{"EMBEDDING_MODEL"},
			},
			&cli.IntFlag{
				Name:    "embedding-dimension",
				Usage:   "Length of vectors produced by the embedding model",
				Value:   defaults.EmbeddingDimension,
				EnvVars: []string{"EMBEDDING_DIMENSION"},
			},
			&cli.StringFlag{
				Name:    "generation-host",
				Usage:   "Chat-completion service host URL",
				Value:   defaults.GenerationHost,
				EnvVars: []string{"GENERATION_HOST"},
			},
			&cli.StringFlag{
				Name:    "generation-token",
				Usage:   "Chat-completion service API key",
				EnvVars: []string{ai.EnvGenerationToken},
			},
			&cli.StringFlag{
				Name:    "generation-model",
				Usage:   "Chat-completion model name",
				Value:   defaults.GenerationModel,
				EnvVars: []string{"GENERATION_MODEL"},
			},
			&cli.Float64Flag{
				Name:  "temperature",
				Usage: "Sampling temperature for generation calls",
				Value: defaults.Temperature,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Embed project rows from a JSON file and upsert them into the index",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to JSON array of project rows",
						Required: true,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Handle a single update, question or email",
				ArgsUsage: "<text>",
				Action:    askCommand,
				Flags:     interactionFlags(),
			},
			{
				Name:   "interactive",
				Usage:  "Read inputs from the terminal until EOF or \"exit\"",
				Action: interactiveCommand,
				Flags:  interactionFlags(),
			},
			{
				Name:   "reembed",
				Usage:  "Recompute vectors of records embedded with another model",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: reembed.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-embed records whose vectors are already current",
					},
				},
			},
		},
	}
}

func interactionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "project",
			Aliases: []string{"p"},
			Usage:   "Project ID (required for updates)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Abort an interaction after this long (0 waits indefinitely)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Show the classified intent",
		},
	}
}

func ingestCommand(c *cli.Context) error {
	inbox, err := openInbox(c)
	if err != nil {
		return fmt.Errorf("failed to open inbox: %w", err)
	}
	defer inbox.Close()

	report, err := inbox.IngestFile(c.Context, c.String("file"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	out := c.App.Writer
	if report.IndexCreated {
		fmt.Fprintf(out, "Created index %s\n", report.Index)
	}
	fmt.Fprintf(out, "Ingested %d of %d rows into %s", report.Upserted, report.Rows, report.Index)
	if report.Duplicates > 0 {
		fmt.Fprintf(out, " (%d duplicate project ids replaced)", report.Duplicates)
	}
	fmt.Fprintln(out)
	return nil
}

func askCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")

	inbox, err := openInbox(c)
	if err != nil {
		return fmt.Errorf("failed to open inbox: %w", err)
	}
	defer inbox.Close()

	interact(c, inbox, assistant.Request{Input: text, ProjectID: c.String("project")})
	return nil
}

func interactiveCommand(c *cli.Context) error {
	inbox, err := openInbox(c)
	if err != nil {
		return fmt.Errorf("failed to open inbox: %w", err)
	}
	defer inbox.Close()

	out := c.App.Writer
	scanner := bufio.NewScanner(c.App.Reader)
	defaultProject := c.String("project")

	fmt.Fprintln(out, "AI Project Inbox. End each message with an empty line; type \"exit\" to quit.")
	for {
		fmt.Fprint(out, "\nEnter update, query, or email: ")
		input, ok := readMessage(scanner)
		if !ok {
			break
		}
		if cmd := strings.TrimSpace(input); cmd == "exit" || cmd == "quit" {
			break
		}

		fmt.Fprint(out, "Project ID (optional): ")
		projectID := defaultProject
		if scanner.Scan() {
			if id := strings.TrimSpace(scanner.Text()); id != "" {
				projectID = id
			}
		}

		interact(c, inbox, assistant.Request{Input: input, ProjectID: projectID})
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

// readMessage reads lines up to the first empty line and joins them with
// newlines, so pasted emails arrive whole. An empty first line yields an
// empty message. ok is false at end of input with nothing read.
func readMessage(scanner *bufio.Scanner) (message string, ok bool) {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
		if len(lines) == 1 {
			if cmd := strings.TrimSpace(line); cmd == "exit" || cmd == "quit" {
				return line, true
			}
		}
	}
	return strings.Join(lines, "\n"), len(lines) > 0
}

// interact runs one request and renders the outcome. Interaction errors are
// shown as banners and never end the command.
func interact(c *cli.Context, inbox *projectinbox.Inbox, req assistant.Request) {
	ctx := c.Context
	if timeout := c.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var monitor assistant.Monitor
	if c.Bool("verbose") {
		monitor = &printMonitor{out: c.App.Writer}
	}

	result, err := inbox.HandleInteractionWithMonitor(ctx, req, monitor)
	renderResult(c.App.Writer, result, err)
}

func renderResult(out io.Writer, result *assistant.Result, err error) {
	if err != nil {
		if assistant.IsUserError(err) {
			fmt.Fprintf(out, "ERROR: %s\n", assistant.UserMessage(err))
		} else {
			fmt.Fprintf(out, "ERROR: %v\n", err)
		}
		return
	}

	if result.Intent == core.IntentUpdate {
		fmt.Fprintf(out, "SUCCESS: Project %s updated.\n", result.ProjectID)
		fmt.Fprintf(out, "\nUpdated Record:\n%s\n", result.UpdatedText)
		return
	}

	fmt.Fprintf(out, "\nAI Response:\n%s\n", result.Answer)
	fmt.Fprintf(out, "\nRetrieved Context (%s):\n%s\n", strings.Join(result.Sources, ", "), result.Context)
}

// printMonitor writes interaction stages to the command output.
type printMonitor struct {
	out io.Writer
}

var _ assistant.Monitor = (*printMonitor)(nil)

func (m *printMonitor) Start(_ assistant.Request) {}

func (m *printMonitor) AfterClassification(intent core.Intent, raw string) {
	fmt.Fprintf(m.out, "Intent: %s (model said %q)\n", intent, strings.TrimSpace(raw))
}

// Finish lists the stored metadata of an updated record.
func (m *printMonitor) Finish(result *assistant.Result, err error) {
	if err != nil || result == nil || result.Record == nil {
		return
	}
	metadata := result.Record.Metadata()
	fmt.Fprintln(m.out, "Metadata:")
	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		if key == "text" {
			continue
		}
		fmt.Fprintf(m.out, "  %s: %s\n", key, metadata[key])
	}
}

func reembedCommand(c *cli.Context) error {
	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Force:          c.Bool("force"),
	}

	// Validate config
	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	inbox, err := openInbox(c)
	if err != nil {
		return fmt.Errorf("failed to open inbox: %w", err)
	}
	defer inbox.Close()

	progress := c.App.ErrWriter
	fmt.Fprintf(progress, "Database: %s\n", c.String("db"))
	fmt.Fprintf(progress, "Index: %s\n", inbox.Index().Name())
	fmt.Fprintf(progress, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(progress, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(progress)

	if _, err := inbox.NewReembedder(reembedConfig, progress).Run(c.Context); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
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
