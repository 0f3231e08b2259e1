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
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/lexcheck/ai/llm"
	"github.com/poiesic/lexcheck/api"
	"github.com/poiesic/lexcheck/config"
	"github.com/poiesic/lexcheck/ingest"
	"github.com/poiesic/lexcheck/search"
	"github.com/poiesic/lexcheck/storage"
	"github.com/poiesic/lexcheck/storage/badger"
	"github.com/poiesic/lexcheck/workflow"
)

func main() {
	// Missing .env is fine; environment variables may be set directly.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "lexcheck",
		Usage: "Legal compliance checker for Japanese advertising copy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML configuration file",
				Value:   "lexcheck.toml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the compliance check HTTP service",
				Action: serveCommand,
			},
			{
				Name:   "index",
				Usage:  "Build the evidence index from a legal document corpus",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Corpus directory (overrides config)",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Evidence index directory (overrides config)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rebuild even if the index is already populated",
					},
				},
			},
			{
				Name:      "check",
				Usage:     "Check one piece of ad copy and print the result as JSON",
				ArgsUsage: "<text>",
				Action:    checkCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	index, err := openIndex(cfg.Storage.DBPath, cfg.Storage.InMemory)
	if err != nil {
		return err
	}
	defer index.Close()

	count, err := index.Count(c.Context)
	if err != nil {
		return err
	}
	if count == 0 {
		slog.Warn("evidence index is empty, run 'lexcheck index' first")
	}

	pipeline, err := buildPipeline(c.Context, cfg, index)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.NewComplianceHandler(pipeline, slog.Default()))
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", cfg.Server.Addr, "evidence_chunks", count)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}

func indexCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if v := c.String("source"); v != "" {
		cfg.Ingest.SourceDir = v
	}
	if v := c.String("db"); v != "" {
		cfg.Storage.DBPath = v
	}

	aiConfig, err := cfg.AIConfig()
	if err != nil {
		return err
	}
	embedder, err := llm.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	index, err := openIndex(cfg.Storage.DBPath, false)
	if err != nil {
		return err
	}
	defer index.Close()

	docs, err := ingest.LoadDir(cfg.Ingest.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents found under %s", cfg.Ingest.SourceDir)
	}

	opts := []ingest.Option{ingest.WithProgress(os.Stderr)}
	if cfg.Ingest.PoolSize > 0 {
		opts = append(opts, ingest.WithPoolSize(cfg.Ingest.PoolSize))
	}
	if cfg.Ingest.BatchSize > 0 {
		opts = append(opts, ingest.WithBatchSize(cfg.Ingest.BatchSize))
	}

	pipeline, err := ingest.NewPipeline(index, embedder, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	if err := pipeline.Rebuild(c.Context, docs, c.Bool("force")); err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	count, err := index.Count(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Indexed %d chunks from %d documents\n", count, len(docs))
	return nil
}

func checkCommand(c *cli.Context) error {
	input := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if input == "" {
		return fmt.Errorf("usage: lexcheck check <text>")
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	index, err := openIndex(cfg.Storage.DBPath, cfg.Storage.InMemory)
	if err != nil {
		return err
	}
	defer index.Close()

	pipeline, err := buildPipeline(c.Context, cfg, index)
	if err != nil {
		return err
	}

	state, err := pipeline.Run(c.Context, input)
	if err != nil {
		return fmt.Errorf("compliance check failed: %w", err)
	}

	out, err := json.MarshalIndent(workflow.BuildResult(state), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func openIndex(dbPath string, inMemory bool) (storage.EvidenceIndex, error) {
	backend, err := badger.OpenBackend(dbPath, inMemory)
	if err != nil {
		return nil, fmt.Errorf("failed to open evidence store: %w", err)
	}
	index, err := badger.NewEvidenceIndex(backend)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to open evidence index: %w", err)
	}
	return index, nil
}

func buildPipeline(ctx context.Context, cfg *config.Config, index storage.EvidenceIndex) (*workflow.Pipeline, error) {
	aiConfig, err := cfg.AIConfig()
	if err != nil {
		return nil, err
	}

	embedder, err := llm.NewEmbedder(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	generator, err := llm.NewGenerator(ctx, aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	planner, err := search.NewPlanner(generator)
	if err != nil {
		return nil, err
	}

	retriever, err := search.NewRetriever(index, embedder)
	if err != nil {
		return nil, err
	}

	return workflow.NewPipeline(planner, retriever, generator)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
