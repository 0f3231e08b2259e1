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

// Package config loads service configuration from a TOML file with
// environment variable overrides. API keys are env-only so they never
// end up in config files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/poiesic/lexcheck/ai"
)

// Server holds HTTP listener settings.
type Server struct {
	Addr string `toml:"addr"`
}

// Storage holds evidence index settings.
type Storage struct {
	DBPath   string `toml:"db_path"`
	InMemory bool   `toml:"in_memory"`
}

// AI holds model provider settings. API keys are read from the
// GEMINI_API_KEY and OPENAI_API_KEY environment variables.
type AI struct {
	EmbeddingHost  string  `toml:"embedding_host"`
	EmbeddingModel string  `toml:"embedding_model"`
	GeminiModel    string  `toml:"gemini_model"`
	OpenAIModel    string  `toml:"openai_model"`
	Temperature    float64 `toml:"temperature"`
}

// Ingest holds corpus ingestion settings.
type Ingest struct {
	SourceDir string `toml:"source_dir"`
	PoolSize  int    `toml:"pool_size"`
	BatchSize int    `toml:"batch_size"`
}

// Config is the full service configuration.
type Config struct {
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
	AI      AI      `toml:"ai"`
	Ingest  Ingest  `toml:"ingest"`
}

// Default returns the configuration used when no file or overrides are
// present.
func Default() *Config {
	base := ai.DefaultConfig()
	return &Config{
		Server:  Server{Addr: ":8080"},
		Storage: Storage{DBPath: "data/evidence"},
		AI: AI{
			EmbeddingHost:  base.EmbeddingHost,
			EmbeddingModel: base.EmbeddingModel,
			GeminiModel:    base.GeminiModel,
			OpenAIModel:    base.OpenAIModel,
			Temperature:    base.Temperature,
		},
		Ingest: Ingest{SourceDir: "data/corpus"},
	}
}

// Load reads the TOML file at path, applies environment overrides and
// validates the result. A missing file is not an error, the defaults
// apply. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Server.Addr, "LEXCHECK_ADDR")
	setString(&c.Storage.DBPath, "LEXCHECK_DB_PATH")
	setString(&c.AI.EmbeddingHost, "LEXCHECK_EMBEDDING_HOST")
	setString(&c.AI.EmbeddingModel, "LEXCHECK_EMBEDDING_MODEL")
	setString(&c.AI.GeminiModel, "LEXCHECK_GEMINI_MODEL")
	setString(&c.AI.OpenAIModel, "LEXCHECK_OPENAI_MODEL")
	setString(&c.Ingest.SourceDir, "LEXCHECK_SOURCE_DIR")

	if v := os.Getenv("LEXCHECK_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.AI.Temperature = parsed
		}
	}
}

// Validate checks settings that would otherwise fail at first use.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if !c.Storage.InMemory && c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required unless in_memory is set")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2, got %f", c.AI.Temperature)
	}
	if c.Ingest.PoolSize < 0 {
		return fmt.Errorf("ingest.pool_size cannot be negative")
	}
	if c.Ingest.BatchSize < 0 {
		return fmt.Errorf("ingest.batch_size cannot be negative")
	}
	return nil
}

// AIConfig builds the provider configuration, pulling API keys from the
// environment.
func (c *Config) AIConfig() (*ai.Config, error) {
	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithGemini(os.Getenv("GEMINI_API_KEY"), c.AI.GeminiModel),
		ai.WithTemperature(c.AI.Temperature),
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		opts = append(opts, ai.WithOpenAIFallback(key, c.AI.OpenAIModel))
	}

	cfg := ai.NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
