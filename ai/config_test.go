package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, 0.0, cfg.Temperature)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	})

	t.Run("with custom embedding host", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
	})

	t.Run("with gemini credentials", func(t *testing.T) {
		cfg := NewConfig(WithGemini("test-key", "gemini-2.5-pro"))

		assert.Equal(t, "test-key", cfg.GeminiAPIKey)
		assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel)
	})

	t.Run("with openai fallback", func(t *testing.T) {
		cfg := NewConfig(WithOpenAIFallback("sk-test", "gpt-4o-mini"))

		assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithEmbeddingHost("http://embed:8080/v1"),
			WithEmbeddingModel("custom-embed"),
			WithGemini("key-a", "model-a"),
			WithTemperature(0.3),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "custom-embed", cfg.EmbeddingModel)
		assert.Equal(t, "key-a", cfg.GeminiAPIKey)
		assert.Equal(t, "model-a", cfg.GeminiModel)
		assert.Equal(t, 0.3, cfg.Temperature)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{
			name:     "already has /v1",
			host:     "http://localhost:11434/v1",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "missing /v1",
			host:     "http://localhost:11434",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "has trailing slash",
			host:     "http://localhost:11434/",
			expected: "http://localhost:11434/v1",
		},
		{
			name:     "empty host",
			host:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host}

			cfg.Normalize()

			assert.Equal(t, tt.expected, cfg.EmbeddingHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			EmbeddingHost:  "http://localhost:11434",
			EmbeddingModel: "embeddinggemma",
			GeminiAPIKey:   "test-key",
			GeminiModel:    "gemini-2.5-flash",
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()

		err := cfg.Validate()
		assert.NoError(t, err)

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	})

	t.Run("missing embedding host", func(t *testing.T) {
		cfg := valid()
		cfg.EmbeddingHost = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingHost")
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := valid()
		cfg.EmbeddingModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})

	t.Run("missing gemini key", func(t *testing.T) {
		cfg := valid()
		cfg.GeminiAPIKey = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GeminiAPIKey")
	})

	t.Run("missing gemini model", func(t *testing.T) {
		cfg := valid()
		cfg.GeminiModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GeminiModel")
	})

	t.Run("fallback key without model", func(t *testing.T) {
		cfg := valid()
		cfg.OpenAIAPIKey = "sk-test"
		cfg.OpenAIModel = ""

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OpenAIModel")
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Temperature = 2.5

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Temperature")

		cfg.Temperature = -0.1
		err = cfg.Validate()
		assert.Error(t, err)
	})

	t.Run("temperature at boundaries", func(t *testing.T) {
		cfg := valid()
		cfg.Temperature = 0
		require.NoError(t, cfg.Validate())

		cfg.Temperature = 2
		require.NoError(t, cfg.Validate())
	})
}

func TestConfigHasFallback(t *testing.T) {
	cfg := NewConfig(WithGemini("key", "model"))
	assert.False(t, cfg.HasFallback())

	cfg = NewConfig(
		WithGemini("key", "model"),
		WithOpenAIFallback("sk-test", "gpt-4o"),
	)
	assert.True(t, cfg.HasFallback())
}
