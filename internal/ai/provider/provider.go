package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ai"
	"github.com/spigell/ats-matcher/internal/ai/gemini"
	"github.com/spigell/ats-matcher/internal/ai/openai"
	"github.com/spigell/ats-matcher/internal/nlp"
	"github.com/spigell/ats-matcher/internal/secrets"
)

const (
	None   = "none"
	Gemini = "gemini"
	OpenAI = "openai"
)

type Config struct {
	Provider     string        `mapstructure:"provider"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max-retries"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	EmbedBatch   int           `mapstructure:"embed-batch"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
	OpenAI       *OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
}

type OpenAIConfig struct {
	APIKey         string `mapstructure:"api-key"`
	APIKeyFile     string `mapstructure:"api-key-file"`
	BaseURL        string `mapstructure:"base-url"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding-model"`
}

// Enabled reports whether a linguistic model is configured at all.
func (c *Config) Enabled() bool {
	if c == nil {
		return false
	}
	name := strings.ToLower(strings.TrimSpace(c.Provider))
	return name != "" && name != None
}

// NewHandle returns a lazily loaded model handle for the configured provider,
// or nil when no provider is configured. Secrets are read and clients created
// on first use, so a broken configuration degrades to lexical fallbacks.
func NewHandle(cfg *Config, log *zap.Logger) *nlp.Handle {
	if !cfg.Enabled() {
		return nil
	}
	return nlp.NewHandle(func(ctx context.Context) (nlp.Model, error) {
		return Load(ctx, cfg, log)
	}, log)
}

// Load builds the configured backend and wraps it into an assistant.
func Load(ctx context.Context, cfg *Config, log *zap.Logger) (nlp.Model, error) {
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return ai.NewAssistant(backend, log, ai.Options{
		Timeout:      cfg.Timeout,
		MaxRetries:   cfg.MaxRetries,
		MaxLogLength: cfg.MaxLogLength,
		EmbedBatch:   cfg.EmbedBatch,
	})
}

func newBackend(ctx context.Context, cfg *Config) (ai.Backend, error) {
	switch name := strings.ToLower(strings.TrimSpace(cfg.Provider)); name {
	case Gemini:
		gc := cfg.Gemini
		if gc == nil {
			gc = &GeminiConfig{}
		}
		key, err := secrets.Load(secrets.Source{Name: "gemini api key", Value: gc.APIKey, File: gc.APIKeyFile, Env: "GEMINI_API_KEY"})
		if err != nil {
			return nil, err
		}
		return gemini.NewGenerator(ctx, key, gc.Model, gc.EmbeddingModel)
	case OpenAI:
		oc := cfg.OpenAI
		if oc == nil {
			oc = &OpenAIConfig{}
		}
		key, err := secrets.Load(secrets.Source{Name: "openai api key", Value: oc.APIKey, File: oc.APIKeyFile, Env: "OPENAI_API_KEY"})
		// local OpenAI-compatible servers usually run without a key
		if err != nil && strings.TrimSpace(oc.BaseURL) == "" {
			return nil, err
		}
		return openai.New(key, oc.BaseURL, oc.Model, oc.EmbeddingModel)
	default:
		return nil, fmt.Errorf("unsupported model provider %q", name)
	}
}
