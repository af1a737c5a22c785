package ai

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/utils"
)

// Backend is a provider specific client able to complete prompts and embed
// texts.
type Backend interface {
	Provider() string
	Model() string
	GenerateContent(ctx context.Context, prompt string) (string, error)
	EmbedContent(ctx context.Context, texts []string) ([][]float32, error)
}

// RetryAdvisor is implemented by backends that can tell transient failures
// apart. RetryDelay returns how long to wait before the next attempt and
// whether an attempt should be made at all.
type RetryAdvisor interface {
	RetryDelay(err error, attempt int) (time.Duration, bool)
}

const (
	defaultMaxLogLength = 200
	defaultEmbedBatch   = 100
)

//go:embed prompt.md
var clausePrompt string

type Options struct {
	Timeout      time.Duration
	MaxRetries   int
	MaxLogLength int
	EmbedBatch   int
}

// Assistant exposes a Backend as a linguistic model for the extractors and
// the scorer.
type Assistant struct {
	backend Backend
	logger  *zap.Logger
	opts    Options
}

func NewAssistant(backend Backend, log *zap.Logger, opts Options) (*Assistant, error) {
	if backend == nil {
		return nil, errors.New("ai backend is required")
	}
	if opts.MaxLogLength <= 0 {
		opts.MaxLogLength = defaultMaxLogLength
	}
	if opts.EmbedBatch <= 0 {
		opts.EmbedBatch = defaultEmbedBatch
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	return &Assistant{
		backend: backend,
		logger:  logger.WithCommonFields(log, backend.Provider(), backend.Model()),
		opts:    opts,
	}, nil
}

func (a *Assistant) Name() string {
	return a.backend.Provider() + "/" + a.backend.Model()
}

// Embed returns one vector per text, batching requests to the backend.
func (a *Assistant) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += a.opts.EmbedBatch {
		end := min(start+a.opts.EmbedBatch, len(texts))
		batch := texts[start:end]

		var vectors [][]float32
		err := a.withRetry(ctx, "embed content", func(ctx context.Context) error {
			var err error
			vectors, err = a.backend.EmbedContent(ctx, batch)
			return err
		})
		if err != nil {
			return nil, err
		}
		if len(vectors) != len(batch) {
			return nil, fmt.Errorf("embed content: expected %d vectors, got %d", len(batch), len(vectors))
		}
		out = append(out, vectors...)
	}
	return out, nil
}

// MainClauses asks the backend to shorten every sentence to its main clause.
func (a *Assistant) MainClauses(ctx context.Context, sentences []string) ([]string, error) {
	if len(sentences) == 0 {
		return []string{}, nil
	}

	prompt, err := buildClausePrompt(sentences)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("main clauses request",
		zap.Int("sentences", len(sentences)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		logger.Preview("prompt_preview", prompt, a.opts.MaxLogLength),
	)

	var raw string
	err = a.withRetry(ctx, "generate content", func(ctx context.Context) error {
		var err error
		raw, err = a.backend.GenerateContent(ctx, prompt)
		return err
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("main clauses response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		logger.Preview("response_preview", raw, a.opts.MaxLogLength),
	)

	clauses, err := parseClauses(raw)
	if err != nil {
		return nil, err
	}
	if len(clauses) != len(sentences) {
		return nil, fmt.Errorf("parse clauses: expected %d clauses, got %d", len(sentences), len(clauses))
	}
	return clauses, nil
}

func buildClausePrompt(sentences []string) (string, error) {
	payload, err := marshalSentences(sentences)
	if err != nil {
		return "", err
	}

	template := clausePrompt
	if strings.TrimSpace(template) == "" {
		template = "Sentences:\n{{SENTENCES_JSON}}\n\nJSON Response:"
	}
	return strings.ReplaceAll(template, "{{SENTENCES_JSON}}", payload), nil
}

func (a *Assistant) withRetry(ctx context.Context, op string, call func(ctx context.Context) error) error {
	advisor, _ := a.backend.(RetryAdvisor)

	var lastErr error
	for attempt := 1; attempt <= a.opts.MaxRetries; attempt++ {
		callCtx, cancel := a.callContext(ctx)
		err := call(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == a.opts.MaxRetries || advisor == nil {
			break
		}
		delay, retry := advisor.RetryDelay(err, attempt)
		if !retry {
			break
		}

		a.logger.Warn("ai request failed, retrying",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := wait(ctx, delay); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return fmt.Errorf("%s: %w", op, lastErr)
}

func (a *Assistant) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.opts.Timeout)
}

var wait = utils.WaitFor
