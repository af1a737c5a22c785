package nlp

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrModelUnavailable is reported by a Handle that has no model to offer.
var ErrModelUnavailable = errors.New("linguistic model is unavailable")

// Model is the optional deeper linguistic capability. Implementations must be
// safe for concurrent use once constructed.
type Model interface {
	Name() string
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// MainClauses reduces every sentence to its main clause, in input order.
	MainClauses(ctx context.Context, sentences []string) ([]string, error)
}

// Loader builds a Model. It is called at most once per Handle.
type Loader func(ctx context.Context) (Model, error)

// Handle shares one lazily loaded Model between all extractor calls.
// A nil Handle is valid and never offers a model.
type Handle struct {
	load   Loader
	logger *zap.Logger

	once  sync.Once
	model Model
	err   error
}

func NewHandle(load Loader, logger *zap.Logger) *Handle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handle{load: load, logger: logger}
}

// StaticHandle wraps an already constructed model.
func StaticHandle(m Model) *Handle {
	return NewHandle(func(context.Context) (Model, error) { return m, nil }, nil)
}

// Get returns the model, loading it on first use. The load is detached from
// ctx cancellation so a cancelled first caller does not poison the handle.
func (h *Handle) Get(ctx context.Context) (Model, bool) {
	if h == nil || h.load == nil {
		return nil, false
	}

	h.once.Do(func() {
		h.model, h.err = h.load(context.WithoutCancel(ctx))
		if h.err == nil && h.model == nil {
			h.err = ErrModelUnavailable
		}
		if h.err != nil {
			h.logger.Warn("linguistic model failed to load, using lexical fallbacks", zap.Error(h.err))
			return
		}
		h.logger.Info("linguistic model loaded", zap.String("model", h.model.Name()))
	})

	if h.err != nil {
		return nil, false
	}
	return h.model, true
}

// Err returns the load error, if the model was requested and failed.
func (h *Handle) Err() error {
	if h == nil || h.load == nil {
		return ErrModelUnavailable
	}
	return h.err
}
