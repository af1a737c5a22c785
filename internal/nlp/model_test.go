package nlp

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeModel struct{}

func (fakeModel) Name() string { return "fake" }

func (fakeModel) Embed(_ context.Context, texts []string) ([][]float32, error) {
	return make([][]float32, len(texts)), nil
}

func (fakeModel) MainClauses(_ context.Context, sentences []string) ([]string, error) {
	return sentences, nil
}

func TestHandleLoadsOnce(t *testing.T) {
	t.Parallel()

	var loads atomic.Int32
	h := NewHandle(func(context.Context) (Model, error) {
		loads.Add(1)
		return fakeModel{}, nil
	}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := h.Get(context.Background()); !ok {
				t.Errorf("expected model to be available")
			}
		}()
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected a single load, got %d", got)
	}
	if h.Err() != nil {
		t.Fatalf("unexpected error: %v", h.Err())
	}
}

func TestHandleLoadFailureDegrades(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	loadErr := errors.New("no api key")
	h := NewHandle(func(context.Context) (Model, error) {
		return nil, loadErr
	}, zap.New(core))

	for i := 0; i < 3; i++ {
		if _, ok := h.Get(context.Background()); ok {
			t.Fatalf("expected model to be unavailable")
		}
	}

	if !errors.Is(h.Err(), loadErr) {
		t.Fatalf("expected load error, got %v", h.Err())
	}
	if observed.Len() != 1 {
		t.Fatalf("expected exactly one warning, got %d", observed.Len())
	}
}

func TestNilHandle(t *testing.T) {
	t.Parallel()

	var h *Handle
	if _, ok := h.Get(context.Background()); ok {
		t.Fatalf("nil handle must not offer a model")
	}
	if !errors.Is(h.Err(), ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", h.Err())
	}
}

func TestHandleIgnoresCancelledFirstCaller(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHandle(func(ctx context.Context) (Model, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return fakeModel{}, nil
	}, nil)

	if _, ok := h.Get(ctx); !ok {
		t.Fatalf("expected load to be detached from caller cancellation")
	}
}
