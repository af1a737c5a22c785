package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ats"
	"github.com/spigell/ats-matcher/internal/extract"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/nlp"
)

// ErrNoText is returned when a document has no text left after trimming.
var ErrNoText = errors.New("no extractable text")

// Step is a single extraction stage. A failing step never aborts parsing:
// its field is reset to the default and the next step runs.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Applies reports whether the step runs for a JD (true) or a CV (false).
	Applies(isJD bool) bool
	Apply(ctx context.Context, deps Deps, doc *ats.ParsedDocument) (StepInfo, error)
	Reset(doc *ats.ParsedDocument)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger *zap.Logger
	Model  *nlp.Handle
}

// StepInfo describes the result of executing a step.
type StepInfo struct {
	Found int
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

type Parser struct {
	deps  Deps
	steps []Step
}

// New creates a parser running DefaultSteps. model may be nil.
func New(log *zap.Logger, model *nlp.Handle) *Parser {
	return NewWithSteps(log, model, DefaultSteps())
}

func NewWithSteps(log *zap.Logger, model *nlp.Handle, steps []Step) *Parser {
	return &Parser{
		deps:  Deps{Logger: logger.WithFields(log), Model: model},
		steps: steps,
	}
}

// Parse extracts every signal of a single document with a parser that has no
// linguistic model.
func Parse(ctx context.Context, raw string, isJD bool) (*ats.ParsedDocument, error) {
	return New(nil, nil).Parse(ctx, raw, isJD)
}

// Steps returns the configured steps in execution order.
func (p *Parser) Steps() []Step {
	return p.steps
}

// Parse runs the enabled steps against raw and assembles the document.
func (p *Parser) Parse(ctx context.Context, raw string, isJD bool) (*ats.ParsedDocument, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoText
	}

	doc := newDocument(raw, isJD)
	log := p.deps.Logger.With(zap.Bool("is_jd", isJD))

	for _, step := range p.steps {
		if !step.Applies(isJD) {
			continue
		}
		if !step.IsEnabled() {
			log.Debug("extraction step disabled", zap.String("name", step.Name()))
			continue
		}
		p.run(ctx, log, step, doc)
	}

	return doc, nil
}

func (p *Parser) run(ctx context.Context, log *zap.Logger, step Step, doc *ats.ParsedDocument) {
	defer func() {
		if r := recover(); r != nil {
			step.Reset(doc)
			log.Warn("extraction step failed, using default",
				zap.String("name", step.Name()),
				zap.Any("panic", r),
			)
		}
	}()

	info, err := step.Apply(ctx, p.deps, doc)
	switch {
	case errors.Is(err, extract.ErrDegraded):
		log.Warn("extraction step degraded", zap.String("name", step.Name()), zap.Error(err))
	case err != nil:
		step.Reset(doc)
		log.Warn("extraction step failed, using default", zap.String("name", step.Name()), zap.Error(err))
		return
	}

	log.Debug("extraction step",
		zap.String("name", step.Name()),
		zap.Int("found", info.Found),
	)
}

func newDocument(raw string, isJD bool) *ats.ParsedDocument {
	doc := &ats.ParsedDocument{
		RawText:    raw,
		Skills:     []string{},
		Experience: ats.DefaultExperience(),
		IsJD:       isJD,
	}
	if isJD {
		doc.Responsibilities = []string{}
	} else {
		doc.Academic = ats.EmptyAcademicProfile()
	}
	return doc
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) error {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
			return nil
		}
	}
	return fmt.Errorf("unknown extraction step %q", name)
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(interface{ Status() Status }); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: step.Name(), Enabled: step.IsEnabled()})
	}
	return statuses
}
