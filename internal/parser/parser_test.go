package parser

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-matcher/internal/ats"
	"github.com/spigell/ats-matcher/internal/extract"
)

const jdText = `Senior Python Engineer
We need 5+ years of experience with Python, React and AWS.
Salary: 20-30 LPA
- Design and build scalable payment services`

const cvText = `Python and Docker engineer with 8 years of experience.
Expected CTC 25 LPA
B.Tech from Indian Institute of Technology`

func TestParseJD(t *testing.T) {
	t.Parallel()

	doc, err := Parse(context.Background(), jdText, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.RawText != jdText {
		t.Fatalf("raw text must be kept verbatim")
	}
	if doc.NormalizedText == "" {
		t.Fatalf("expected normalized text")
	}
	if len(doc.Skills) != 3 || doc.Skills[0] != "aws" || doc.Skills[1] != "python" || doc.Skills[2] != "react" {
		t.Fatalf("unexpected skills %v", doc.Skills)
	}
	if doc.Experience.Years != 5 || doc.Experience.Seniority != ats.Senior {
		t.Fatalf("unexpected experience %+v", doc.Experience)
	}
	if doc.Compensation == nil || doc.Compensation.Min != 2_000_000 || doc.Compensation.Max != 3_000_000 {
		t.Fatalf("unexpected compensation %+v", doc.Compensation)
	}
	if doc.Academic != nil {
		t.Fatalf("academic profile must not be computed for a JD")
	}
	if len(doc.Responsibilities) == 0 {
		t.Fatalf("expected responsibilities for a JD")
	}
}

func TestParseCV(t *testing.T) {
	t.Parallel()

	doc, err := Parse(context.Background(), cvText, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Responsibilities != nil {
		t.Fatalf("responsibilities must not be computed for a CV")
	}
	if doc.Academic == nil || len(doc.Academic.Degrees) == 0 || len(doc.Academic.Institutions) == 0 {
		t.Fatalf("unexpected academic profile %+v", doc.Academic)
	}
	if doc.Experience.Years != 8 {
		t.Fatalf("expected 8 years, got %v", doc.Experience.Years)
	}
}

func TestParseNoText(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  \n\t "} {
		if _, err := Parse(context.Background(), raw, false); !errors.Is(err, ErrNoText) {
			t.Fatalf("expected ErrNoText for %q, got %v", raw, err)
		}
	}
}

func TestParseIsolatesFailingSteps(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)

	panicking := &step{
		name: StepSkills,
		apply: func(context.Context, Deps, *ats.ParsedDocument) (StepInfo, error) {
			panic("broken extractor")
		},
		reset: func(doc *ats.ParsedDocument) { doc.Skills = []string{} },
	}
	failing := &step{
		name: StepCompensation,
		apply: func(_ context.Context, _ Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			doc.Compensation = &ats.Compensation{Min: 1, Max: 1}
			return StepInfo{}, errors.New("half-written")
		},
		reset: func(doc *ats.ParsedDocument) { doc.Compensation = nil },
	}

	p := NewWithSteps(zap.New(core), nil, []Step{panicking, failing, NewExperience()})
	doc, err := p.Parse(context.Background(), cvText, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Skills) != 0 {
		t.Fatalf("expected default skills, got %v", doc.Skills)
	}
	if doc.Compensation != nil {
		t.Fatalf("expected compensation to be reset, got %+v", doc.Compensation)
	}
	if doc.Experience.Years != 8 {
		t.Fatalf("later steps must still run, got %+v", doc.Experience)
	}
	if observed.FilterMessage("extraction step failed, using default").Len() != 2 {
		t.Fatalf("expected two failure warnings, got %d", observed.Len())
	}
}

func TestParseKeepsDegradedResult(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)

	degraded := &step{
		name: StepSkills,
		apply: func(_ context.Context, _ Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			doc.Skills = []string{"python"}
			return StepInfo{Found: 1}, fmt.Errorf("%w: cue stage broke", extract.ErrDegraded)
		},
		reset: func(doc *ats.ParsedDocument) { doc.Skills = []string{} },
	}

	doc, err := NewWithSteps(zap.New(core), nil, []Step{degraded}).Parse(context.Background(), cvText, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Skills) != 1 || doc.Skills[0] != "python" {
		t.Fatalf("degraded skills must be kept, got %v", doc.Skills)
	}
	if observed.FilterMessage("extraction step degraded").Len() != 1 {
		t.Fatalf("expected one degraded warning, got %v", observed.All())
	}
	if observed.FilterMessage("extraction step failed, using default").Len() != 0 {
		t.Fatalf("degraded step must not be reset")
	}
}

func TestDisableByName(t *testing.T) {
	t.Parallel()

	steps := DefaultSteps()
	if err := DisableByName(steps, StepCompensation, "not needed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := DisableByName(steps, "unknown", ""); err == nil {
		t.Fatalf("expected error for unknown step")
	}

	doc, err := NewWithSteps(nil, nil, steps).Parse(context.Background(), jdText, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Compensation != nil {
		t.Fatalf("disabled step must not run")
	}

	for _, st := range Describe(steps) {
		if st.Name == StepCompensation && (st.Enabled || st.Reason != "not needed") {
			t.Fatalf("unexpected status %+v", st)
		}
	}
}
