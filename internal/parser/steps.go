package parser

import (
	"context"

	"github.com/spigell/ats-matcher/internal/ats"
	"github.com/spigell/ats-matcher/internal/extract"
	"github.com/spigell/ats-matcher/internal/nlp"
)

const (
	StepNormalize        = "normalize"
	StepSkills           = "skills"
	StepExperience       = "experience"
	StepCompensation     = "compensation"
	StepAcademic         = "academic"
	StepResponsibilities = "responsibilities"
)

type scope int

const (
	anyDocument scope = iota
	jdOnly
	cvOnly
)

// step adapts a plain extraction function to the Step interface.
type step struct {
	name     string
	scope    scope
	disabled string
	apply    func(ctx context.Context, deps Deps, doc *ats.ParsedDocument) (StepInfo, error)
	reset    func(doc *ats.ParsedDocument)
}

func (s *step) Name() string { return s.name }

func (s *step) Disable(reason string) {
	if reason == "" {
		reason = "disabled"
	}
	s.disabled = reason
}

func (s *step) IsEnabled() bool { return s.disabled == "" }

func (s *step) Applies(isJD bool) bool {
	switch s.scope {
	case jdOnly:
		return isJD
	case cvOnly:
		return !isJD
	default:
		return true
	}
}

func (s *step) Apply(ctx context.Context, deps Deps, doc *ats.ParsedDocument) (StepInfo, error) {
	return s.apply(ctx, deps, doc)
}

func (s *step) Reset(doc *ats.ParsedDocument) { s.reset(doc) }

func (s *step) Status() Status {
	return Status{Name: s.name, Enabled: s.IsEnabled(), Reason: s.disabled}
}

// DefaultSteps returns a fresh set of the standard extraction steps.
func DefaultSteps() []Step {
	return []Step{
		NewNormalize(),
		NewSkills(),
		NewExperience(),
		NewCompensation(),
		NewAcademic(),
		NewResponsibilities(),
	}
}

func NewNormalize() Step {
	return &step{
		name: StepNormalize,
		apply: func(_ context.Context, _ Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			doc.NormalizedText = nlp.Normalize(doc.RawText)
			return StepInfo{Found: len(doc.NormalizedText)}, nil
		},
		reset: func(doc *ats.ParsedDocument) { doc.NormalizedText = "" },
	}
}

func NewSkills() Step {
	return &step{
		name: StepSkills,
		apply: func(_ context.Context, _ Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			skills, err := extract.ExtractSkills(doc.RawText)
			doc.Skills = skills
			return StepInfo{Found: len(skills)}, err
		},
		reset: func(doc *ats.ParsedDocument) { doc.Skills = []string{} },
	}
}

func NewExperience() Step {
	return &step{
		name: StepExperience,
		apply: func(_ context.Context, _ Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			doc.Experience = extract.Experience(doc.RawText)
			return StepInfo{Found: int(doc.Experience.Years)}, nil
		},
		reset: func(doc *ats.ParsedDocument) { doc.Experience = ats.DefaultExperience() },
	}
}

func NewCompensation() Step {
	return &step{
		name: StepCompensation,
		apply: func(_ context.Context, _ Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			doc.Compensation = extract.Compensation(doc.RawText)
			if doc.Compensation == nil {
				return StepInfo{}, nil
			}
			return StepInfo{Found: 1}, nil
		},
		reset: func(doc *ats.ParsedDocument) { doc.Compensation = nil },
	}
}

func NewAcademic() Step {
	return &step{
		name:  StepAcademic,
		scope: cvOnly,
		apply: func(_ context.Context, _ Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			a := extract.Academic(doc.RawText)
			doc.Academic = a
			return StepInfo{Found: len(a.Degrees) + len(a.Institutions) + len(a.Publications) + len(a.Awards)}, nil
		},
		reset: func(doc *ats.ParsedDocument) { doc.Academic = ats.EmptyAcademicProfile() },
	}
}

func NewResponsibilities() Step {
	return &step{
		name:  StepResponsibilities,
		scope: jdOnly,
		apply: func(ctx context.Context, deps Deps, doc *ats.ParsedDocument) (StepInfo, error) {
			r, err := extract.ExtractResponsibilities(ctx, doc.RawText, deps.Model)
			doc.Responsibilities = r
			return StepInfo{Found: len(r)}, err
		},
		reset: func(doc *ats.ParsedDocument) { doc.Responsibilities = []string{} },
	}
}
