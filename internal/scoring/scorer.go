package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ats"
	"github.com/spigell/ats-matcher/internal/logger"
	"github.com/spigell/ats-matcher/internal/nlp"
)

const (
	WeightSkills           = 0.60
	WeightExperience       = 0.20
	WeightCompensation     = 0.10
	WeightResponsibilities = 0.05
	WeightAcademics        = 0.05

	neutralScore = 50.0
)

var errMissingDocument = errors.New("job description and CV are both required")

// Scorer combines a parsed JD and CV into a MatchResult. It is safe for
// concurrent use.
type Scorer struct {
	logger *zap.Logger
	model  *nlp.Handle
}

// New creates a scorer. A nil model handle selects lexical similarity.
func New(log *zap.Logger, model *nlp.Handle) *Scorer {
	return &Scorer{logger: logger.WithFields(log), model: model}
}

// Score never fails: any internal fault produces a zero result describing the
// failure.
func (s *Scorer) Score(ctx context.Context, jd, cv *ats.ParsedDocument) (result *ats.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%v", r)
			s.logger.Error("failed to calculate match score", zap.Error(err))
			result = failureResult(err)
		}
	}()

	if jd == nil || cv == nil {
		s.logger.Error("failed to calculate match score", zap.Error(errMissingDocument))
		return failureResult(errMissingDocument)
	}

	result = &ats.MatchResult{}

	skills := compareSkills(jd.Skills, cv.Skills)
	result.MatchedSkills = skills.matched
	result.MissingSkills = skills.missing
	result.ExtraSkills = skills.extra
	result.SubScores.Skills = skills.score

	result.SubScores.Experience, result.ExperienceFeedback = compareExperience(jd.Experience, cv.Experience)
	result.SubScores.Compensation, result.CompensationFeedback = compareCompensation(jd.Compensation, cv.Compensation)
	result.SubScores.Responsibilities, result.ResponsibilityMatches = s.compareResponsibilities(ctx, jd.Responsibilities, cv.RawText)
	result.SubScores.Academics, result.AcademicFeedback = compareAcademics(cv.Academic)

	result.Score = Composite(result.SubScores)

	s.logger.Debug("match scored",
		zap.Float64("score", result.Score),
		zap.Float64("skills", result.SubScores.Skills),
		zap.Float64("experience", result.SubScores.Experience),
		zap.Float64("compensation", result.SubScores.Compensation),
		zap.Float64("responsibilities", result.SubScores.Responsibilities),
		zap.Float64("academics", result.SubScores.Academics),
	)

	return result
}

// Composite returns the weighted sum of the sub-scores rounded to one decimal
// and clamped to [0, 100].
func Composite(sub ats.SubScores) float64 {
	total := sub.Skills*WeightSkills +
		sub.Experience*WeightExperience +
		sub.Compensation*WeightCompensation +
		sub.Responsibilities*WeightResponsibilities +
		sub.Academics*WeightAcademics

	if math.IsNaN(total) {
		return 0
	}
	return clamp(round1(total), 0, 100)
}

func failureResult(err error) *ats.MatchResult {
	return &ats.MatchResult{
		Score:                 0,
		MatchedSkills:         []string{},
		MissingSkills:         []string{},
		ExtraSkills:           []string{},
		ExperienceFeedback:    fmt.Sprintf("Error calculating experience match: %v", err),
		CompensationFeedback:  fmt.Sprintf("Error calculating CTC match: %v", err),
		AcademicFeedback:      fmt.Sprintf("Error calculating academic alignment: %v", err),
		ResponsibilityMatches: []ats.ResponsibilityMatch{},
		Error:                 "Failed to calculate comprehensive match score.",
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
