package ats

// MatchResult is the explainable outcome of scoring one CV against one JD.
type MatchResult struct {
	Score float64 `json:"score" yaml:"score"`

	MatchedSkills []string `json:"matched_skills" yaml:"matched_skills"`
	MissingSkills []string `json:"missing_skills" yaml:"missing_skills"`
	ExtraSkills   []string `json:"extra_skills" yaml:"extra_skills"`

	ExperienceFeedback   string `json:"experience_feedback" yaml:"experience_feedback"`
	CompensationFeedback string `json:"compensation_feedback" yaml:"compensation_feedback"`
	AcademicFeedback     string `json:"academic_feedback" yaml:"academic_feedback"`

	ResponsibilityMatches []ResponsibilityMatch `json:"responsibility_matches" yaml:"responsibility_matches"`

	SubScores SubScores `json:"sub_scores" yaml:"sub_scores"`
	// Error is only set when scoring failed and the result is a placeholder.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type ResponsibilityMatch struct {
	Responsibility string  `json:"responsibility" yaml:"responsibility"`
	Found          bool    `json:"found" yaml:"found"`
	Evidence       string  `json:"evidence_snippet" yaml:"evidence_snippet"`
	Confidence     float64 `json:"confidence" yaml:"confidence"`
}

// SubScores are the per-dimension scores in [0, 100] before weighting.
type SubScores struct {
	Skills           float64 `json:"skills" yaml:"skills"`
	Experience       float64 `json:"experience" yaml:"experience"`
	Compensation     float64 `json:"compensation" yaml:"compensation"`
	Responsibilities float64 `json:"responsibilities" yaml:"responsibilities"`
	Academics        float64 `json:"academics" yaml:"academics"`
}
