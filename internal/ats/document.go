package ats

// ParsedDocument holds the signals extracted from a single JD or CV.
type ParsedDocument struct {
	RawText        string        `json:"-" yaml:"-"`
	NormalizedText string        `json:"normalized_text" yaml:"normalized_text"`
	Skills         []string      `json:"skills" yaml:"skills"`
	Experience     Experience    `json:"experience" yaml:"experience"`
	Compensation   *Compensation `json:"compensation,omitempty" yaml:"compensation,omitempty"`

	// Academic is set for CVs only.
	Academic *AcademicProfile `json:"academic_profile,omitempty" yaml:"academic_profile,omitempty"`
	// Responsibilities is set for JDs only, most specific statements first.
	Responsibilities []string `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty"`

	IsJD bool `json:"is_jd" yaml:"is_jd"`
}

type Experience struct {
	Years     float64   `json:"years" yaml:"years"`
	Seniority Seniority `json:"seniority" yaml:"seniority"`
}

// DefaultExperience is used when nothing could be extracted.
func DefaultExperience() Experience {
	return Experience{Years: 0, Seniority: EntryLevel}
}

// Compensation is an annual pay range. Min never exceeds Max.
type Compensation struct {
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Currency string  `json:"currency" yaml:"currency"`
	// Source is the text snippet the range was read from.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// NewCompensation builds a range, swapping the bounds when they are reversed.
func NewCompensation(lo, hi float64, currency, source string) *Compensation {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Compensation{Min: lo, Max: hi, Currency: currency, Source: source}
}

type AcademicProfile struct {
	Degrees      []string `json:"degrees" yaml:"degrees"`
	Institutions []string `json:"institutions" yaml:"institutions"`
	Publications []string `json:"publications" yaml:"publications"`
	Awards       []string `json:"awards" yaml:"awards"`
}

// EmptyAcademicProfile returns a profile with all sets initialized.
func EmptyAcademicProfile() *AcademicProfile {
	return &AcademicProfile{
		Degrees:      []string{},
		Institutions: []string{},
		Publications: []string{},
		Awards:       []string{},
	}
}
