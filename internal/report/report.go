// Package report renders match results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spigell/ats-matcher/internal/ats"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document describes one of the compared inputs.
type Document struct {
	File       string        `json:"file" yaml:"file"`
	Bytes      int           `json:"bytes" yaml:"bytes"`
	Skills     int           `json:"skills" yaml:"skills"`
	Years      float64       `json:"years" yaml:"years"`
	Seniority  ats.Seniority `json:"seniority" yaml:"seniority"`
	Statements int           `json:"responsibilities,omitempty" yaml:"responsibilities,omitempty"`
}

// Report is a match result together with what it was computed from.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at" yaml:"generated_at"`
	JD          Document         `json:"jd" yaml:"jd"`
	CV          Document         `json:"cv" yaml:"cv"`
	Model       string           `json:"model,omitempty" yaml:"model,omitempty"`
	Result      *ats.MatchResult `json:"result" yaml:"result"`
}

// New summarizes both documents next to the result.
func New(jdFile string, jd *ats.ParsedDocument, cvFile string, cv *ats.ParsedDocument, result *ats.MatchResult) *Report {
	return &Report{
		GeneratedAt: time.Now().UTC(),
		JD:          Summarize(jdFile, jd),
		CV:          Summarize(cvFile, cv),
		Result:      result,
	}
}

func Summarize(file string, doc *ats.ParsedDocument) Document {
	d := Document{File: file}
	if doc == nil {
		return d
	}
	d.Bytes = len(doc.RawText)
	d.Skills = len(doc.Skills)
	d.Years = doc.Experience.Years
	d.Seniority = doc.Experience.Seniority
	d.Statements = len(doc.Responsibilities)
	return d
}

// Render writes the report in the requested format.
func Render(w io.Writer, r *Report, format string) error {
	if r == nil || r.Result == nil {
		return fmt.Errorf("report is empty")
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return renderText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// DumpToTmpFile writes the report into a new temporary file and returns its name.
func DumpToTmpFile(r *Report, format string) (string, error) {
	ext := strings.ToLower(strings.TrimSpace(format))
	if ext == "" || ext == FormatText {
		ext = "txt"
	}

	file, err := os.CreateTemp("", "ats_match_*."+ext)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Render(file, r, format); err != nil {
		return "", err
	}
	return file.Name(), nil
}
