package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/ats-matcher/internal/ats"
)

// Sections returns the human readable report as titled blocks of lines. The
// text and PDF renderers share it.
func Sections(r *Report) []Section {
	res := r.Result
	sections := []Section{
		{
			Title: "Overall",
			Lines: []string{
				fmt.Sprintf("Score: %.1f / 100", res.Score),
				fmt.Sprintf("JD: %s (%d skills, %s, %.1f years)", orDash(r.JD.File), r.JD.Skills, r.JD.Seniority, r.JD.Years),
				fmt.Sprintf("CV: %s (%d skills, %s, %.1f years)", orDash(r.CV.File), r.CV.Skills, r.CV.Seniority, r.CV.Years),
			},
		},
	}
	if res.Error != "" {
		sections[0].Lines = append(sections[0].Lines, "Error: "+res.Error)
	}
	if r.Model != "" {
		sections[0].Lines = append(sections[0].Lines, "Model: "+r.Model)
	}

	sections = append(sections,
		Section{Title: "Sub-scores", Lines: subScoreLines(res.SubScores)},
		Section{Title: "Skills", Lines: SkillLines(res)},
		Section{Title: "Experience", Lines: []string{res.ExperienceFeedback}},
		Section{Title: "Compensation", Lines: []string{res.CompensationFeedback}},
		Section{Title: "Academics", Lines: []string{res.AcademicFeedback}},
		Section{Title: "Responsibilities", Lines: ResponsibilityLines(res)},
	)
	return sections
}

type Section struct {
	Title string
	Lines []string
}

func subScoreLines(s ats.SubScores) []string {
	return []string{
		fmt.Sprintf("skills %.1f", s.Skills),
		fmt.Sprintf("experience %.1f", s.Experience),
		fmt.Sprintf("compensation %.1f", s.Compensation),
		fmt.Sprintf("responsibilities %.1f", s.Responsibilities),
		fmt.Sprintf("academics %.1f", s.Academics),
	}
}

func SkillLines(res *ats.MatchResult) []string {
	return []string{
		"matched: " + joinOrNone(res.MatchedSkills),
		"missing: " + joinOrNone(res.MissingSkills),
		"extra: " + joinOrNone(res.ExtraSkills),
	}
}

func ResponsibilityLines(res *ats.MatchResult) []string {
	if len(res.ResponsibilityMatches) == 0 {
		return []string{"none extracted"}
	}

	lines := make([]string, 0, len(res.ResponsibilityMatches)*2)
	for _, m := range res.ResponsibilityMatches {
		mark := "[ ]"
		if m.Found {
			mark = "[x]"
		}
		lines = append(lines, fmt.Sprintf("%s %s (confidence %.2f)", mark, m.Responsibility, m.Confidence))
		if m.Evidence != "" {
			lines = append(lines, "    evidence: "+m.Evidence)
		}
	}
	return lines
}

func renderText(w io.Writer, r *Report) error {
	var b strings.Builder
	for i, s := range Sections(r) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Title)
		b.WriteString("\n")
		for _, line := range s.Lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
