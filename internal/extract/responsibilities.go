package extract

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spigell/ats-matcher/internal/nlp"
)

const (
	MaxResponsibilities  = 15
	minResponsibilityLen = 15
	maxResponsibilityLen = 200
)

var (
	responsibilityVerbs = []string{
		"develop", "design", "implement", "create", "build", "maintain",
		"manage", "lead", "coordinate", "oversee", "supervise", "direct",
		"analyze", "optimize", "improve", "enhance", "troubleshoot",
		"collaborate", "work with", "partner with", "communicate",
		"ensure", "deliver", "execute", "perform", "conduct",
		"architect", "define", "integrate", "test", "deploy", "monitor",
	}

	requirementIndicators = []string{
		"required", "must have", "should have", "responsible for",
		"duties include", "key responsibilities", "main tasks", "you will",
		"ability to", "able to", "experience in", "demonstrated ability",
	}

	verbPattern   = regexp.MustCompile(`(?i)\b(?:` + strings.Join(inflected(responsibilityVerbs), "|") + `)\b`)
	bulletPattern = regexp.MustCompile(`^\s*(?:[-*•▪◦‣+]|\d+[.)]|[a-zA-Z][.)])\s+`)
)

// inflected turns every verb into a pattern that also accepts its -s, -ed and
// -ing forms. Only the first word of a phrase is inflected.
func inflected(verbs []string) []string {
	out := make([]string, 0, len(verbs))
	for _, v := range verbs {
		words := strings.Fields(v)
		head := words[0]

		var p string
		if strings.HasSuffix(head, "e") && !strings.HasSuffix(head, "ee") {
			p = regexp.QuoteMeta(head[:len(head)-1]) + `(?:e|es|ed|ing)`
		} else {
			p = regexp.QuoteMeta(head) + `(?:s|es|ed|ing)?`
		}
		for _, w := range words[1:] {
			p += `\s+` + regexp.QuoteMeta(w)
		}
		out = append(out, p)
	}
	return out
}

// Responsibilities returns the duty and requirement statements of a JD, the
// longest first and at most MaxResponsibilities of them.
func Responsibilities(ctx context.Context, text string, model *nlp.Handle) []string {
	out, _ := ExtractResponsibilities(ctx, text, model)
	return out
}

// ExtractResponsibilities is Responsibilities that also reports whether the
// main clause reduction had to be skipped.
func ExtractResponsibilities(ctx context.Context, text string, model *nlp.Handle) ([]string, error) {
	candidates := responsibilityCandidates(text)
	if len(candidates) == 0 {
		return []string{}, nil
	}

	var err error
	if m, ok := model.Get(ctx); ok {
		candidates, err = reduceToMainClauses(ctx, m, candidates)
	}

	return rankResponsibilities(candidates), err
}

func responsibilityCandidates(text string) []string {
	var candidates []string
	for _, sentence := range nlp.Sentences(text) {
		if strings.HasSuffix(sentence, ":") {
			continue
		}
		if !looksLikeResponsibility(sentence) {
			continue
		}

		clean := strings.TrimSpace(bulletPattern.ReplaceAllString(sentence, ""))
		if !validResponsibilityLen(clean) {
			continue
		}
		candidates = append(candidates, clean)
	}
	return candidates
}

func looksLikeResponsibility(sentence string) bool {
	if verbPattern.MatchString(sentence) || bulletPattern.MatchString(sentence) {
		return true
	}
	lower := strings.ToLower(sentence)
	for _, ind := range requirementIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

func validResponsibilityLen(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minResponsibilityLen && n <= maxResponsibilityLen
}

// reduceToMainClauses asks the model for all candidates in one call. A clause
// that comes back empty or out of bounds keeps the original sentence.
func reduceToMainClauses(ctx context.Context, m nlp.Model, candidates []string) ([]string, error) {
	clauses, err := m.MainClauses(ctx, candidates)
	if err != nil {
		return candidates, degraded(fmt.Errorf("main clause reduction with %s: %w", m.Name(), err))
	}
	if len(clauses) != len(candidates) {
		return candidates, degraded(fmt.Errorf("main clause reduction with %s: got %d clauses for %d sentences",
			m.Name(), len(clauses), len(candidates)))
	}

	out := make([]string, len(candidates))
	for i, c := range clauses {
		c = strings.TrimSpace(c)
		if !validResponsibilityLen(c) {
			c = candidates[i]
		}
		out[i] = c
	}
	return out, nil
}

func rankResponsibilities(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i]) > utf8.RuneCountInString(out[j])
	})

	if len(out) > MaxResponsibilities {
		out = out[:MaxResponsibilities]
	}
	return out
}
