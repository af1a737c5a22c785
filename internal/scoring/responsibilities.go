package scoring

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/ats-matcher/internal/ats"
	"github.com/spigell/ats-matcher/internal/nlp"
)

const (
	strongMatch  = 0.7
	partialMatch = 0.3
	snippetLimit = 200
)

// similarityFunc returns, for every responsibility, the best similarity
// against any CV sentence and the index of that sentence (-1 when none).
type similarityFunc func(responsibilities, sentences []string) ([]float64, []int)

func (s *Scorer) compareResponsibilities(ctx context.Context, responsibilities []string, cvText string) (float64, []ats.ResponsibilityMatch) {
	matches := make([]ats.ResponsibilityMatch, 0, len(responsibilities))
	if len(responsibilities) == 0 {
		return neutralScore, matches
	}
	if strings.TrimSpace(cvText) == "" {
		for _, r := range responsibilities {
			matches = append(matches, ats.ResponsibilityMatch{Responsibility: r})
		}
		return neutralScore, matches
	}

	sentences := nlp.Sentences(cvText)
	lowerCV := strings.ToLower(cvText)

	var pending []string
	for _, r := range responsibilities {
		if !strings.Contains(lowerCV, strings.ToLower(r)) {
			pending = append(pending, r)
		}
	}
	best, at := s.similarity(ctx)(pending, sentences)

	total := 0.0
	next := 0
	for _, r := range responsibilities {
		m := ats.ResponsibilityMatch{Responsibility: r}

		if strings.Contains(lowerCV, strings.ToLower(r)) {
			m.Found = true
			m.Confidence = 1
			m.Evidence = snippet(verbatimSentence(r, sentences))
			total += 100
			matches = append(matches, m)
			continue
		}

		sim := clamp(best[next], 0, 1)
		if at[next] >= 0 && sim > 0 {
			m.Evidence = snippet(sentences[at[next]])
		}
		next++

		m.Confidence = sim
		switch {
		case sim >= strongMatch:
			m.Found = true
			total += sim * 100
		case sim > partialMatch:
			total += sim * 50
		}
		matches = append(matches, m)
	}

	return total / float64(len(responsibilities)), matches
}

// similarity selects embeddings when the model is available and falls back to
// keyword coverage otherwise or when the model call fails.
func (s *Scorer) similarity(ctx context.Context) similarityFunc {
	m, ok := s.model.Get(ctx)
	if !ok {
		return lexicalSimilarity
	}

	return func(responsibilities, sentences []string) ([]float64, []int) {
		best, at, err := embeddingSimilarity(ctx, m, responsibilities, sentences)
		if err != nil {
			s.logger.Warn("embedding similarity failed, using keyword coverage",
				zap.String("model", m.Name()),
				zap.Error(err),
			)
			return lexicalSimilarity(responsibilities, sentences)
		}
		return best, at
	}
}

func lexicalSimilarity(responsibilities, sentences []string) ([]float64, []int) {
	keywords := make([]map[string]struct{}, len(sentences))
	for i, sentence := range sentences {
		keywords[i] = nlp.Keywords(sentence)
	}

	best := make([]float64, len(responsibilities))
	at := make([]int, len(responsibilities))
	for i, r := range responsibilities {
		query := nlp.Keywords(r)
		at[i] = -1
		for j := range sentences {
			if c := nlp.Coverage(query, keywords[j]); c > best[i] {
				best[i], at[i] = c, j
			}
		}
	}
	return best, at
}

// embeddingSimilarity embeds responsibilities and sentences in a single call.
func embeddingSimilarity(ctx context.Context, m nlp.Model, responsibilities, sentences []string) ([]float64, []int, error) {
	best := make([]float64, len(responsibilities))
	at := make([]int, len(responsibilities))
	for i := range at {
		at[i] = -1
	}
	if len(responsibilities) == 0 || len(sentences) == 0 {
		return best, at, nil
	}

	texts := append(append([]string{}, responsibilities...), sentences...)
	vectors, err := m.Embed(ctx, texts)
	if err != nil {
		return nil, nil, err
	}
	if len(vectors) != len(texts) {
		return nil, nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(texts), len(vectors))
	}

	offset := len(responsibilities)
	for i := range responsibilities {
		for j := range sentences {
			if c := nlp.Cosine(vectors[i], vectors[offset+j]); c > best[i] {
				best[i], at[i] = c, j
			}
		}
	}
	return best, at, nil
}

func verbatimSentence(r string, sentences []string) string {
	lower := strings.ToLower(r)
	for _, s := range sentences {
		if strings.Contains(strings.ToLower(s), lower) {
			return s
		}
	}
	return r
}

func snippet(s string) string {
	if utf8.RuneCountInString(s) <= snippetLimit {
		return s
	}
	return string([]rune(s)[:snippetLimit]) + "..."
}
