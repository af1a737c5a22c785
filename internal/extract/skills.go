package extract

import (
	"regexp"
	"sort"
	"strings"
)

var (
	cuePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:proficient|experienced|expert|skilled)\s+(?:in|with)\s+([\p{L}\p{N} \t\-.#+/,;]+)`),
		regexp.MustCompile(`(?i)\b(?:knowledge|experience)\s+(?:of|in|with)\s+([\p{L}\p{N} \t\-.#+/,;]+)`),
		regexp.MustCompile(`(?i)\b(?:using|worked\s+with|utilized)\s+([\p{L}\p{N} \t\-.#+/,;]+)`),
		regexp.MustCompile(`(?i)\b(?:skills|technologies|proficiencies)\s*:\s*([\p{L}\p{N} \t\-.#+/,;]+)`),
	}
	cueSplit = regexp.MustCompile(`[,/;]`)

	// extendedStages run after the direct vocabulary match and may fail as a
	// group without losing it.
	extendedStages = []func(raw string, found map[string]struct{}){
		phraseSkills,
		cueSkills,
		structuralSkills,
	}

	structuralPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b([a-z][a-z0-9]*\.js)\b`),
		regexp.MustCompile(`(?i)\b([a-z]+sql)\b`),
		regexp.MustCompile(`(?i)\b([a-z]+db)\b`),
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])([a-z]+\+\+)`),
		regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])([a-z]+#)(?:$|[^\p{L}\p{N}])`),
	}
)

// Skills returns the lowercase, deduplicated and sorted skill set of raw.
func Skills(raw string) []string {
	skills, _ := ExtractSkills(raw)
	return skills
}

// ExtractSkills is Skills that also reports degradation. When the phrase,
// cue or structural stages fail, the direct vocabulary matches are returned
// together with an ErrDegraded error.
func ExtractSkills(raw string) ([]string, error) {
	found := make(map[string]struct{})
	matchTerms(raw, single, found)

	extra, err := extendedSkills(raw)
	if err == nil {
		for s := range extra {
			found[s] = struct{}{}
		}
	}

	return finalizeSkills(found), err
}

func extendedSkills(raw string) (found map[string]struct{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			found, err = nil, degraded(r)
		}
	}()

	found = make(map[string]struct{})
	for _, stage := range extendedStages {
		stage(raw, found)
	}

	return found, nil
}

func matchTerms(text string, matchers []termMatcher, found map[string]struct{}) {
	for _, m := range matchers {
		if m.re.MatchString(text) {
			found[m.canonical] = struct{}{}
		}
	}
}

func phraseSkills(raw string, found map[string]struct{}) {
	matchTerms(raw, phrases, found)
}

// containedTerms adds every entry or alias longer than two characters that
// occurs anywhere inside candidate, so "reactjs" still yields react.
func containedTerms(candidate string, found map[string]struct{}) {
	for _, m := range single {
		if len(m.term) <= shortTermLen {
			continue
		}
		if strings.Contains(candidate, m.term) {
			found[m.canonical] = struct{}{}
		}
	}
}

func cueSkills(raw string, found map[string]struct{}) {
	for _, re := range cuePatterns {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			for _, candidate := range cueSplit.Split(m[1], -1) {
				candidate = strings.Trim(strings.ToLower(strings.TrimSpace(candidate)), ".")
				if candidate == "" {
					continue
				}
				if InVocabulary(candidate) {
					found[Canonical(candidate)] = struct{}{}
					continue
				}
				containedTerms(strings.Join(strings.Fields(candidate), " "), found)
			}
		}
	}
}

func structuralSkills(raw string, found map[string]struct{}) {
	for _, re := range structuralPatterns {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			found[strings.ToLower(m[1])] = struct{}{}
		}
	}
}

func finalizeSkills(found map[string]struct{}) []string {
	skills := make([]string, 0, len(found))
	for s := range found {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, noise := noiseWords[s]; noise {
			continue
		}
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return dedupSorted(skills)
}

func dedupSorted(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i > 0 && s == in[i-1] {
			continue
		}
		out = append(out, s)
	}
	return out
}
