package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spigell/ats-matcher/internal/ats"
)

const (
	degreeWindow = 50
	awardWindow  = 30
)

var (
	degreePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:bachelor(?:'?s)?|b\.tech|btech|b\.sc|bsc)\b`),
		regexp.MustCompile(`(?i)\b(?:master(?:'?s)?|m\.tech|mtech|m\.sc|msc|mba)\b`),
		regexp.MustCompile(`(?i)\b(?:ph\.?d|doctorate|doctoral)\b`),
		regexp.MustCompile(`(?i)\b(?:diploma|certificate)\b`),
		// Short abbreviations collide with common words, so they must be upper case.
		regexp.MustCompile(`\b(?:B\.?A|B\.?E|B\.?S|M\.?A|M\.?E|M\.?S)\b`),
	}

	institutionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:university|college|institute|school)[ \t]+of[ \t]+\p{L}+(?:[ \t]+\p{L}+){0,4}`),
		regexp.MustCompile(`\b(?:[A-Z][\p{L}.&'\-]*[ \t]+){1,6}(?:University|College|Institute|School)\b`),
		regexp.MustCompile(`\b(?:IIT|IIM|NIT|IISc|BITS)(?:[ \t]+[A-Z]\p{L}+)?`),
		regexp.MustCompile(`(?i)\bindian[ \t]+institute[ \t]+of[ \t]+(?:technology|management)\b`),
	}

	publicationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:published|publication|paper|journal|conference)\b[^\n]*?\b(?:in|at)[ \t]+[\p{L}\p{N} \t\-]+`),
		regexp.MustCompile(`(?i)\b(?:author|co-author|authored)\b[^\n]*?\b(?:paper|article|publication)s?\b`),
		regexp.MustCompile(`(?i)\b(?:ieee|acm|springer|elsevier|nature|science|cvpr|iccv|eccv|neurips|icml|aaai|acl|emnlp|naacl|ijcai|kdd|sigir)\b[^\n]*?\b(?:conference|journal|symposium|workshop)\b`),
		regexp.MustCompile(`(?i)\bdoi:\s*[\w./\-]+`),
	}

	awardPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:award(?:ed|s)?|prize|recognition|honou?rs?|scholarship|fellowship)\b`),
		regexp.MustCompile(`(?i)\b(?:dean'?s[ \t]+list|honou?r[ \t]+roll|summa[ \t]+cum[ \t]+laude|magna[ \t]+cum[ \t]+laude|cum[ \t]+laude|valedictorian|salutatorian)\b`),
		regexp.MustCompile(`(?i)\b(?:gold[ \t]+medal|silver[ \t]+medal|bronze[ \t]+medal|first[ \t]+class|distinction|gpa:?\s*[\d.]+)`),
		regexp.MustCompile(`(?i)\b(?:best[ \t]+paper|best[ \t]+poster|best[ \t]+thesis|hackathon[ \t]+winner|top[ \t]+\d+%)`),
	}
)

// Academic extracts degrees, institutions, publications and awards from a CV.
// Categories without a signal are empty, never nil.
func Academic(text string) *ats.AcademicProfile {
	return &ats.AcademicProfile{
		Degrees:      collect(text, degreePatterns, degreeWindow),
		Institutions: collect(text, institutionPatterns, 0),
		Publications: collect(text, publicationPatterns, 0),
		Awards:       collect(text, awardPatterns, awardWindow),
	}
}

// collect returns the sorted unique matches of patterns. A positive window
// widens every match by that many runes on each side.
func collect(text string, patterns []*regexp.Regexp, window int) []string {
	seen := make(map[string]struct{})
	for _, re := range patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			if window > 0 {
				start, end = widen(text, start, end, window)
			}
			s := collapseSpaces(text[start:end])
			if s == "" {
				continue
			}
			seen[s] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// widen moves byte offsets start and end outwards by n runes.
func widen(text string, start, end, n int) (int, int) {
	for i := 0; i < n && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:start])
		start -= size
	}
	for i := 0; i < n && end < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
	}
	return start, end
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
