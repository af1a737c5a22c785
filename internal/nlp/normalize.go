package nlp

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces     = regexp.MustCompile(`\s+`)
	reDisallowed = regexp.MustCompile(`[^\p{L}\p{N}\s\-.,()#]+`)
)

// Normalize turns free text into a bag-of-words friendly form:
//   - lower case without diacritics
//   - only letters, digits and "- . , ( ) #" survive, everything else is a space
//   - standalone numbers, stopwords and tokens of two runes or less are dropped
//
// Normalize never panics. If a stage fails, the output of the last completed
// stage is returned.
func Normalize(text string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = strings.TrimSpace(out)
		}
	}()

	out = strings.ToLower(text)
	out = foldMarks(out)
	out = reDisallowed.ReplaceAllString(out, " ")
	out = strings.TrimSpace(reSpaces.ReplaceAllString(out, " "))
	out = strings.Join(filterTokens(out), " ")

	return out
}

// Keywords returns the unique tokens of the normalized text.
func Keywords(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(Normalize(text)) {
		set[tok] = struct{}{}
	}
	return set
}

func foldMarks(s string) string {
	// Transformers keep state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func filterTokens(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '(' || r == ')'
	})

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		tok = strings.Trim(tok, ".-")
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if !hasLetter(tok) {
			continue
		}
		if IsStopword(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
