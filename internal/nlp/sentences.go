package nlp

import (
	"strings"
	"unicode"
)

// Sentences splits text into sentences. Every line is treated as a boundary,
// since bullet lists rarely end with punctuation. Inside a line, a sentence
// ends at ".", "!" or "?" followed by whitespace and an upper-case letter or
// a digit.
func Sentences(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, splitLine(line)...)
	}
	return out
}

func splitLine(line string) []string {
	rs := []rune(line)
	var out []string
	start := 0
	for i := 0; i < len(rs); i++ {
		if rs[i] != '.' && rs[i] != '!' && rs[i] != '?' {
			continue
		}
		j := i + 1
		if j >= len(rs) || !unicode.IsSpace(rs[j]) {
			continue
		}
		for j < len(rs) && unicode.IsSpace(rs[j]) {
			j++
		}
		if isListMarker(rs[start:i]) {
			continue
		}
		if j < len(rs) && (unicode.IsUpper(rs[j]) || unicode.IsDigit(rs[j])) {
			if s := strings.TrimSpace(string(rs[start : i+1])); s != "" {
				out = append(out, s)
			}
			start = j
			i = j - 1
		}
	}
	if s := strings.TrimSpace(string(rs[start:])); s != "" {
		out = append(out, s)
	}
	return out
}

// isListMarker reports whether rs is an item number such as "1" or "b", so
// "1. Own the pipeline" stays one sentence.
func isListMarker(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	if len(rs) == 1 && unicode.IsLetter(rs[0]) {
		return true
	}
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
