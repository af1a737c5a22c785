package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/ats-matcher/internal/ats"
)

const yearUnit = `(?:years?|yrs?)`

// yearPatterns are tried in order; every match contributes a candidate.
var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*` + yearUnit + `\s*(?:of\s*)?(?:experience|exp|ex)\b`),
	regexp.MustCompile(`(?i)\b(?:experience|exp|ex)\b.*?(\d+(?:\.\d+)?)\+?\s*` + yearUnit + `\b`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*` + yearUnit + `\s*(?:in|with)\b`),
	regexp.MustCompile(`(?i)\bover\s+(\d+(?:\.\d+)?)\s*` + yearUnit + `\b`),
	regexp.MustCompile(`(?i)\bmore\s+than\s+(\d+(?:\.\d+)?)\s*` + yearUnit + `\b`),
	regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)\+?\s*` + yearUnit + `\b`),
}

type seniorityRule struct {
	level ats.Seniority
	re    *regexp.Regexp
}

var seniorityKeywords = []struct {
	level    ats.Seniority
	keywords []string
}{
	{ats.Intern, []string{"intern", "internship", "trainee"}},
	{ats.EntryLevel, []string{"entry level", "entry-level", "fresher", "graduate trainee"}},
	{ats.Junior, []string{"junior", "jr"}},
	{ats.Associate, []string{"associate"}},
	{ats.Mid, []string{"mid level", "mid-level", "intermediate"}},
	{ats.Senior, []string{"senior", "sr"}},
	{ats.Lead, []string{"lead", "team lead", "tech lead", "technical lead"}},
	{ats.Principal, []string{"principal", "staff", "expert"}},
	{ats.Architect, []string{"architect", "solution architect", "system architect"}},
	{ats.Director, []string{"director", "head of"}},
	{ats.VP, []string{"vp", "vice president"}},
	{ats.CTO, []string{"cto", "chief technology officer", "chief technical officer"}},
	{ats.CEO, []string{"ceo", "chief executive officer"}},
}

var seniorityRules = buildSeniorityRules()

func buildSeniorityRules() []seniorityRule {
	rules := make([]seniorityRule, 0, len(seniorityKeywords))
	for _, tier := range seniorityKeywords {
		alts := make([]string, len(tier.keywords))
		for i, kw := range tier.keywords {
			words := strings.Fields(kw)
			for j, w := range words {
				words[j] = regexp.QuoteMeta(w)
			}
			alts[i] = strings.Join(words, `\s+`)
		}
		rules = append(rules, seniorityRule{
			level: tier.level,
			re:    regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`),
		})
	}
	return rules
}

// Experience returns the largest number of years mentioned in text together
// with a seniority tier. Keyword evidence wins over the tier inferred from
// years.
func Experience(text string) ats.Experience {
	exp := ats.DefaultExperience()
	exp.Years = Years(text)

	if level, ok := SeniorityFromKeywords(text); ok {
		exp.Seniority = level
		return exp
	}
	exp.Seniority = SeniorityFromYears(exp.Years)

	return exp
}

// Years returns the maximum of all years-like quantities in text, or 0.
func Years(text string) float64 {
	var years float64
	for _, re := range yearPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, g := range m[1:] {
				if g == "" {
					continue
				}
				v, err := strconv.ParseFloat(g, 64)
				if err != nil {
					continue
				}
				if v > years {
					years = v
				}
			}
		}
	}
	return years
}

// SeniorityFromKeywords returns the highest ranked tier whose keywords are
// present in text as whole words.
func SeniorityFromKeywords(text string) (ats.Seniority, bool) {
	for i := len(seniorityRules) - 1; i >= 0; i-- {
		if seniorityRules[i].re.MatchString(text) {
			return seniorityRules[i].level, true
		}
	}
	return "", false
}

func SeniorityFromYears(years float64) ats.Seniority {
	switch {
	case years >= 8:
		return ats.Principal
	case years >= 5:
		return ats.Senior
	case years >= 2:
		return ats.Mid
	default:
		return ats.EntryLevel
	}
}
