package scoring

import (
	"sort"
	"strings"

	"github.com/spigell/ats-matcher/internal/extract"
)

type skillComparison struct {
	matched, missing, extra []string
	score                   float64
}

func compareSkills(jdSkills, cvSkills []string) skillComparison {
	jd := toSet(jdSkills)
	cv := toSet(cvSkills)

	cmp := skillComparison{
		matched: []string{},
		missing: []string{},
		extra:   []string{},
	}
	for s := range jd {
		if _, ok := cv[s]; ok {
			cmp.matched = append(cmp.matched, s)
		} else {
			cmp.missing = append(cmp.missing, s)
		}
	}
	for s := range cv {
		if _, ok := jd[s]; !ok {
			cmp.extra = append(cmp.extra, s)
		}
	}
	sort.Strings(cmp.matched)
	sort.Strings(cmp.missing)
	sort.Strings(cmp.extra)

	cmp.score = skillsScore(jd, cv, len(cmp.matched))
	return cmp
}

// skillsScore weighs only vocabulary skills when the JD names any, otherwise
// the plain overlap.
func skillsScore(jd, cv map[string]struct{}, matched int) float64 {
	if len(jd) == 0 {
		return neutralScore
	}

	crucial, crucialMatched := 0, 0
	for s := range jd {
		if !extract.InVocabulary(s) {
			continue
		}
		crucial++
		if _, ok := cv[s]; ok {
			crucialMatched++
		}
	}
	if crucial > 0 {
		return 100 * float64(crucialMatched) / float64(crucial)
	}

	return 100 * float64(matched) / float64(len(jd))
}

func toSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}
