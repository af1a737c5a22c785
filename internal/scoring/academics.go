package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/ats-matcher/internal/ats"
)

func compareAcademics(a *ats.AcademicProfile) (float64, string) {
	score := neutralScore
	if a == nil {
		return score, "Limited academic information available."
	}

	var parts []string
	if n := len(a.Degrees); n > 0 {
		parts = append(parts, fmt.Sprintf("Education: %d degree(s) found.", n))
		score += 10
	}
	if n := len(a.Institutions); n > 0 {
		parts = append(parts, fmt.Sprintf("University mentions: %d.", n))
	}
	if n := len(a.Publications); n > 0 {
		parts = append(parts, fmt.Sprintf("Research: %d publication(s).", n))
		score += 15
	}
	if n := len(a.Awards); n > 0 {
		parts = append(parts, fmt.Sprintf("Recognition: %d award(s)/achievement(s).", n))
		score += 10
	}

	if len(parts) == 0 {
		return score, "Limited academic information available."
	}
	return math.Min(100, score), strings.Join(parts, " ")
}
