package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spigell/ats-matcher/internal/ats"
)

func compareExperience(jd, cv ats.Experience) (float64, string) {
	score := yearsScore(jd.Years, cv.Years)

	jdRank, cvRank := jd.Seniority.Rank(), cv.Seniority.Rank()
	if cvRank >= jdRank {
		score = math.Min(100, score+10)
	} else {
		score = math.Max(0, score-15)
	}

	return score, experienceFeedback(jd, cv, cvRank >= jdRank)
}

func yearsScore(jdYears, cvYears float64) float64 {
	if jdYears <= 0 {
		if cvYears > 0 {
			return 80
		}
		return neutralScore
	}

	switch {
	case cvYears >= jdYears:
		return 100
	case cvYears >= jdYears*0.9:
		return 90
	case cvYears >= jdYears*0.7:
		return 70
	case cvYears >= jdYears*0.5:
		return 50
	default:
		return math.Max(0, cvYears/jdYears*40)
	}
}

func experienceFeedback(jd, cv ats.Experience, seniorityMet bool) string {
	candidate := fmt.Sprintf("Candidate's %s years of %s experience", formatYears(cv.Years), cv.Seniority)
	requirement := fmt.Sprintf("the JD's %s+ years %s requirement", formatYears(jd.Years), jd.Seniority)

	switch {
	case cv.Years >= jd.Years && seniorityMet:
		return fmt.Sprintf("Excellent match: %s matches or exceeds %s.", candidate, requirement)
	case cv.Years >= jd.Years*0.7:
		return fmt.Sprintf("Good match: %s is closely aligned with %s.", candidate, requirement)
	default:
		return fmt.Sprintf("Experience gap: %s is below %s. Consider for junior roles or if other areas compensate.",
			candidate, requirement)
	}
}

func formatYears(y float64) string {
	return strconv.FormatFloat(y, 'f', -1, 64)
}
