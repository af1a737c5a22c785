package scoring

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/ats-matcher/internal/ats"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
}

func compareCompensation(jd, cv *ats.Compensation) (float64, string) {
	if jd == nil || cv == nil {
		return neutralScore, "CTC information not available for one or both documents for comparison."
	}
	if jd.Currency != cv.Currency {
		return 20, fmt.Sprintf("Warning: CTC currencies differ (JD: %s, CV: %s). Cannot compare directly.",
			jd.Currency, cv.Currency)
	}

	p := message.NewPrinter(language.English)
	sym := currencySymbol(jd.Currency)
	cvRange := p.Sprintf("%s %.0f - %.0f", sym, cv.Min, cv.Max)
	jdRange := p.Sprintf("%s %.0f - %.0f", sym, jd.Min, jd.Max)
	jdMin := p.Sprintf("%s %.0f", sym, jd.Min)
	jdMax := p.Sprintf("%s %.0f", sym, jd.Max)

	switch {
	case cv.Min >= jd.Min && cv.Max <= jd.Max:
		return 100, fmt.Sprintf("Excellent alignment: Candidate's expected CTC (%s) is perfectly within the JD's range (%s).",
			cvRange, jdRange)

	case cv.Max < jd.Min:
		return 90, fmt.Sprintf("Favorable: Candidate's expected CTC (%s) is below the JD's minimum (%s).", cvRange, jdMin)

	case cv.Min < jd.Max && cv.Max > jd.Max:
		score := neutralScore
		overlap := math.Min(cv.Max, jd.Max) - math.Max(cv.Min, jd.Min)
		if overlap > 0 && jd.Max > jd.Min {
			score = 50 + 50*overlap/(jd.Max-jd.Min)
		}
		return score, fmt.Sprintf("Moderate overlap: Candidate's expected CTC (%s) partially overlaps with JD range (%s), leaning slightly higher.",
			cvRange, jdRange)

	case cv.Min > jd.Max:
		gap := 100.0
		if jd.Max > 0 {
			gap = (cv.Min - jd.Max) / jd.Max * 100
		}
		if gap <= 15 {
			return 70, fmt.Sprintf("Slight mismatch: Candidate's expected CTC (%s) is slightly above the JD's maximum (%s). May be negotiable.",
				cvRange, jdMax)
		}
		return 30, fmt.Sprintf("Significant mismatch: Candidate's expected CTC (%s) is significantly above the JD's maximum (%s). Low alignment.",
			cvRange, jdMax)

	default:
		return neutralScore, "CTC comparison inconclusive due to complex ranges."
	}
}

func currencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}
