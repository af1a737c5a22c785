package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/ats-matcher/internal/ats"
)

const (
	num       = `\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`
	rangeSep  = `\s*(?:-|–|to)\s*`
	symbol    = `(?:[$€£₹]|\brs\.?)`
	alphaUnit = `(?:lpa|k|thousand|lakhs?|lacs?|crores?|usd|eur|gbp|inr)\b`
	scaleUnit = `(?:lpa|k|thousand|lakhs?|lacs?|crores?)\b`
	perYear   = `(?:\s*(?:p\.?a\.?|per\s+annum|annually|yearly))?`
)

// Rule is one salary-shaped template. Rules are tried in ascending Priority
// and the first one yielding a parseable amount wins.
type Rule struct {
	Name     string
	Priority int
	re       *regexp.Regexp
}

// CompensationRules is the ordered rule list, most specific first.
var CompensationRules = []Rule{
	{
		Name:     "amount_with_unit",
		Priority: 1,
		re: regexp.MustCompile(`(?i)(?:` + symbol + `\s*)?(?P<min>` + num + `)(?:\s*` + scaleUnit + `)?(?:` + rangeSep + symbol + `?\s*(?P<max>` + num + `))?` +
			`\s*(?P<unit>` + alphaUnit + `|[$€£₹])` + perYear),
	},
	{
		Name:     "salary_keyword",
		Priority: 2,
		re: regexp.MustCompile(`(?i)\b(?:ctc|salary|compensation|expected|package|pay|remuneration)\b(?:\s+range)?\s*[:\-]?\s*` +
			`(?:(?:of|from|is)\s+)?(?:(?:about|around|up\s+to|upto|min|max)\s+)?` + symbol + `?\s*(?P<min>` + num + `)` +
			`(?:` + rangeSep + symbol + `?\s*(?P<max>` + num + `))?(?:\s*(?P<unit>` + alphaUnit + `))?` + perYear),
	},
	{
		Name:     "currency_symbol",
		Priority: 3,
		re: regexp.MustCompile(`(?i)` + symbol + `\s*(?P<min>` + num + `)(?:` + rangeSep + symbol + `?\s*(?P<max>` + num + `))?` +
			`(?:\s*(?P<unit>` + scaleUnit + `))?`),
	},
	{
		Name:     "amount_scale",
		Priority: 4,
		re:       regexp.MustCompile(`(?i)(?P<min>` + num + `)\s*(?P<unit>` + scaleUnit + `)`),
	},
}

// currencyCues are checked against the matched snippet in this order.
var currencyCues = []struct {
	currency string
	re       *regexp.Regexp
}{
	{"INR", regexp.MustCompile(`(?i)₹|\binr\b|\brupees?\b|\blpa\b|\blakhs?\b|\blacs?\b|\bcrores?\b|\brs\b`)},
	{"EUR", regexp.MustCompile(`(?i)€|\beur\b|\beuros?\b`)},
	{"GBP", regexp.MustCompile(`(?i)£|\bgbp\b|\bpounds?\b`)},
	{"USD", regexp.MustCompile(`(?i)\$|\busd\b|\bdollars?\b|per\s+annum|\byearly\b|\bannually\b`)},
}

const defaultCurrency = "USD"

// Compensation returns the first salary range found in text, or nil.
func Compensation(text string) *ats.Compensation {
	for _, rule := range CompensationRules {
		if c := rule.find(text); c != nil {
			return c
		}
	}
	return nil
}

func (r Rule) find(text string) *ats.Compensation {
	names := r.re.SubexpNames()
	for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
		groups := make(map[string]string, 3)
		for i, name := range names {
			if name == "" || loc[2*i] < 0 {
				continue
			}
			groups[name] = text[loc[2*i]:loc[2*i+1]]
		}

		lo, ok := parseAmount(groups["min"])
		if !ok {
			continue
		}
		hi := lo
		if v, ok := parseAmount(groups["max"]); ok {
			hi = v
		}

		snippet := strings.TrimSpace(text[loc[0]:loc[1]])
		multiplier, currency := unitScale(strings.ToLower(groups["unit"]))
		if currency == "" {
			currency = detectCurrency(snippet)
		}

		return ats.NewCompensation(lo*multiplier, hi*multiplier, currency, snippet)
	}
	return nil
}

func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// unitScale returns the multiplier of unit and the currency it implies, if any.
func unitScale(unit string) (float64, string) {
	switch {
	case unit == "lpa", strings.HasPrefix(unit, "lakh"), strings.HasPrefix(unit, "lac"):
		return 100_000, "INR"
	case strings.HasPrefix(unit, "crore"):
		return 10_000_000, "INR"
	case unit == "k", unit == "thousand":
		return 1_000, ""
	default:
		return 1, ""
	}
}

func detectCurrency(snippet string) string {
	for _, cue := range currencyCues {
		if cue.re.MatchString(snippet) {
			return cue.currency
		}
	}
	return defaultCurrency
}
