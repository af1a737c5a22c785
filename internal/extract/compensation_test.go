package extract

import "testing"

func TestCompensation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		min, max float64
		currency string
	}{
		{"lpa", "Offering 12 LPA", 1_200_000, 1_200_000, "INR"},
		{"dollar thousands", "Expected compensation $50k", 50_000, 50_000, "USD"},
		{"lpa range", "CTC: 10-15 LPA", 1_000_000, 1_500_000, "INR"},
		{"crore", "package of 2 crore", 20_000_000, 20_000_000, "INR"},
		{"euro symbol", "Gross salary €60k - €70k per annum", 60_000, 70_000, "EUR"},
		{"currency code", "Range 120,000 to 150,000 GBP", 120_000, 150_000, "GBP"},
		{"keyword without unit", "Salary: 90000", 90_000, 90_000, "USD"},
		{"rupee symbol", "Current pay ₹ 800000", 800_000, 800_000, "INR"},
		{"reversed bounds are swapped", "budget 20-10 lakhs", 1_000_000, 2_000_000, "INR"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Compensation(tt.text)
			if got == nil {
				t.Fatalf("expected compensation for %q", tt.text)
			}
			if got.Min != tt.min || got.Max != tt.max {
				t.Fatalf("expected %v..%v, got %v..%v", tt.min, tt.max, got.Min, got.Max)
			}
			if got.Currency != tt.currency {
				t.Fatalf("expected currency %s, got %s", tt.currency, got.Currency)
			}
			if got.Source == "" {
				t.Fatalf("expected source snippet to be recorded")
			}
		})
	}
}

func TestCompensationAbsent(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"We run 3 k8s clusters and expect 5 years of experience.",
		"Competitive salary and great culture.",
	} {
		if got := Compensation(text); got != nil {
			t.Fatalf("expected no compensation for %q, got %+v", text, got)
		}
	}
}

func TestCompensationRulesOrdered(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(CompensationRules); i++ {
		if CompensationRules[i-1].Priority >= CompensationRules[i].Priority {
			t.Fatalf("rules must be sorted by priority: %s before %s",
				CompensationRules[i-1].Name, CompensationRules[i].Name)
		}
	}
}
