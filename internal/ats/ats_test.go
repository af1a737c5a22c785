package ats

import "testing"

func TestSeniorityRank(t *testing.T) {
	t.Parallel()

	for i := 1; i < len(SeniorityLevels); i++ {
		if SeniorityLevels[i-1].Rank() >= SeniorityLevels[i].Rank() {
			t.Fatalf("%s must rank below %s", SeniorityLevels[i-1], SeniorityLevels[i])
		}
	}

	if got := Seniority("senior").Rank(); got != Senior.Rank() {
		t.Fatalf("expected case-insensitive rank, got %d", got)
	}
	if got := Seniority("wizard").Rank(); got != EntryLevel.Rank() {
		t.Fatalf("expected unknown to rank as Entry-Level, got %d", got)
	}
}

func TestNewCompensationSwapsBounds(t *testing.T) {
	t.Parallel()

	c := NewCompensation(1_500_000, 1_000_000, "INR", "10-15 lpa")
	if c.Min != 1_000_000 || c.Max != 1_500_000 {
		t.Fatalf("expected swapped bounds, got %+v", c)
	}
}
