package ats

import "strings"

// Seniority is a tier of the fixed career progression. Only the relative
// order of tiers is meaningful.
type Seniority string

const (
	Intern     Seniority = "Intern"
	EntryLevel Seniority = "Entry-Level"
	Junior     Seniority = "Junior"
	Associate  Seniority = "Associate"
	Mid        Seniority = "Mid"
	Senior     Seniority = "Senior"
	Lead       Seniority = "Lead"
	Principal  Seniority = "Principal"
	Architect  Seniority = "Architect"
	Director   Seniority = "Director"
	VP         Seniority = "VP"
	CTO        Seniority = "CTO"
	CEO        Seniority = "CEO"
)

// SeniorityLevels lists every tier from the lowest rank to the highest.
var SeniorityLevels = []Seniority{
	Intern, EntryLevel, Junior, Associate, Mid, Senior, Lead,
	Principal, Architect, Director, VP, CTO, CEO,
}

// Rank returns the position of s in SeniorityLevels. Unknown values rank as
// Entry-Level.
func (s Seniority) Rank() int {
	for i, level := range SeniorityLevels {
		if strings.EqualFold(string(level), string(s)) {
			return i
		}
	}
	return 1
}

func (s Seniority) String() string {
	return string(s)
}
