package extract

import (
	"strings"
	"testing"
)

const sampleCV = `Jane Doe
M.Tech in Computer Science, Indian Institute of Technology, 2016
Bachelor of Engineering from Stanford University
Published a paper in Journal of Systems Research
IEEE International Conference on Data Engineering
doi: 10.1145/3299869.3319855
Gold medal for academic excellence, Dean's List 2014
Awarded the Google PhD Fellowship`

func TestAcademic(t *testing.T) {
	t.Parallel()

	got := Academic(sampleCV)

	tests := []struct {
		name     string
		values   []string
		contains string
	}{
		{"degree context", got.Degrees, "M.Tech in Computer Science"},
		{"bachelor", got.Degrees, "Bachelor of Engineering"},
		{"iit", got.Institutions, "Indian Institute of Technology"},
		{"capitalized university", got.Institutions, "Stanford University"},
		{"publication venue", got.Publications, "Journal of Systems Research"},
		{"conference", got.Publications, "IEEE International Conference"},
		{"doi", got.Publications, "doi: 10.1145/3299869.3319855"},
		{"medal", got.Awards, "Gold medal"},
		{"fellowship", got.Awards, "Fellowship"},
	}

	for _, tt := range tests {
		found := false
		for _, v := range tt.values {
			if strings.Contains(v, tt.contains) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("%s: expected an entry containing %q in %v", tt.name, tt.contains, tt.values)
		}
	}
}

func TestAcademicEmpty(t *testing.T) {
	t.Parallel()

	got := Academic("Backend engineer who likes Go.")
	if got.Degrees == nil || got.Institutions == nil || got.Publications == nil || got.Awards == nil {
		t.Fatalf("expected initialized empty sets, got %+v", got)
	}
	if len(got.Degrees)+len(got.Institutions)+len(got.Publications)+len(got.Awards) != 0 {
		t.Fatalf("expected no academic signal, got %+v", got)
	}
}

func TestAcademicShortDegreesAreCaseSensitive(t *testing.T) {
	t.Parallel()

	if got := Academic("I would be glad to help me and ma."); len(got.Degrees) != 0 {
		t.Fatalf("expected no degrees from common words, got %v", got.Degrees)
	}
	if got := Academic("MS in Physics"); len(got.Degrees) != 1 {
		t.Fatalf("expected one degree, got %v", got.Degrees)
	}
}

func TestWidenRespectsRunes(t *testing.T) {
	t.Parallel()

	text := "ééé award ééé"
	loc := strings.Index(text, "award")
	start, end := widen(text, loc, loc+len("award"), 2)
	if got := text[start:end]; got != "é award é" {
		t.Fatalf("unexpected window %q", got)
	}
}
