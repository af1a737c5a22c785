package nlp

import (
	"reflect"
	"testing"
)

func TestSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lines and terminators",
			in:   "Build APIs. Ship fast!\n\n- Own the roadmap\nIs it done? 3 more left",
			want: []string{"Build APIs.", "Ship fast!", "- Own the roadmap", "Is it done?", "3 more left"},
		},
		{
			name: "abbreviations followed by lower case stay together",
			in:   "Worked on e.g. payments and etc. things",
			want: []string{"Worked on e.g. payments and etc. things"},
		},
		{
			name: "numbered items stay whole",
			in:   "1. Own the CI pipeline end to end\nb. Review designs. Ship fixes",
			want: []string{"1. Own the CI pipeline end to end", "b. Review designs.", "Ship fixes"},
		},
		{
			name: "no terminator",
			in:   "single line",
			want: []string{"single line"},
		},
		{
			name: "empty",
			in:   " \n\t\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sentences(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
