package cliflags

import (
	"reflect"
	"testing"
)

func TestPreprocess(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"force after delete", []string{"-df"}, []string{"-f", "-d"}},
		{"force before delete", []string{"-fd"}, []string{"-f", "-d"}},
		{"force after clear", []string{"-cf"}, []string{"-f", "-c"}},
		{"force before clear", []string{"-fc"}, []string{"-f", "-c"}},
		{"mode cluster", []string{"-bm"}, []string{"-b", "-m"}},
		{"triple cluster", []string{"-bmt"}, []string{"-b", "-m", "-t"}},
		{"long form untouched", []string{"--list"}, []string{"--list"}},
		{"short single untouched", []string{"-b"}, []string{"-b"}},
		{"lone dash untouched", []string{"-"}, []string{"-"}},
		{"positionals untouched", []string{"oslo", "lufthavn"}, []string{"oslo", "lufthavn"}},
		{
			"mixed argv",
			[]string{"-rb", "oslo", "lufthavn"},
			[]string{"-r", "-b", "oslo", "lufthavn"},
		},
		{
			"force pair with stop tokens",
			[]string{"-df", "0", "2"},
			[]string{"-f", "-d", "0", "2"},
		},
		{
			"terminator passthrough",
			[]string{"-df", "--", "-bm"},
			[]string{"-f", "-d", "--", "-bm"},
		},
		{"empty", nil, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Preprocess(tc.in)
			if !reflect.DeepEqual(got, append([]string{}, tc.want...)) {
				t.Errorf("Preprocess(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestPreprocessIdempotent(t *testing.T) {
	inputs := [][]string{
		{"-df", "-bm", "oslo"},
		{"-fc"},
		{"-wt", "skøyen"},
	}
	for _, in := range inputs {
		once := Preprocess(in)
		twice := Preprocess(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Preprocess not idempotent for %v: %v then %v", in, once, twice)
		}
	}
}

// The force rewrite must run before cluster expansion; expanding first would
// split -df into -d -f with force trailing the destructive flag.
func TestForceRewriteOrdering(t *testing.T) {
	got := Preprocess([]string{"-df"})
	if len(got) != 2 || got[0] != "-f" || got[1] != "-d" {
		t.Fatalf("Preprocess([-df]) = %v, want [-f -d]", got)
	}
}
