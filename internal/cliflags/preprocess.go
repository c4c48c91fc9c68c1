// Package cliflags rewrites raw command-line tokens before conventional flag
// parsing so single-letter flags can be freely clustered. The force modifier
// is pulled out of destructive pairs first, then remaining clusters are split
// one letter per token.
package cliflags

import "strings"

// forcePairs are the two-letter clusters pairing the force modifier with a
// destructive flag. The force flag is emitted first so it is seen before the
// destructive flag starts consuming positional arguments.
var forcePairs = map[string]string{
	"-df": "-d",
	"-fd": "-d",
	"-cf": "-c",
	"-fc": "-c",
}

// Preprocess applies the full rewrite: force-pair reordering, then cluster
// expansion. The composition is fixed in this order so the force pairs are
// never split letter by letter with force trailing.
func Preprocess(argv []string) []string {
	return Expand(ReorderForce(argv))
}

// ReorderForce rewrites any force-plus-destructive two-letter cluster, in
// either letter order, into two tokens with the force flag first. Tokens
// after a bare "--" pass through untouched.
func ReorderForce(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i, arg := range argv {
		if arg == "--" {
			return append(out, argv[i:]...)
		}
		if flag, ok := forcePairs[arg]; ok {
			out = append(out, "-f", flag)
			continue
		}
		out = append(out, arg)
	}
	return out
}

// Expand splits every remaining short-flag cluster into one token per
// letter, preserving left-to-right order. Long options, single short flags,
// a lone dash, and everything after a bare "--" pass through unchanged.
// Idempotent on already expanded input.
func Expand(argv []string) []string {
	out := make([]string, 0, len(argv))
	for i, arg := range argv {
		if arg == "--" {
			return append(out, argv[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") && len(arg) > 2 {
			for _, ch := range arg[1:] {
				out = append(out, "-"+string(ch))
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
