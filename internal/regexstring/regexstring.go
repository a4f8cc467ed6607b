// Package regexstring implements RegexString (spec.md §3), the
// compressed form of a repeated character set created by the NFA
// builder's "string edge" optimization (spec.md §4.3).
package regexstring

import (
	"strings"
	"unicode"

	"github.com/purduedualitylab/egret/internal/charset"
)

// RegexString owns a CharSet plus its {lower, upper} quantifier. It is
// only ever created when the child set qualifies as a "string
// candidate" and the quantifier is '*' or '+' (spec.md §4.3).
type RegexString struct {
	CharSet *charset.CharSet
	Lower   int
	Upper   int // always -1 by construction, kept for symmetry with Loop

	Prefix    string
	Substring string
}

// New creates a RegexString wrapping cs with the given bounds.
func New(cs *charset.CharSet, lower, upper int) *RegexString {
	return &RegexString{CharSet: cs, Lower: lower, Upper: upper}
}

// SetPrefix records the path string up to this edge.
func (r *RegexString) SetPrefix(p string) { r.Prefix = p }

// SetSubstring records the literal run chosen for this edge during path
// processing.
func (r *RegexString) SetSubstring(s string) { r.Substring = s }

// Body picks the literal run substituted for this edge: the base
// substring repeated Lower times, or the base substring once when
// Lower == 0.
func Body(base string, lower int) string {
	if lower == 0 {
		return base
	}
	return strings.Repeat(base, lower)
}

// GenMinIterString appends this edge's minimum-iteration contribution:
// nothing when Lower == 0, else Substring.
func (r *RegexString) GenMinIterString(minIter *[]byte) {
	if r.Lower != 0 {
		*minIter = append(*minIter, r.Substring...)
	}
}

// GenEvilStrings produces the RegexString band of the mutation catalog
// (spec.md §4.7): empty, single-letter, underscore, digit, space,
// first-character-only, an injected character at the midpoint,
// upper/lower/mixed case, and, when the set admits any punctuation, one
// entry per punctuation mark in punctMarks.
func (r *RegexString) GenEvilStrings(testString string, punctMarks map[byte]struct{}) []string {
	start := len(r.Prefix)
	end := start + len(r.Substring)
	suffix := testString[end:]

	var subs []string
	subs = append(subs, "", "_", "6", " ")

	if len(r.Substring) > 0 {
		subs = append(subs, r.Substring[:1])
	}

	half := len(r.Substring) / 2
	before, after := r.Substring[:half], r.Substring[half:]
	subs = append(subs,
		before+"4"+after,
		before+" "+after,
		before+"_"+after,
	)

	upper := strings.ToUpper(r.Substring)
	lower := strings.ToLower(r.Substring)
	mixed := []rune(r.Substring)
	for i := range mixed {
		if i == 0 {
			mixed[i] = unicode.ToLower(mixed[i])
		} else if i == 1 {
			mixed[i] = unicode.ToUpper(mixed[i])
		}
	}
	subs = append(subs, upper, lower, string(mixed))

	if r.CharSet.AllowsPunctuation() {
		for p := range punctMarks {
			subs = append(subs, string(p))
		}
	}

	strs := make([]string, 0, len(subs))
	for _, s := range subs {
		strs = append(strs, r.Prefix+s+suffix)
	}
	return strs
}
