// Package backref implements Backref (spec.md §3): a reference to a
// capture group, bound to the group's source span by the parser and
// resolved to concrete characters during path processing.
package backref

import (
	"strings"
	"unicode"

	"github.com/purduedualitylab/egret/internal/span"
)

// Backref references a capture either by number or by name, together
// with the Location of the group it refers to.
type Backref struct {
	GroupName   string
	GroupNumber int // -1 when referencing by name
	GroupLoc    span.Location

	Prefix    string
	Substring string

	CurrPrefix    string
	CurrSubstring string
}

// New creates a Backref bound to the given group's span.
func New(name string, number int, groupLoc span.Location) *Backref {
	return &Backref{GroupName: name, GroupNumber: number, GroupLoc: groupLoc}
}

// SetCurrPrefix records the path string up to visiting this edge.
func (b *Backref) SetCurrPrefix(p string) { b.CurrPrefix = p }

// SetCurrSubstring records the characters resolved for this traversal
// from the referenced group.
func (b *Backref) SetCurrSubstring(s string) { b.CurrSubstring = s }

// CommitFromCurr copies the scratch Curr* fields into Prefix/Substring,
// called once the defining group's substring has been resolved.
func (b *Backref) CommitFromCurr() {
	b.Prefix = b.CurrPrefix
	b.Substring = b.CurrSubstring
}

// GenMinIterString appends the backreference's captured substring
// unconditionally — a backreference has no quantifier of its own to
// optionally skip.
func (b *Backref) GenMinIterString(minIter *[]byte) {
	*minIter = append(*minIter, b.Substring...)
}

// GenEvilStrings produces the Backreference band of the mutation
// catalog (spec.md §4.7): the referenced substring replaced by a
// deliberately differing one (case-swapped, shortened by its last
// character, or lengthened by an extra 'x') to violate the
// backreference constraint.
func (b *Backref) GenEvilStrings(testString string) []string {
	start := len(b.Prefix)
	end := start + len(b.Substring)
	prefix := testString[:start]
	suffix := testString[end:]

	var variants []string
	variants = append(variants, swapCase(b.Substring))
	if len(b.Substring) > 1 {
		variants = append(variants, b.Substring[:len(b.Substring)-1])
	}
	variants = append(variants, b.Substring+"x")

	strs := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == b.Substring {
			continue
		}
		strs = append(strs, prefix+v+suffix)
	}
	return strs
}

func swapCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLower(r):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
