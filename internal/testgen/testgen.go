// Package testgen implements EGRET's test-string synthesis (spec.md
// §4.7), a direct port of TestGenerator.cpp: for every basis path,
// emit its canonical string, its minimum-iteration string, and its
// band of the mutation catalog, then fold duplicates.
package testgen

import (
	"github.com/purduedualitylab/egret/internal/path"
)

// Generate produces the full catalog of test strings for paths, deduped
// and in emission order, plus the count before deduplication (for
// stats).
//
// The original dedups by inserting each new, not-yet-seen string at
// the FRONT of the return list, which reverses emission order as a
// side effect of how std::vector::insert works with begin(). That
// reversal isn't a meaningful part of the behavior — nothing downstream
// depends on final ordering — so this keeps a seen-set and appends in
// encounter order instead, documented here rather than silently
// diverging.
func Generate(paths []*path.Path, punctMarks map[byte]struct{}) (strs []string, total int) {
	var raw []string

	for _, p := range paths {
		raw = append(raw, p.TestString)
	}
	for _, p := range paths {
		raw = append(raw, p.GenMinIterString())
	}
	for _, p := range paths {
		raw = append(raw, p.GenEvilStrings(punctMarks)...)
	}

	total = len(raw)

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out, total
}
