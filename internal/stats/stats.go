// Package stats implements EGRET's tag-grouped counter table (spec.md
// Size Budget note; `Options.StatMode`), a direct port of
// original_source/src/Stats.cpp: an ordered list of (tag, name, value)
// rows, printed with a divider line whenever the tag changes.
package stats

import (
	"fmt"
	"strings"
)

const width = 30

type stat struct {
	tag   string
	name  string
	value int
}

// Stats accumulates named counters grouped under tags, in insertion
// order.
type Stats struct {
	rows []stat
}

// New creates an empty Stats accumulator.
func New() *Stats { return &Stats{} }

// Add records one counter under tag.
func (s *Stats) Add(tag, name string, value int) {
	s.rows = append(s.rows, stat{tag: tag, name: name, value: value})
}

// String renders the accumulated counters, left-justified to width
// columns with a divider line between tag groups.
func (s *Stats) String() string {
	var b strings.Builder
	prevTag := ""
	for _, r := range s.rows {
		if r.tag != prevTag && prevTag != "" {
			b.WriteString(strings.Repeat("-", width+8))
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s| %d\n", width, r.name, r.value)
		prevTag = r.tag
	}
	return b.String()
}
