// Package alert implements EGRET's advisory-diagnostic channel.
//
// Alerts never change the engine's primary output (the test strings
// returned in generate mode); they're the "catalog of static alerts"
// side-channel described by the spec. A Sink is created fresh per
// engine invocation and observed by the checker and the character-set
// model, mirroring the teacher's pattern of a small per-call context
// value rather than a package-level singleton (see nfa.Compiler).
package alert

import (
	"fmt"
	"strings"

	"github.com/purduedualitylab/egret/internal/span"
)

// Alert is one structural diagnostic about the regex itself.
type Alert struct {
	Warning    bool // true for a warning, false for a violation
	Type       string
	Message    string
	HasSuggest bool
	Suggest    string
	HasExample bool
	Example    string
	Loc1       span.Location
	Loc2       span.Location
}

// dedupKey identifies an alert for deduplication: §7 keys on (type,
// first-location.start).
type dedupKey struct {
	typ   string
	start int
}

// Sink accumulates alerts for a single engine invocation and renders
// them to the highlighted, human-readable strings the entry point
// returns.
type Sink struct {
	regex       string
	checkMode   bool
	webMode     bool
	rendered    []string
	seen        map[dedupKey]struct{}
}

// NewSink creates a sink for one run_engine-equivalent invocation.
// Options mirror Util::init in the original: the regex source (for
// highlighting), check mode (suppresses warnings), and web mode
// (HTML markers instead of ANSI escapes).
func NewSink(regex string, checkMode, webMode bool) *Sink {
	return &Sink{
		regex:     regex,
		checkMode: checkMode,
		webMode:   webMode,
		seen:      make(map[dedupKey]struct{}),
	}
}

// Add records an alert, rendering and deduplicating it. A second alert
// with the same (type, loc1.start) key is dropped silently. In check
// mode, warnings are suppressed entirely (only violations are kept).
func (s *Sink) Add(a Alert) {
	key := dedupKey{typ: a.Type, start: a.Loc1.Start}
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}

	if a.Warning && s.checkMode {
		return
	}

	s.rendered = append(s.rendered, s.render(a))
}

// Alerts returns the rendered alert strings in emission order.
func (s *Sink) Alerts() []string {
	out := make([]string, len(s.rendered))
	copy(out, s.rendered)
	return out
}

func (s *Sink) render(a Alert) string {
	lineBreak := "\n"
	markStart := "\033[33;44;1m"
	markEnd := "\033[0m"
	if s.webMode {
		lineBreak = "<br>"
		markStart = "<mark>"
		markEnd = "</mark>"
	}

	var b strings.Builder
	if a.Warning {
		b.WriteString("WARNING (")
	} else {
		b.WriteString("VIOLATION (")
	}
	fmt.Fprintf(&b, "%s): %s%s", a.Type, a.Message, lineBreak)

	if !a.Loc1.IsNone() {
		b.WriteString("...Regex: ")
		for i, c := range []byte(s.regex) {
			if i == a.Loc1.Start || i == a.Loc2.Start {
				b.WriteString(markStart)
			}
			b.WriteByte(c)
			if i == a.Loc1.End || i == a.Loc2.End {
				b.WriteString(markEnd)
			}
		}
		b.WriteString(lineBreak)
	}

	if a.HasSuggest {
		fmt.Fprintf(&b, "...Suggested fix: %s%s", a.Suggest, lineBreak)
	}
	if a.HasExample {
		fmt.Fprintf(&b, "...Example accepted string: %s%s", a.Example, lineBreak)
	}

	return b.String()
}
