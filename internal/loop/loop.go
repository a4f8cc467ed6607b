// Package loop implements RegexLoop (spec.md §3), the shared mutable
// state between a repetition's BEGIN_LOOP and END_LOOP edges.
//
// The original C++ shares a RegexLoop object between the two edges via
// a shared pointer; spec.md §9 offers an index-addressed "LoopID table"
// as the Go-idiomatic alternative to reference-counted sharing. EGRET
// takes the simpler option it explicitly allows: both edges hold a
// *Loop to the same value, giving identical sharing semantics with an
// ordinary pointer instead of a table + id indirection.
package loop

// Loop is a repeat quantifier {lower, upper}; upper == -1 means
// unbounded. It is shared by the BEGIN_LOOP and END_LOOP edges of one
// repetition: the begin edge writes CurrPrefix when traversed, and the
// end edge reads it back to compute Substring.
type Loop struct {
	Lower int
	Upper int // -1 if unbounded

	// Prefix/Substring hold the committed values once the end edge has
	// processed the path.
	Prefix    string
	Substring string

	// CurrPrefix/CurrSubstring are scratch fields written while walking
	// the path; CurrPrefix is set by the begin edge, CurrSubstring by
	// the end edge just before committing.
	CurrPrefix    string
	CurrSubstring string
}

// New creates a loop with the given bounds. Panics if lower < 0 or
// upper is bounded and less than lower — the NFA builder never
// constructs an out-of-range loop, so this is a programming-error
// guard, not a user-input check.
func New(lower, upper int) *Loop {
	if lower < 0 || (upper != -1 && upper < lower) {
		panic("loop: invalid bounds")
	}
	return &Loop{Lower: lower, Upper: upper}
}

// IsOptRepeat reports whether the loop represents an optional
// repetition: lower == 0.
func (l *Loop) IsOptRepeat() bool { return l.Lower == 0 }

// SetCurrPrefix records the path string up to entering the loop.
func (l *Loop) SetCurrPrefix(p string) { l.CurrPrefix = p }

// SetCurrSubstring records the loop's body substring, computed by the
// end edge as testString[len(CurrPrefix):].
func (l *Loop) SetCurrSubstring(testString string) {
	l.CurrSubstring = testString[len(l.CurrPrefix):]
}

// Commit copies the scratch Curr* fields into Prefix/Substring. Called
// by the end edge once both have been populated for this traversal.
func (l *Loop) Commit() {
	l.Prefix = l.CurrPrefix
	l.Substring = l.CurrSubstring
}

// GenMinIterString appends the loop's contribution to a
// minimum-iteration string: Substring (one iteration's text) repeated
// Lower times, nothing when Lower == 0.
func (l *Loop) GenMinIterString(minIter *[]byte) {
	for i := 0; i < l.Lower; i++ {
		*minIter = append(*minIter, l.Substring...)
	}
}

// GenEvilStrings produces the Loop band of the mutation catalog
// (spec.md §4.7): zero iterations, one below lower, one above upper,
// lower, upper (or lower+2 when unbounded), and a doubled variant.
//
// Substring holds exactly one pass through the loop body (captured by
// SetCurrSubstring from the basis path, which only ever traverses the
// body once); Prefix/the suffix computed from testString bracket the
// single rendered occurrence in the canonical test string so the
// variants below can substitute a different repeat count in its place.
func (l *Loop) GenEvilStrings(testString string) []string {
	unit := l.Substring
	start := len(l.Prefix)
	end := start + len(unit)
	if l.Lower > 1 {
		end = start + len(unit)*l.Lower
	}
	suffix := testString[end:]

	repeat := func(n int) string {
		if n <= 0 {
			return ""
		}
		out := make([]byte, 0, len(unit)*n)
		for i := 0; i < n; i++ {
			out = append(out, unit...)
		}
		return string(out)
	}

	var counts []int
	if l.Lower == 0 {
		counts = append(counts, 0)
	}
	if l.Lower > 0 {
		counts = append(counts, l.Lower-1)
	}
	if l.Upper != -1 {
		counts = append(counts, l.Upper+1)
	}
	counts = append(counts, l.Lower)
	if l.Upper != -1 {
		counts = append(counts, l.Upper)
	} else {
		counts = append(counts, l.Lower+2)
	}
	counts = append(counts, l.Lower*2) // doubled variant

	var evil []string
	for _, n := range counts {
		evil = append(evil, l.Prefix+repeat(n)+suffix)
	}
	return evil
}
