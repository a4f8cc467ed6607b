// Package span holds the source-location type shared by the scanner,
// parser, NFA, and alert sink.
package span

// Location is a pair of byte offsets into the original regex source.
// It is used for alert highlighting and for binding a backreference to
// the span of the group it refers to.
type Location struct {
	Start int
	End   int
}

// None is the sentinel meaning "no location".
var None = Location{Start: -1, End: -1}

// IsNone reports whether loc is the sentinel "no location" value.
func (loc Location) IsNone() bool {
	return loc.Start == -1 && loc.End == -1
}

// Span returns the smallest Location covering both a and b, keeping a's
// start and b's end. Used to widen a location across a pair of edges
// (e.g. the opening and closing paren of a group).
func Span(a, b Location) Location {
	return Location{Start: a.Start, End: b.End}
}
