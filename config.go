package egret

// Options configures one Generate or Check invocation, grounded on the
// teacher's Config/DefaultConfig convention: a plain struct of
// independent toggles, each documented with its default.
type Options struct {
	// CheckMode runs the structural checker instead of test-string
	// synthesis: Check always sets this, Generate always clears it.
	// Default: false.
	CheckMode bool

	// WebMode renders alert highlighting with HTML <mark> tags and
	// <br> line breaks instead of ANSI escapes and newlines, for
	// callers embedding output in a web page.
	// Default: false.
	WebMode bool

	// DebugMode additionally returns a scanner/parse-tree/NFA
	// structural dump in Result.Debug. Unlike the original, which
	// printed the dump directly to stdout from inside the engine, this
	// is returned as data: the teacher's library-not-service shape
	// means a pure function returns its result rather than also
	// writing to a global stream as a side effect, leaving the caller
	// to decide where the dump goes.
	// Default: false.
	DebugMode bool

	// StatMode additionally returns a rendered Stats table alongside
	// the primary result, counting basis paths and generated strings
	// (before deduplication). Only Generate records these counters;
	// parse-tree nodes and NFA edges are not counted.
	// Default: false.
	StatMode bool

	// BaseSubstring is the literal word substituted for a repeated
	// string-candidate character set (e.g. \w+) when synthesizing a
	// test string. Must be at least two alphabetic characters.
	// Default: "xxx".
	BaseSubstring string
}

// DefaultOptions returns the Options the CLI falls back to when the
// caller doesn't override them.
func DefaultOptions() Options {
	return Options{
		BaseSubstring: "xxx",
	}
}
