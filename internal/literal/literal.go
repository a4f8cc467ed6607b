// Package literal classifies the literal byte runs of a generated test
// string, adapted from the teacher's literal.Seq (seq.go): instead of
// extracting alternative match prefixes for a prefilter, it answers
// whether a finished string already contains a digit, a letter, or a
// punctuation mark — the question the checker's "digit too optional"
// rule needs without re-walking the string itself.
package literal

// Run is a classified view of a byte string: which character classes
// it contains at least one instance of.
type Run struct {
	HasDigit bool
	HasLetter bool
	HasPunct  bool
	HasSpace  bool
}

// Classify scans s once and reports which character classes it
// contains.
func Classify(s string) Run {
	var r Run
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			r.HasDigit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			r.HasLetter = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			r.HasSpace = true
		case c > 0x20 && c < 0x7f:
			r.HasPunct = true
		}
	}
	return r
}
