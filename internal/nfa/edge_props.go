package nfa

// This file groups the edge property predicates the checker package
// uses to recognize the repeat/optional/wildcard shapes spec.md §4.6
// watches for. In the original these were Edge methods that mostly
// delegated to the payload object (CharSet, RegexString, RegexLoop);
// Go keeps that delegation but collects it here since Edge itself
// (not its payload types) is what the checker walks.

// IsOptRepeatBegin reports whether e opens an optional ({0,...})
// repetition.
func (e *Edge) IsOptRepeatBegin() bool {
	return e.Type == BeginLoopEdge && e.Loop.IsOptRepeat()
}

// IsOptRepeatEnd reports whether e closes an optional repetition.
func (e *Edge) IsOptRepeatEnd() bool {
	return e.Type == EndLoopEdge && e.Loop.IsOptRepeat()
}

// IsRepeatBegin reports whether e opens any repetition.
func (e *Edge) IsRepeatBegin() bool { return e.Type == BeginLoopEdge }

// IsRepeatEnd reports whether e closes any repetition.
func (e *Edge) IsRepeatEnd() bool { return e.Type == EndLoopEdge }

// IsZeroRepeatBegin/IsZeroRepeatEnd are IsOptRepeatBegin/End under the
// name the "digit too optional" rule uses.
func (e *Edge) IsZeroRepeatBegin() bool { return e.IsOptRepeatBegin() }
func (e *Edge) IsZeroRepeatEnd() bool   { return e.IsOptRepeatEnd() }

// IsWildCandidate reports whether e is a character set (standalone or
// string-compressed) that recognizes almost anything: a bare wildcard
// or a complemented set.
func (e *Edge) IsWildCandidate() bool {
	cs := e.Charset()
	if cs == nil {
		return false
	}
	return cs.IsWildcard() || cs.Complement
}

// IsValidCharacter reports whether e's character set accepts c.
func (e *Edge) IsValidCharacter(c byte) bool {
	cs := e.Charset()
	if cs == nil {
		return false
	}
	return cs.IsWildcard() || cs.Recognizes(c)
}

// IsRepeatPuncCandidate reports whether e is a lone CHAR_SET_EDGE
// reducing to one punctuation literal — the shape the "repeat
// punctuation" rule looks for flanked by BEGIN_LOOP/END_LOOP.
func (e *Edge) IsRepeatPuncCandidate() bool {
	return e.Type == CharSetEdge && e.CharSet.IsRepeatPuncCandidate()
}

// IsStrRepeatPuncCandidate reports whether e is a STRING_EDGE reducing
// to a repeated punctuation literal, carrying its own repeat bounds
// (no surrounding BEGIN_LOOP/END_LOOP needed).
func (e *Edge) IsStrRepeatPuncCandidate() bool {
	return e.Type == StringEdge && e.RegexStr.CharSet.IsRepeatPuncCandidate()
}

// GetRepeatPuncChar returns the punctuation literal identified by
// IsRepeatPuncCandidate/IsStrRepeatPuncCandidate.
func (e *Edge) GetRepeatPuncChar() byte {
	cs := e.Charset()
	if cs == nil {
		return 0
	}
	return cs.GetRepeatPuncChar()
}

// GetRepeatLowerLimit/GetRepeatUpperLimit return the repeat bounds
// governing e: from its Loop for BEGIN_LOOP/END_LOOP, or from its own
// RegexString bounds for a STRING_EDGE.
func (e *Edge) GetRepeatLowerLimit() int {
	switch e.Type {
	case BeginLoopEdge, EndLoopEdge:
		return e.Loop.Lower
	case StringEdge:
		return e.RegexStr.Lower
	default:
		return 0
	}
}

func (e *Edge) GetRepeatUpperLimit() int {
	switch e.Type {
	case BeginLoopEdge, EndLoopEdge:
		return e.Loop.Upper
	case StringEdge:
		return e.RegexStr.Upper
	default:
		return -1
	}
}

// IsDigitTooOptionalCandidate reports whether e's character set could
// have matched a digit, for the "digit too optional" rule.
func (e *Edge) IsDigitTooOptionalCandidate() bool {
	cs := e.Charset()
	if cs == nil {
		return false
	}
	return cs.IsDigitTooOptionalCandidate()
}

// FixWildPunctuation suggests a replacement for a wildcard that
// probably should have excluded the adjacent punctuation mark c.
func (e *Edge) FixWildPunctuation(c byte) string {
	return "[^" + string(c) + "]"
}
