// Package checker implements EGRET's structural diagnostics (spec.md
// §4.6): six rules walked over every basis path, each looking for one
// shape of "this regex probably doesn't do what its author intended"
// and reporting it through an alert.Sink.
//
// Grounded on Path.cpp's check_* family in structure (one rule, one
// function, a small state machine walked edge-by-edge) and, for the
// rule-table shape of running every rule over every path, on the
// teacher's prefilter package convention of a flat slice of
// independent checks run in sequence.
package checker

import (
	"fmt"

	"github.com/purduedualitylab/egret/internal/alert"
	"github.com/purduedualitylab/egret/internal/literal"
	"github.com/purduedualitylab/egret/internal/nfa"
	"github.com/purduedualitylab/egret/internal/path"
	"github.com/purduedualitylab/egret/internal/span"
)

// Run applies every checker rule to every path, recording alerts in
// sink. baseSubstring is forwarded to example-string synthesis so
// STRING_EDGE segments render correctly in synthesized examples.
func Run(paths []*path.Path, baseSubstring string, sink *alert.Sink) {
	for _, p := range paths {
		checkAnchorInMiddle(p, sink)
		checkCharsets(p, baseSubstring, sink)
		checkOptionalBraces(p, baseSubstring, sink)
		checkWildPunctuation(p, baseSubstring, sink)
		checkRepeatPunctuation(p, baseSubstring, sink)
		checkDigitTooOptional(p, sink)
	}
}

// checkAnchorInMiddle flags a ^ or $ that appears after/before other
// matched content rather than at the string's edge — a sign the anchor
// was probably meant to bound the whole pattern but a branch lets
// content surround it instead.
func checkAnchorInMiddle(p *path.Path, sink *alert.Sink) bool {
	seenNonCaret := false
	seenDollar := false
	var seenNonCaretLoc, seenDollarLoc span.Location

	for _, e := range p.Edges {
		switch e.Type {
		case nfa.CaretEdge:
			if seenNonCaret {
				sink.Add(alert.Alert{
					Type:    "anchor middle",
					Message: "Generated string has ^ anchor in the middle: " + p.TestString,
					Loc1:    seenNonCaretLoc,
					Loc2:    e.Loc,
				})
				return true
			}
		case nfa.DollarEdge:
			seenDollar = true
			seenDollarLoc = e.Loc
		case nfa.BeginLoopEdge, nfa.EndLoopEdge, nfa.BackreferenceEdge, nfa.EpsilonEdge:
			// skip
		default:
			seenNonCaret = true
			seenNonCaretLoc = e.Loc
			if seenDollar {
				sink.Add(alert.Alert{
					Type:    "anchor middle",
					Message: "Generated string has $ anchor in the middle: " + p.TestString,
					Loc1:    seenDollarLoc,
					Loc2:    seenNonCaretLoc,
				})
				return true
			}
		}
	}
	return false
}

// checkCharsets runs each character set's own structural check (bad
// ranges, stray delimiters) and flags two distinct punctuation-only
// character sets that repeat the same members — a common copy/paste
// slip that lets punctuation mismatch across the two positions.
func checkCharsets(p *path.Path, baseSubstring string, sink *alert.Sink) {
	type seen struct {
		str string
		loc span.Location
	}
	var charsets []seen

	for _, e := range p.Edges {
		if e.Type != nfa.CharSetEdge && e.Type != nfa.StringEdge {
			continue
		}
		cs := e.Charset()
		loc := e.Loc

		for _, a := range cs.Check(loc, p) {
			sink.Add(a)
		}

		if !cs.OnlyHasPuncAndSpaces() {
			continue
		}
		str := cs.GetCharsetAsString()
		if str == "+-" || str == "-+" || len(str) <= 1 {
			continue
		}

		found := false
		for _, prior := range charsets {
			if prior.str != str {
				continue
			}
			c1 := cs.GetValidCharacter(0)
			c2 := cs.GetValidCharacter(c1)
			sink.Add(alert.Alert{
				Type:    "duplicate punc charset",
				Message: "Duplicate character set of punctuation marks can lead to mismatched punctuation usage",
				Loc1:    prior.loc,
				Loc2:    loc,
				HasExample: true,
				Example:    p.GenExampleStringTwo(baseSubstring, prior.loc, c1, loc, c2),
			})
			found = true
			break
		}
		if !found {
			charsets = append(charsets, seen{str: str, loc: loc})
		}
	}
}

// checkOptionalBraces flags an optional-quantified single bracket
// character ( ) { } [ ] appearing alone or mismatched with its partner
// — a pattern that accepts strings with one brace but not the other.
func checkOptionalBraces(p *path.Path, baseSubstring string, sink *alert.Sink) {
	type found struct {
		seen bool
		loc  span.Location
	}
	var lparen, rparen, lcurly, rcurly, lbrace, rbrace found

	prevOptRepeat := false
	prevOptChar := false
	var prevOptLoc span.Location
	var prevChar byte

	for _, e := range p.Edges {
		loc := e.Loc
		switch {
		case e.IsOptRepeatBegin():
			prevOptRepeat = true
			prevOptChar = false
		case prevOptRepeat && e.Type == nfa.CharacterEdge:
			prevOptChar = true
			prevChar = e.Character
			prevOptRepeat = false
			prevOptLoc = loc
		case prevOptChar && e.IsOptRepeatEnd():
			l := span.Span(prevOptLoc, loc)
			prevOptChar = false
			prevOptRepeat = false
			switch prevChar {
			case '(':
				lparen = found{true, l}
			case ')':
				rparen = found{true, l}
			case '{':
				lcurly = found{true, l}
			case '}':
				rcurly = found{true, l}
			case '[':
				lbrace = found{true, l}
			case ']':
				rbrace = found{true, l}
			}
		default:
			prevOptChar = false
			prevOptRepeat = false
		}
	}

	reportPair := func(open, close found, openChar, closeChar byte) {
		switch {
		case open.seen && close.seen:
			sink.Add(alert.Alert{
				Type:    "optional brace",
				Message: fmt.Sprintf("Optional %c and %c found - accepts strings that have one but not the other", openChar, closeChar),
				Loc1:    open.loc,
				Loc2:    close.loc,
				HasExample: true,
				Example:    p.GenExampleStringTwo(baseSubstring, open.loc, openChar, close.loc, closeChar),
			})
		case open.seen:
			sink.Add(alert.Alert{
				Type:    "optional brace",
				Message: fmt.Sprintf("Optional %c found - accepts strings that have one but not the other", openChar),
				Loc1:    open.loc,
				HasExample: true,
				Example:    p.GenExampleStringWithBase(baseSubstring, open.loc, openChar),
			})
		case close.seen:
			sink.Add(alert.Alert{
				Type:    "optional brace",
				Message: fmt.Sprintf("Optional %c found - accepts strings that have one but not the other", closeChar),
				Loc1:    close.loc,
				HasExample: true,
				Example:    p.GenExampleStringWithBase(baseSubstring, close.loc, closeChar),
			})
		}
	}

	reportPair(lparen, rparen, '(', ')')
	reportPair(lcurly, rcurly, '{', '}')
	reportPair(lbrace, rbrace, '[', ']')
}

// checkWildPunctuation flags a wildcard or complemented character set
// sitting next to a literal punctuation mark that it also matches — a
// sign the wildcard probably meant to exclude that mark.
func checkWildPunctuation(p *path.Path, baseSubstring string, sink *alert.Sink) {
	skip := func(t nfa.EdgeType) bool {
		return t == nfa.EpsilonEdge || t == nfa.BeginLoopEdge || t == nfa.EndLoopEdge
	}

	for i, e := range p.Edges {
		if !e.IsWildCandidate() {
			continue
		}

		for j := i - 1; j >= 0; j-- {
			if skip(p.Edges[j].Type) {
				continue
			}
			if p.Edges[j].Type == nfa.CharacterEdge {
				c := p.Edges[j].Character
				if isPunct(c) && e.IsValidCharacter(c) {
					sink.Add(alert.Alert{
								Type:    "wild punctuation",
						Message: "Wildcard may wish to exclude adjacent punctuation mark " + string(c),
						Loc1:    e.Loc,
						Loc2:    p.Edges[j].Loc,
						HasSuggest: true,
						Suggest:    e.FixWildPunctuation(c),
						HasExample: true,
						Example:    p.GenExampleStringWithBase(baseSubstring, e.Loc, c),
					})
				}
			}
			break
		}

		for j := i + 1; j < len(p.Edges); j++ {
			if skip(p.Edges[j].Type) {
				continue
			}
			if p.Edges[j].Type == nfa.CharacterEdge {
				c := p.Edges[j].Character
				if isPunct(c) && e.IsValidCharacter(c) {
					sink.Add(alert.Alert{
								Type:    "wild punctuation",
						Message: "Wildcard may wish to exclude adjacent punctuation mark " + string(c),
						Loc1:    e.Loc,
						Loc2:    p.Edges[j].Loc,
						HasSuggest: true,
						Suggest:    e.FixWildPunctuation(c),
						HasExample: true,
						Example:    p.GenExampleStringWithBase(baseSubstring, e.Loc, c),
					})
				}
			}
			break
		}
	}
}

// checkRepeatPunctuation flags a character set reducing to one
// punctuation mark whose quantifier has a lower bound that differs from
// its upper bound and allows two or more repetitions — a pattern like
// `[!]{1,3}` or `[!]+` that accepts a run of the mark instead of exactly
// one, often not what the author meant by "optional punctuation". A
// bare punctuation literal under a quantifier (`!+`) is not examined.
func checkRepeatPunctuation(p *path.Path, baseSubstring string, sink *alert.Sink) {
	prevRepeat := false
	prevCandidate := false
	var prevChar byte
	var prevLoc span.Location

	repeatStr := func(c byte, lower, upper int) string {
		limit := 3
		if lower > 3 {
			limit = lower
		} else if upper == 2 {
			limit = upper
		}
		out := make([]byte, 0, limit)
		for i := 0; i < limit; i++ {
			out = append(out, c)
		}
		return string(out)
	}

	for _, e := range p.Edges {
		loc := e.Loc
		switch {
		case e.IsStrRepeatPuncCandidate():
			c := e.GetRepeatPuncChar()
			lower, upper := e.GetRepeatLowerLimit(), e.GetRepeatUpperLimit()
			if lower != upper && (upper == -1 || upper >= 2) {
				sink.Add(alert.Alert{
						Type:    "repeat punctuation",
					Message: "Punctuation mark may be repeated two or more times: " + string(c),
					Loc1:    loc,
					HasExample: true,
					Example:    p.GenExampleStringReplace(baseSubstring, loc, repeatStr(c, lower, upper)),
				})
			}
		case e.IsRepeatBegin():
			prevRepeat = true
			prevCandidate = false
		case prevRepeat && e.IsRepeatPuncCandidate():
			prevChar = e.GetRepeatPuncChar()
			prevRepeat = false
			prevCandidate = true
			prevLoc = loc
		case prevCandidate && e.IsRepeatEnd():
			lower, upper := e.GetRepeatLowerLimit(), e.GetRepeatUpperLimit()
			prevRepeat = false
			prevCandidate = false
			if lower != upper && (upper == -1 || upper >= 2) {
				full := span.Span(prevLoc, loc)
				sink.Add(alert.Alert{
						Type:    "repeat punctuation",
					Message: "Punctuation mark may be repeated two or more times: " + string(prevChar),
					Loc1:    prevLoc,
					Loc2:    loc,
					HasExample: true,
					Example:    p.GenExampleStringReplace(baseSubstring, full, repeatStr(prevChar, lower, upper)),
				})
			}
		default:
			prevRepeat = false
			prevCandidate = false
		}
	}
}

// checkDigitTooOptional flags a digit-admitting character set whose
// repetition lower bound is zero when the path's minimum-iteration
// string ends up with no digit at all in it anywhere — meaning the
// pattern accepts a string that looks like it should have a number but
// doesn't.
func checkDigitTooOptional(p *path.Path, sink *alert.Sink) {
	prevRepeat := false
	prevCandidate := false
	var prevLoc span.Location

	for _, e := range p.Edges {
		loc := e.Loc
		switch {
		case e.IsZeroRepeatBegin():
			prevRepeat = true
			prevCandidate = false
		case prevRepeat && e.IsDigitTooOptionalCandidate():
			prevRepeat = false
			prevCandidate = true
			prevLoc = loc
		case prevCandidate && e.IsZeroRepeatEnd():
			prevRepeat = false
			prevCandidate = false
			example := p.GenMinIterString()
			if !literal.Classify(example).HasDigit {
				full := span.Span(prevLoc, loc)
				sink.Add(alert.Alert{
						Type:    "digit too optional",
					Message: "Digit range allows for zero digits causing a string with no digits to be accepted",
					Loc1:    full,
					HasExample: true,
					Example:    example,
				})
			}
		default:
			prevRepeat = false
			prevCandidate = false
		}
	}
}

func isPunct(c byte) bool {
	return c > 0x20 && c < 0x7f && !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'))
}

