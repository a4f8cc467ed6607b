// Package scanner implements EGRET's lazy token cursor (spec.md §4.1).
//
// Scanner is a single-pass cursor over the regex source that yields one
// token at a time and remembers the current token and its location, the
// way the teacher's NFA compiler walks a pattern one rune at a time
// (see nfa/compile.go) rather than building a separate token slice up
// front.
package scanner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purduedualitylab/egret/internal/span"
	"github.com/purduedualitylab/egret/internal/token"
)

// Scanner is a lazy cursor over a regex source string.
type Scanner struct {
	src       []byte
	pos       int
	inBracket bool // true while scanning inside '[' ... ']'

	current token.Token

	// puncMarks is the set of punctuation characters the scanner has
	// seen as literal characters, consumed by the checker and the test
	// generator's punctuation-mutation catalog.
	puncMarks map[byte]struct{}

	tokens []token.Token // full history, for debug dumps
}

// New creates a Scanner over regex and primes it with the first token.
func New(regex string) (*Scanner, error) {
	s := &Scanner{
		src:       []byte(regex),
		puncMarks: make(map[byte]struct{}),
	}
	if err := s.Advance(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the current token.
func (s *Scanner) Current() token.Token { return s.current }

// CurrentKind returns the current token's kind.
func (s *Scanner) CurrentKind() token.Kind { return s.current.Kind }

// CurrentLocation returns the current token's source Location.
func (s *Scanner) CurrentLocation() span.Location { return s.current.Loc }

// CurrentCharacter returns the current token's character payload.
func (s *Scanner) CurrentCharacter() byte { return s.current.Character }

// CurrentRepeatBounds returns the current Repeat token's bounds.
func (s *Scanner) CurrentRepeatBounds() (lower, upper int) {
	return s.current.RepeatLower, s.current.RepeatUpper
}

// CurrentGroupNumber returns the current Backreference token's numbered
// target, or -1 if the backreference is by name.
func (s *Scanner) CurrentGroupNumber() int { return s.current.BackrefNumber }

// CurrentGroupName returns the current token's group name, valid for
// NamedGroupExt and named Backreference tokens.
func (s *Scanner) CurrentGroupName() string { return s.current.GroupName }

// PuncMarks returns the set of punctuation characters seen so far as
// literal characters in the regex source.
func (s *Scanner) PuncMarks() map[byte]struct{} { return s.puncMarks }

// Tokens returns every token produced so far, oldest first.
func (s *Scanner) Tokens() []token.Token { return s.tokens }

// Dump renders every token produced so far, one per line, for
// Options.DebugMode.
func (s *Scanner) Dump() string {
	var b strings.Builder
	for _, tok := range s.tokens {
		fmt.Fprintf(&b, "%s [%d,%d)\n", tok.Kind, tok.Loc.Start, tok.Loc.End)
	}
	return b.String()
}

// EnterCharSet switches lexing mode for the contents of a '[...]': a
// bare '-' becomes a Hyphen token (range dash) instead of a literal
// character, and a bare '.' stops meaning "any character".
func (s *Scanner) EnterCharSet() { s.inBracket = true }

// ExitCharSet restores normal lexing mode after a ']'.
func (s *Scanner) ExitCharSet() { s.inBracket = false }

// IsCharRange reports whether the scanner is positioned at a
// CHAR '-' CHAR pattern: the current token is a Character and is
// immediately followed, without consuming,
// by a dash and then a character other than ']'. Used by the parser's
// char_range_item lookahead.
func (s *Scanner) IsCharRange() bool {
	if s.current.Kind != token.Character {
		return false
	}
	p := s.pos
	if p >= len(s.src) || s.src[p] != '-' {
		return false
	}
	if p+1 >= len(s.src) || s.src[p+1] == ']' {
		return false
	}
	return true
}

// IsConcat reports whether the current token could begin another atom,
// i.e. whether a concat production should keep recursing.
func (s *Scanner) IsConcat() bool {
	return s.current.Kind.AtomStart()
}

func (s *Scanner) byteAt(i int) (byte, bool) {
	if i < 0 || i >= len(s.src) {
		return 0, false
	}
	return s.src[i], true
}

func (s *Scanner) emit(tok token.Token) {
	s.current = tok
	s.tokens = append(s.tokens, tok)
}

func (s *Scanner) errAt(start int, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	s.emit(token.Token{
		Kind:      token.Err,
		Loc:       span.Location{Start: start, End: s.pos},
		ScanError: msg,
	})
	return fmt.Errorf("scanner: %s", msg)
}

// Advance scans the next token and makes it current.
func (s *Scanner) Advance() error {
	if s.pos >= len(s.src) {
		s.emit(token.Token{Kind: token.Err, Loc: span.Location{Start: s.pos, End: s.pos}})
		return nil
	}

	start := s.pos
	c := s.src[s.pos]
	s.pos++

	switch {
	case s.inBracket && c == ']':
		s.ExitCharSet()
		s.emit(token.Token{Kind: token.RightBracket, Loc: loc1(start)})
		return nil
	case c == ']':
		// a stray ']' outside a char set is just a literal
		s.noteLiteral(c)
		s.emit(token.Token{Kind: token.Character, Loc: loc1(start), Character: c})
		return nil
	case c == '[':
		s.EnterCharSet()
		s.emit(token.Token{Kind: token.LeftBracket, Loc: loc1(start)})
		return nil
	case s.inBracket && c == '-':
		s.emit(token.Token{Kind: token.Hyphen, Loc: loc1(start)})
		return nil
	case c == '(':
		return s.scanGroupOpen(start)
	case c == ')':
		s.emit(token.Token{Kind: token.RightParen, Loc: loc1(start)})
		return nil
	case c == '|':
		s.emit(token.Token{Kind: token.Alternation, Loc: loc1(start)})
		return nil
	case !s.inBracket && c == '^':
		s.emit(token.Token{Kind: token.Caret, Loc: loc1(start)})
		return nil
	case !s.inBracket && c == '$':
		s.emit(token.Token{Kind: token.Dollar, Loc: loc1(start)})
		return nil
	case !s.inBracket && c == '.':
		s.emit(token.Token{Kind: token.CharClass, Loc: loc1(start), Character: '.'})
		return nil
	case !s.inBracket && c == '*':
		s.emit(token.Token{Kind: token.Star, Loc: loc1(start)})
		return nil
	case !s.inBracket && c == '+':
		s.emit(token.Token{Kind: token.Plus, Loc: loc1(start)})
		return nil
	case !s.inBracket && c == '?':
		s.emit(token.Token{Kind: token.Question, Loc: loc1(start)})
		return nil
	case !s.inBracket && c == '{':
		return s.scanRepeat(start)
	case c == '\\':
		return s.scanEscape(start)
	case c == '-':
		s.noteLiteral(c)
		s.emit(token.Token{Kind: token.Character, Loc: loc1(start), Character: c})
		return nil
	default:
		s.noteLiteral(c)
		s.emit(token.Token{Kind: token.Character, Loc: loc1(start), Character: c})
		return nil
	}
}

func loc1(start int) span.Location { return span.Location{Start: start, End: start} }

func (s *Scanner) noteLiteral(c byte) {
	if isPunct(c) {
		s.puncMarks[c] = struct{}{}
	}
}

func isPunct(c byte) bool {
	return c > 0x20 && c < 0x7f && !isAlnum(c)
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// scanGroupOpen handles '(' and its extensions: '(?:', '(?P<name>',
// '(?P=name)', '(?#...)' and any other unrecognized '(?...)'.
func (s *Scanner) scanGroupOpen(start int) error {
	if s.pos >= len(s.src) || s.src[s.pos] != '?' {
		s.emit(token.Token{Kind: token.LeftParen, Loc: loc1(start)})
		return nil
	}
	// consume '?'
	s.pos++

	switch {
	case s.pos < len(s.src) && s.src[s.pos] == ':':
		s.pos++
		s.emit(token.Token{Kind: token.NoGroupExt, Loc: span.Location{Start: start, End: s.pos - 1}})
		return nil

	case s.pos < len(s.src) && s.src[s.pos] == 'P' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '<':
		s.pos += 2
		nameStart := s.pos
		for s.pos < len(s.src) && s.src[s.pos] != '>' {
			s.pos++
		}
		if s.pos >= len(s.src) {
			return s.errAt(start, "unterminated named group")
		}
		name := string(s.src[nameStart:s.pos])
		s.pos++ // consume '>'
		s.emit(token.Token{Kind: token.NamedGroupExt, Loc: span.Location{Start: start, End: s.pos - 1}, GroupName: name})
		return nil

	case s.pos < len(s.src) && s.src[s.pos] == 'P' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '=':
		s.pos += 2
		nameStart := s.pos
		for s.pos < len(s.src) && s.src[s.pos] != ')' {
			s.pos++
		}
		if s.pos >= len(s.src) {
			return s.errAt(start, "unterminated named backreference")
		}
		name := string(s.src[nameStart:s.pos])
		s.pos++ // consume ')'
		s.emit(token.Token{Kind: token.Backreference, Loc: span.Location{Start: start, End: s.pos - 1}, BackrefNumber: -1, GroupName: name})
		return nil

	case s.pos < len(s.src) && s.src[s.pos] == '#':
		s.pos++
		for s.pos < len(s.src) && s.src[s.pos] != ')' {
			s.pos++
		}
		if s.pos >= len(s.src) {
			return s.errAt(start, "unterminated comment group")
		}
		s.pos++ // consume ')'
		s.emit(token.Token{Kind: token.IgnoredExt, Loc: span.Location{Start: start, End: s.pos - 1}})
		return nil

	default:
		// any other '(?...)' extension is ignored
		for s.pos < len(s.src) && s.src[s.pos] != ')' {
			s.pos++
		}
		if s.pos >= len(s.src) {
			return s.errAt(start, "unterminated group extension")
		}
		s.pos++
		s.emit(token.Token{Kind: token.IgnoredExt, Loc: span.Location{Start: start, End: s.pos - 1}})
		return nil
	}
}

// scanRepeat handles '{n}', '{n,}', '{n,m}'.
func (s *Scanner) scanRepeat(start int) error {
	boundsStart := s.pos
	for s.pos < len(s.src) && s.src[s.pos] != '}' {
		s.pos++
	}
	if s.pos >= len(s.src) {
		return s.errAt(start, "unterminated repeat quantifier")
	}
	body := string(s.src[boundsStart:s.pos])
	s.pos++ // consume '}'

	lower, upper, err := parseRepeatBounds(body)
	if err != nil {
		return s.errAt(start, "malformed repeat quantifier {%s}: %v", body, err)
	}

	s.emit(token.Token{
		Kind:        token.Repeat,
		Loc:         span.Location{Start: start, End: s.pos - 1},
		RepeatLower: lower,
		RepeatUpper: upper,
	})
	return nil
}

func parseRepeatBounds(body string) (lower, upper int, err error) {
	parts := strings.SplitN(body, ",", 2)
	lower, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("bad lower bound: %w", err)
	}
	if len(parts) == 1 {
		return lower, lower, nil
	}
	upperStr := strings.TrimSpace(parts[1])
	if upperStr == "" {
		return lower, -1, nil
	}
	upper, err = strconv.Atoi(upperStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad upper bound: %w", err)
	}
	if upper < lower {
		return 0, 0, fmt.Errorf("upper bound %d below lower bound %d", upper, lower)
	}
	return lower, upper, nil
}

// scanEscape handles every backslash escape: class shorthands, word
// boundary, numbered backreferences, and escaped literals.
func (s *Scanner) scanEscape(start int) error {
	if s.pos >= len(s.src) {
		return s.errAt(start, "dangling backslash at end of regex")
	}
	c := s.src[s.pos]
	s.pos++

	switch c {
	case 'd', 'D', 'w', 'W', 's', 'S':
		s.emit(token.Token{Kind: token.CharClass, Loc: span.Location{Start: start, End: s.pos - 1}, Character: c})
		return nil
	case 'b':
		s.emit(token.Token{Kind: token.WordBoundary, Loc: span.Location{Start: start, End: s.pos - 1}})
		return nil
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		digitsStart := s.pos - 1
		for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
			s.pos++
		}
		n, _ := strconv.Atoi(string(s.src[digitsStart:s.pos]))
		s.emit(token.Token{
			Kind:          token.Backreference,
			Loc:           span.Location{Start: start, End: s.pos - 1},
			BackrefNumber: n,
		})
		return nil
	default:
		s.noteLiteral(c)
		s.emit(token.Token{Kind: token.Character, Loc: span.Location{Start: start, End: s.pos - 1}, Character: c})
		return nil
	}
}
