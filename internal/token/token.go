// Package token defines the tagged token stream produced by the scanner
// and consumed by the recursive-descent parser.
package token

import "github.com/purduedualitylab/egret/internal/span"

// Kind tags a Token's variant, mirroring spec.md §3's Token definition.
type Kind uint8

const (
	Character     Kind = iota // a literal character (post-escape)
	CharClass                 // \d \D \w \W \s \S or unescaped '.'
	Caret                     // '^'
	Dollar                    // '$'
	Hyphen                    // '-' inside a character set
	WordBoundary              // '\b'
	Star                      // '*'
	Plus                      // '+'
	Question                  // '?'
	Repeat                    // '{n}', '{n,}', '{n,m}'
	LeftParen                 // '('
	RightParen                // ')'
	LeftBracket               // '['
	RightBracket              // ']'
	Alternation               // '|'
	NoGroupExt                // '(?:'
	NamedGroupExt             // '(?P<name>'
	IgnoredExt                // '(?#...)' and any other unrecognized '(?...)'
	Backreference             // '\N' or '(?P=name)'
	Err                       // end of input / scan failure
)

// String returns a human-readable name for k, used by debug dumps.
func (k Kind) String() string {
	switch k {
	case Character:
		return "CHARACTER"
	case CharClass:
		return "CHAR_CLASS"
	case Caret:
		return "CARET"
	case Dollar:
		return "DOLLAR"
	case Hyphen:
		return "HYPHEN"
	case WordBoundary:
		return "WORD_BOUNDARY"
	case Star:
		return "STAR"
	case Plus:
		return "PLUS"
	case Question:
		return "QUESTION"
	case Repeat:
		return "REPEAT"
	case LeftParen:
		return "LEFT_PAREN"
	case RightParen:
		return "RIGHT_PAREN"
	case LeftBracket:
		return "LEFT_BRACKET"
	case RightBracket:
		return "RIGHT_BRACKET"
	case Alternation:
		return "ALTERNATION"
	case NoGroupExt:
		return "NO_GROUP_EXT"
	case NamedGroupExt:
		return "NAMED_GROUP_EXT"
	case IgnoredExt:
		return "IGNORED_EXT"
	case Backreference:
		return "BACKREFERENCE"
	case Err:
		return "ERR"
	default:
		return "UNKNOWN"
	}
}

// Token is a single scanned unit, tagged by Kind with a source Location
// and whatever payload its kind carries.
type Token struct {
	Kind Kind
	Loc  span.Location

	// Character holds the literal (for Character) or the normalized
	// class tag (for CharClass: 'd', 'D', 'w', 'W', 's', 'S', '.').
	Character byte

	// RepeatLower/RepeatUpper hold the quantifier bounds for Repeat.
	// RepeatUpper == -1 means unbounded ('{n,}').
	RepeatLower int
	RepeatUpper int

	// GroupName holds the capture name for NamedGroupExt and for a
	// named Backreference.
	GroupName string

	// BackrefNumber holds the capture index for a numbered
	// Backreference, or -1 when the backreference is by name.
	BackrefNumber int

	// ScanError holds the human-readable cause when Kind == Err due to
	// a dangling backslash, an unterminated group extension, or a
	// malformed or unterminated repeat quantifier (rather than a clean
	// end-of-input).
	ScanError string
}

// AtomStart reports whether a token of this kind can begin an atom,
// i.e. whether concatenation continues. Mirrors Scanner::is_concat in
// the original: LEFT_PAREN (and its extension forms), LEFT_BRACKET,
// CHARACTER, CHAR_CLASS, CARET, DOLLAR, HYPHEN, WORD_BOUNDARY,
// BACKREFERENCE.
func (k Kind) AtomStart() bool {
	switch k {
	case LeftParen, NoGroupExt, NamedGroupExt, IgnoredExt,
		LeftBracket, Character, CharClass, Caret, Dollar, Hyphen, WordBoundary, Backreference:
		return true
	default:
		return false
	}
}
