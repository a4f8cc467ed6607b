// Package ast implements EGRET's recursive-descent parser (spec.md
// §4.2) over the token stream produced by the scanner package.
//
// The teacher parses regex source via the standard library's
// regexp/syntax and never hand-rolls a lexer/parser pair, so this
// package is grounded instead on quasilyte-regex/syntax — the one pack
// repo that does hand-roll a PCRE-flavored recursive-descent parser:
// a Kind enum of token/node tags, a Lexer with peek-ahead helpers, and
// one parser method per BNF production.
package ast

import (
	"fmt"
	"strings"

	"github.com/purduedualitylab/egret/internal/backref"
	"github.com/purduedualitylab/egret/internal/charset"
	"github.com/purduedualitylab/egret/internal/scanner"
	"github.com/purduedualitylab/egret/internal/span"
	"github.com/purduedualitylab/egret/internal/token"
)

// NodeType tags a ParseNode's variant.
type NodeType uint8

const (
	AlternationNode NodeType = iota
	ConcatNode
	RepeatNode
	GroupNode
	BackreferenceNode
	CharacterNode
	CharSetNode
	CaretNode
	DollarNode
	IgnoredNode
)

// String names a NodeType for debug dumps.
func (t NodeType) String() string {
	switch t {
	case AlternationNode:
		return "ALTERNATION"
	case ConcatNode:
		return "CONCAT"
	case RepeatNode:
		return "REPEAT"
	case GroupNode:
		return "GROUP"
	case BackreferenceNode:
		return "BACKREFERENCE"
	case CharacterNode:
		return "CHARACTER"
	case CharSetNode:
		return "CHAR_SET"
	case CaretNode:
		return "CARET"
	case DollarNode:
		return "DOLLAR"
	case IgnoredNode:
		return "IGNORED"
	default:
		return "UNKNOWN"
	}
}

// Node is a tagged parse-tree node. Tree ownership is a rooted DAG with
// no cycles: each Node exclusively owns Left/Right.
type Node struct {
	Type NodeType
	Loc  span.Location

	Left  *Node
	Right *Node

	Character byte             // CharacterNode
	CharSet   *charset.CharSet // CharSetNode
	Backref   *backref.Backref // BackreferenceNode

	RepeatLower int // RepeatNode
	RepeatUpper int // RepeatNode, -1 for unbounded

	GroupName   string // GroupNode
	GroupNumber int    // GroupNode, 0 for non-capturing
}

// Tree is the output of Parse: a rooted node plus the bookkeeping the
// NFA builder and checker need afterward.
type Tree struct {
	Root           *Node
	GroupLocs      map[int]span.Location
	NamedGroupLocs map[string]span.Location
	PunctMarks     map[byte]struct{}
}

// Dump renders the parse tree as an indented outline for
// Options.DebugMode, the Go equivalent of ParseTree::print().
func (t *Tree) Dump() string {
	var b strings.Builder
	dumpNode(&b, t.Root, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	fmt.Fprintf(b, "%s%s [%d,%d)", strings.Repeat("  ", depth), n.Type, n.Loc.Start, n.Loc.End)
	switch n.Type {
	case CharacterNode:
		fmt.Fprintf(b, " %q", n.Character)
	case RepeatNode:
		fmt.Fprintf(b, " {%d,%d}", n.RepeatLower, n.RepeatUpper)
	case GroupNode:
		if n.GroupName != "" {
			fmt.Fprintf(b, " name=%s", n.GroupName)
		}
		fmt.Fprintf(b, " num=%d", n.GroupNumber)
	}
	b.WriteByte('\n')
	dumpNode(b, n.Left, depth+1)
	dumpNode(b, n.Right, depth+1)
}

// SyntaxError is a fatal parse-time failure with the source location
// that triggered it.
type SyntaxError struct {
	Loc     span.Location
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string { return e.Message }

func fatalf(loc span.Location, format string, args ...any) error {
	return &SyntaxError{Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// Parse scans and parses regex into a Tree, or returns a *SyntaxError.
func Parse(regex string) (*Tree, error) {
	sc, err := scanner.New(regex)
	if err != nil {
		return nil, fatalf(span.None, "%v", err)
	}

	if sc.CurrentKind() == token.Err && len(regex) == 0 {
		return &Tree{
			Root:           &Node{Type: IgnoredNode, Loc: span.Location{Start: 0, End: 0}},
			GroupLocs:      map[int]span.Location{},
			NamedGroupLocs: map[string]span.Location{},
			PunctMarks:     sc.PuncMarks(),
		}, nil
	}

	p := &Parser{
		scanner:        sc,
		groupLocs:      map[int]span.Location{},
		namedGroupLocs: map[string]span.Location{},
	}

	root, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != token.Err {
		return nil, fatalf(p.cur().Loc, "unexpected trailing input in regex")
	}

	return &Tree{
		Root:           root,
		GroupLocs:      p.groupLocs,
		NamedGroupLocs: p.namedGroupLocs,
		PunctMarks:     sc.PuncMarks(),
	}, nil
}

// Parser is the recursive-descent engine over the BNF of spec.md §4.2.
type Parser struct {
	scanner *scanner.Scanner

	groupCount     int
	groupLocs      map[int]span.Location
	namedGroupLocs map[string]span.Location
}

func (p *Parser) cur() token.Token { return p.scanner.Current() }

func (p *Parser) advance() error { return p.scanner.Advance() }

// atExprEnd reports whether the current token ends an expr production
// with nothing following: either a ')' closing an enclosing group, or
// end of input.
func (p *Parser) atExprEnd() bool {
	k := p.cur().Kind
	return k == token.RightParen || k == token.Err
}

func makeOptional(n *Node) *Node {
	return &Node{Type: RepeatNode, Loc: n.Loc, Left: n, RepeatLower: 0, RepeatUpper: 1}
}

// expr ::= concat '|' expr | concat '|' | '|' expr | '|' | concat
func (p *Parser) expr() (*Node, error) {
	if p.cur().Kind == token.Alternation {
		loc := p.cur().Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.atExprEnd() {
			return nil, fatalf(loc, "pointless alternation")
		}
		right, err := p.expr()
		if err != nil {
			return nil, err
		}
		return makeOptional(right), nil
	}

	left, err := p.concat()
	if err != nil {
		return nil, err
	}

	if p.cur().Kind == token.Alternation {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.atExprEnd() {
			return makeOptional(left), nil
		}
		right, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &Node{Type: AlternationNode, Loc: span.Span(left.Loc, right.Loc), Left: left, Right: right}, nil
	}

	return left, nil
}

// concat ::= rep concat | rep
func (p *Parser) concat() (*Node, error) {
	first, err := p.rep()
	if err != nil {
		return nil, err
	}
	if p.scanner.IsConcat() {
		rest, err := p.concat()
		if err != nil {
			return nil, err
		}
		return &Node{Type: ConcatNode, Loc: span.Span(first.Loc, rest.Loc), Left: first, Right: rest}, nil
	}
	return first, nil
}

// rep ::= atom ('*' | '+' | '?' | '{n,m}')?
func (p *Parser) rep() (*Node, error) {
	a, err := p.atom()
	if err != nil {
		return nil, err
	}

	switch p.cur().Kind {
	case token.Star:
		loc := p.cur().Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: RepeatNode, Loc: span.Span(a.Loc, loc), Left: a, RepeatLower: 0, RepeatUpper: -1}, nil
	case token.Plus:
		loc := p.cur().Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: RepeatNode, Loc: span.Span(a.Loc, loc), Left: a, RepeatLower: 1, RepeatUpper: -1}, nil
	case token.Question:
		loc := p.cur().Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: RepeatNode, Loc: span.Span(a.Loc, loc), Left: a, RepeatLower: 0, RepeatUpper: 1}, nil
	case token.Repeat:
		lower, upper := p.scanner.CurrentRepeatBounds()
		loc := p.cur().Loc
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: RepeatNode, Loc: span.Span(a.Loc, loc), Left: a, RepeatLower: lower, RepeatUpper: upper}, nil
	default:
		// A single-character set not under a quantifier is just that
		// character; collapsing here (rather than in charSet) keeps a
		// quantified single-char set intact as a CharSetNode, the shape
		// buildRepeat and the checker's repeat-punctuation rule need.
		if a.Type == CharSetNode && a.CharSet.IsSingleChar() {
			return &Node{Type: CharacterNode, Loc: a.Loc, Character: a.CharSet.Items[0].Character}, nil
		}
		return a, nil
	}
}

// atom ::= group | character | char_class | char_set
func (p *Parser) atom() (*Node, error) {
	tok := p.cur()

	switch tok.Kind {
	case token.LeftParen:
		return p.group(false, "")
	case token.NoGroupExt:
		return p.group(true, "")
	case token.NamedGroupExt:
		return p.group(false, tok.GroupName)
	case token.IgnoredExt:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: IgnoredNode, Loc: tok.Loc}, nil
	case token.LeftBracket:
		return p.charSet()
	case token.CharClass:
		if err := p.advance(); err != nil {
			return nil, err
		}
		cs := charset.New()
		cs.AddItem(charset.Item{Type: charset.CharClassItem, Character: tok.Character, Loc: tok.Loc})
		return &Node{Type: CharSetNode, Loc: tok.Loc, CharSet: cs}, nil
	case token.Caret:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: CaretNode, Loc: tok.Loc}, nil
	case token.Dollar:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: DollarNode, Loc: tok.Loc}, nil
	case token.WordBoundary:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: IgnoredNode, Loc: tok.Loc}, nil
	case token.Character, token.Hyphen:
		c := tok.Character
		if tok.Kind == token.Hyphen {
			c = '-'
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Node{Type: CharacterNode, Loc: tok.Loc, Character: c}, nil
	case token.Backreference:
		return p.backreference()
	default:
		return nil, fatalf(tok.Loc, "unexpected token %s in regex", tok.Kind)
	}
}

// group ::= '(' [ext] expr? ')'
func (p *Parser) group(noCapture bool, name string) (*Node, error) {
	startLoc := p.cur().Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	var inner *Node
	if p.cur().Kind == token.RightParen {
		inner = &Node{Type: IgnoredNode, Loc: startLoc}
	} else {
		var err error
		inner, err = p.expr()
		if err != nil {
			return nil, err
		}
	}

	if p.cur().Kind != token.RightParen {
		return nil, fatalf(p.cur().Loc, "unterminated group, expected ')'")
	}
	endLoc := p.cur().Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	loc := span.Span(startLoc, endLoc)
	groupNum := 0
	if !noCapture {
		p.groupCount++
		groupNum = p.groupCount
		p.groupLocs[groupNum] = loc
		if name != "" {
			p.namedGroupLocs[name] = loc
		}
	}

	return &Node{Type: GroupNode, Loc: loc, Left: inner, GroupName: name, GroupNumber: groupNum}, nil
}

// char_set ::= '[' ['^'] char_list ']'
func (p *Parser) charSet() (*Node, error) {
	startLoc := p.cur().Loc
	if err := p.advance(); err != nil {
		return nil, err
	}

	cs := charset.New()
	if p.cur().Kind == token.Character && p.cur().Character == '^' {
		cs.Complement = true
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	for p.cur().Kind != token.RightBracket {
		if p.cur().Kind == token.Err {
			return nil, fatalf(startLoc, "unterminated character set")
		}
		item, err := p.listItem()
		if err != nil {
			return nil, err
		}
		cs.AddItem(item)
	}

	endLoc := p.cur().Loc
	if err := p.advance(); err != nil {
		return nil, err
	}
	loc := span.Span(startLoc, endLoc)

	// Single-character sets collapse to a CharacterNode in rep, once we
	// know whether a quantifier follows; here we always return the set.
	return &Node{Type: CharSetNode, Loc: loc, CharSet: cs}, nil
}

// char_list ::= list_item char_list | list_item
// list_item ::= character_item | char_class_item | char_range_item
func (p *Parser) listItem() (charset.Item, error) {
	switch p.cur().Kind {
	case token.CharClass:
		return p.charClassItem()
	case token.Hyphen:
		return p.characterItem()
	case token.Character:
		if p.scanner.IsCharRange() {
			return p.charRangeItem()
		}
		return p.characterItem()
	default:
		return charset.Item{}, fatalf(p.cur().Loc, "unexpected token in character set")
	}
}

func (p *Parser) characterItem() (charset.Item, error) {
	tok := p.cur()
	c := tok.Character
	if tok.Kind == token.Hyphen {
		c = '-'
	}
	if err := p.advance(); err != nil {
		return charset.Item{}, err
	}
	return charset.Item{Type: charset.CharacterItem, Character: c, Loc: tok.Loc}, nil
}

func (p *Parser) charClassItem() (charset.Item, error) {
	tok := p.cur()
	if err := p.advance(); err != nil {
		return charset.Item{}, err
	}
	return charset.Item{Type: charset.CharClassItem, Character: tok.Character, Loc: tok.Loc}, nil
}

func (p *Parser) charRangeItem() (charset.Item, error) {
	startTok := p.cur()
	if err := p.advance(); err != nil { // consume start char
		return charset.Item{}, err
	}
	if p.cur().Kind != token.Hyphen {
		return charset.Item{}, fatalf(p.cur().Loc, "expected '-' in character range")
	}
	if err := p.advance(); err != nil { // consume '-'
		return charset.Item{}, err
	}
	endTok := p.cur()
	if endTok.Kind != token.Character {
		return charset.Item{}, fatalf(endTok.Loc, "expected character after '-' in character range")
	}
	if err := p.advance(); err != nil { // consume end char
		return charset.Item{}, err
	}
	return charset.Item{
		Type:       charset.CharRangeItem,
		RangeStart: startTok.Character,
		RangeEnd:   endTok.Character,
		Loc:        span.Span(startTok.Loc, endTok.Loc),
	}, nil
}

func (p *Parser) backreference() (*Node, error) {
	tok := p.cur()
	if err := p.advance(); err != nil {
		return nil, err
	}

	if tok.BackrefNumber >= 0 {
		loc, ok := p.groupLocs[tok.BackrefNumber]
		if !ok {
			return nil, fatalf(tok.Loc, "backreference to undefined group %d", tok.BackrefNumber)
		}
		return &Node{Type: BackreferenceNode, Loc: tok.Loc, Backref: backref.New("", tok.BackrefNumber, loc)}, nil
	}

	loc, ok := p.namedGroupLocs[tok.GroupName]
	if !ok {
		return nil, fatalf(tok.Loc, "backreference to undefined group %q", tok.GroupName)
	}
	return &Node{Type: BackreferenceNode, Loc: tok.Loc, Backref: backref.New(tok.GroupName, -1, loc)}, nil
}
