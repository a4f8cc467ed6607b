// Package nfa builds an acyclic NFA-with-loop-edges from a parsed
// regex tree (spec.md §4.3), the way the teacher's nfa package
// compiles a parsed pattern into a state/edge table (see
// nfa/nfa.go's StateID/Kind enum idiom) — except here a repetition
// never becomes a graph cycle: it becomes a pair of BEGIN_LOOP/END_LOOP
// edges flanking an acyclic subgraph, sharing one *loop.Loop.
package nfa

import (
	"fmt"
	"strings"

	"github.com/purduedualitylab/egret/internal/ast"
	"github.com/purduedualitylab/egret/internal/backref"
	"github.com/purduedualitylab/egret/internal/charset"
	"github.com/purduedualitylab/egret/internal/conv"
	"github.com/purduedualitylab/egret/internal/loop"
	"github.com/purduedualitylab/egret/internal/regexstring"
	"github.com/purduedualitylab/egret/internal/span"
)

// StateID identifies a state in an NFA's edge table.
type StateID uint32

// EdgeType tags an Edge's variant, mirroring spec.md §3's Edge union.
type EdgeType uint8

const (
	EpsilonEdge EdgeType = iota
	CharacterEdge
	CharSetEdge
	StringEdge
	BeginLoopEdge
	EndLoopEdge
	CaretEdge
	DollarEdge
	BackreferenceEdge
)

// String returns a human-readable name for t, used by debug dumps and
// stats.
func (t EdgeType) String() string {
	switch t {
	case EpsilonEdge:
		return "EPSILON"
	case CharacterEdge:
		return "CHARACTER"
	case CharSetEdge:
		return "CHAR_SET"
	case StringEdge:
		return "STRING"
	case BeginLoopEdge:
		return "BEGIN_LOOP"
	case EndLoopEdge:
		return "END_LOOP"
	case CaretEdge:
		return "CARET"
	case DollarEdge:
		return "DOLLAR"
	case BackreferenceEdge:
		return "BACKREFERENCE"
	default:
		return "UNKNOWN"
	}
}

// Edge is one transition of the NFA. Exactly one payload field is
// populated, chosen by Type.
type Edge struct {
	Type      EdgeType
	Loc       span.Location
	Processed bool

	Character byte                     // CharacterEdge
	CharSet   *charset.CharSet         // CharSetEdge
	RegexStr  *regexstring.RegexString // StringEdge
	Loop      *loop.Loop               // BeginLoopEdge, EndLoopEdge (shared by both)
	Backref   *backref.Backref         // BackreferenceEdge

	// Substring holds this edge's resolved contribution to a path's
	// test string, filled in during path processing.
	Substring string
}

// Charset returns the character set governing this edge, unwrapping
// the StringEdge's RegexString the way the original's get_charset()
// does, so checker rules can treat CHAR_SET_EDGE and STRING_EDGE
// uniformly.
func (e *Edge) Charset() *charset.CharSet {
	if e.Type == StringEdge {
		return e.RegexStr.CharSet
	}
	return e.CharSet
}

func epsilon() *Edge { return &Edge{Type: EpsilonEdge, Loc: span.None} }

// NFA is a state/edge-table automaton with no cycles other than the
// BEGIN_LOOP/END_LOOP pairing a repetition's shared Loop encodes.
type NFA struct {
	Size    int
	Initial StateID
	Final   StateID
	Edges   [][]*Edge // Edges[from][to]
}

func newNFA(size int, initial, final StateID) *NFA {
	edges := make([][]*Edge, size)
	for i := range edges {
		edges[i] = make([]*Edge, size)
	}
	return &NFA{Size: size, Initial: initial, Final: final, Edges: edges}
}

func newLeaf(edge *Edge) *NFA {
	n := newNFA(2, 0, 1)
	n.addEdge(0, 1, edge)
	return n
}

func (n *NFA) addEdge(from, to StateID, edge *Edge) { n.Edges[from][to] = edge }

// Dump renders the state/edge table for Options.DebugMode, the Go
// equivalent of NFA::print()'s "State N: To state M on TYPE" layout.
func (n *NFA) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA:\n")
	fmt.Fprintf(&b, "Number of states: %d Initial state: %d Final state: %d\n", n.Size, n.Initial, n.Final)
	fmt.Fprintf(&b, "Edge table:\n")
	for from := 0; from < n.Size; from++ {
		fmt.Fprintf(&b, "State %d:\n", from)
		for to := 0; to < n.Size; to++ {
			e := n.Edges[from][to]
			if e == nil {
				continue
			}
			fmt.Fprintf(&b, "  To state %d on %s", to, e.Type)
			switch e.Type {
			case CharacterEdge:
				fmt.Fprintf(&b, " %q", e.Character)
			case StringEdge:
				fmt.Fprintf(&b, " lower=%d", e.RegexStr.Lower)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// shiftStates renumbers every state by adding shift, growing the edge
// table to match. Used before merging two sub-NFAs so their state
// numbers don't collide.
func (n *NFA) shiftStates(shift int) {
	if shift < 1 {
		return
	}
	newSize := n.Size + shift
	newEdges := make([][]*Edge, newSize)
	for i := range newEdges {
		newEdges[i] = make([]*Edge, newSize)
	}
	for i := 0; i < n.Size; i++ {
		for j := 0; j < n.Size; j++ {
			newEdges[i+shift][j+shift] = n.Edges[i][j]
		}
	}
	n.Size = newSize
	n.Initial += StateID(conv.IntToUint32(shift))
	n.Final += StateID(conv.IntToUint32(shift))
	n.Edges = newEdges
}

func (n *NFA) clone() *NFA {
	edges := make([][]*Edge, n.Size)
	for i := range edges {
		edges[i] = append([]*Edge(nil), n.Edges[i]...)
	}
	return &NFA{Size: n.Size, Initial: n.Initial, Final: n.Final, Edges: edges}
}

// fillStates copies other's edges into the corresponding cells of n,
// after a shiftStates on other has made room for them.
func (n *NFA) fillStates(other *NFA) {
	for i := 0; i < other.Size; i++ {
		for j := 0; j < other.Size; j++ {
			n.Edges[i][j] = other.Edges[i][j]
		}
	}
}

func (n *NFA) appendEmptyState() {
	newSize := n.Size + 1
	newEdges := make([][]*Edge, newSize)
	for i := 0; i < n.Size; i++ {
		newEdges[i] = append(n.Edges[i], nil)
	}
	newEdges[n.Size] = make([]*Edge, newSize)
	n.Size = newSize
	n.Edges = newEdges
}

// Build compiles a parsed regex tree into an NFA via bottom-up
// Thompson construction (spec.md §4.3).
func Build(tree *ast.Tree) (*NFA, error) {
	return build(tree.Root)
}

func build(n *ast.Node) (*NFA, error) {
	switch n.Type {
	case ast.AlternationNode:
		return buildAlternation(n)
	case ast.ConcatNode:
		return buildConcat(n)
	case ast.RepeatNode:
		return buildRepeat(n)
	case ast.GroupNode:
		return build(n.Left)
	case ast.CharacterNode:
		return newLeaf(&Edge{Type: CharacterEdge, Loc: n.Loc, Character: n.Character}), nil
	case ast.CaretNode:
		return newLeaf(&Edge{Type: CaretEdge, Loc: n.Loc}), nil
	case ast.DollarNode:
		return newLeaf(&Edge{Type: DollarEdge, Loc: n.Loc}), nil
	case ast.CharSetNode:
		return newLeaf(&Edge{Type: CharSetEdge, Loc: n.Loc, CharSet: n.CharSet}), nil
	case ast.IgnoredNode:
		return newLeaf(epsilon()), nil
	case ast.BackreferenceNode:
		return newLeaf(&Edge{Type: BackreferenceEdge, Loc: n.Loc, Backref: n.Backref}), nil
	default:
		return nil, fmt.Errorf("nfa: invalid node type %v", n.Type)
	}
}

func buildAlternation(n *ast.Node) (*NFA, error) {
	nfa1, err := build(n.Left)
	if err != nil {
		return nil, err
	}
	nfa2, err := build(n.Right)
	if err != nil {
		return nil, err
	}

	nfa1.shiftStates(1)
	nfa2.shiftStates(nfa1.Size)

	out := nfa2.clone()
	out.fillStates(nfa1)

	out.addEdge(0, nfa1.Initial, epsilon())
	out.addEdge(0, nfa2.Initial, epsilon())
	out.Initial = 0

	out.appendEmptyState()
	out.Final = StateID(out.Size - 1)
	out.addEdge(nfa1.Final, out.Final, epsilon())
	out.addEdge(nfa2.Final, out.Final, epsilon())

	return out, nil
}

func buildConcat(n *ast.Node) (*NFA, error) {
	nfa1, err := build(n.Left)
	if err != nil {
		return nil, err
	}
	nfa2, err := build(n.Right)
	if err != nil {
		return nil, err
	}
	return concatNFA(nfa1, nfa2), nil
}

// concatNFA sequences nfa1 then nfa2, merging nfa1's final state into
// nfa2's initial state via an epsilon edge.
func concatNFA(nfa1, nfa2 *NFA) *NFA {
	nfa2.shiftStates(nfa1.Size)

	out := nfa2.clone()
	out.fillStates(nfa1)

	out.addEdge(nfa1.Final, out.Initial, epsilon())
	out.Initial = nfa1.Initial

	return out
}

func buildRepeat(n *ast.Node) (*NFA, error) {
	if isRegexString(n.Left, n.RepeatLower, n.RepeatUpper) {
		return buildString(n), nil
	}

	inner, err := build(n.Left)
	if err != nil {
		return nil, err
	}

	inner.shiftStates(1)
	inner.appendEmptyState()

	lp := loop.New(n.RepeatLower, n.RepeatUpper)
	inner.addEdge(0, inner.Initial, &Edge{Type: BeginLoopEdge, Loc: n.Loc, Loop: lp})
	inner.addEdge(inner.Final, StateID(inner.Size-1), &Edge{Type: EndLoopEdge, Loc: n.Loc, Loop: lp})

	inner.Initial = 0
	inner.Final = StateID(inner.Size - 1)

	return inner, nil
}

// buildString specializes a repeated string-candidate character set
// into a single STRING edge instead of a loop around a char-set edge
// (spec.md §4.3).
func buildString(n *ast.Node) *NFA {
	rs := regexstring.New(n.Left.CharSet, n.RepeatLower, n.RepeatUpper)
	loc := span.Span(n.Left.Loc, n.Loc)
	edge := &Edge{Type: StringEdge, Loc: loc, RegexStr: rs}
	return newLeaf(edge)
}

// isRegexString reports whether a repeated node qualifies for the
// string-edge optimization: a repeated, non-complemented character set
// that admits letters, quantified by '*' or '+' (spec.md §4.3).
func isRegexString(node *ast.Node, lower, upper int) bool {
	if node.Type != ast.CharSetNode {
		return false
	}
	if upper != -1 {
		return false
	}
	if lower != 0 && lower != 1 {
		return false
	}
	return node.CharSet.IsStringCandidate()
}
