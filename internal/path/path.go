// Package path implements EGRET's basis-path finder and path processor
// (spec.md §4.4, §4.5): enumerating one path per alternative branch
// through the NFA, resolving each edge to a concrete substring, and
// exposing the example/evil-string generation the checker and test
// generator packages build on.
package path

import (
	"strings"

	"github.com/purduedualitylab/egret/internal/nfa"
	"github.com/purduedualitylab/egret/internal/regexstring"
	"github.com/purduedualitylab/egret/internal/span"
)

// Path is one walk from the NFA's initial state to its final state.
type Path struct {
	States []nfa.StateID
	Edges  []*nfa.Edge

	TestString string
	EvilEdges  []int // indices into Edges flagged evil during Process
}

func newPath(initial nfa.StateID) *Path {
	return &Path{States: []nfa.StateID{initial}}
}

func (p *Path) append(edge *nfa.Edge, state nfa.StateID) {
	p.Edges = append(p.Edges, edge)
	p.States = append(p.States, state)
}

func (p *Path) removeLast() {
	p.Edges = p.Edges[:len(p.Edges)-1]
	p.States = p.States[:len(p.States)-1]
}

func (p *Path) clone() *Path {
	return &Path{
		States: append([]nfa.StateID(nil), p.States...),
		Edges:  append([]*nfa.Edge(nil), p.Edges...),
	}
}

// FindBasisPaths enumerates one path per basis route through n: a
// depth-first search from the initial state, trying successors in
// state order. Each time the final state is reached the path is
// recorded and all its states are marked visited; a state that was
// already visited when the search entered it follows only its first
// outgoing edge. This keeps the path set compact — bounded by the
// graph's structure — instead of exhaustively enumerating a
// combinatorial product of every branch.
func FindBasisPaths(n *nfa.NFA) []*Path {
	visited := make([]bool, n.Size)
	var paths []*Path
	start := newPath(n.Initial)
	traverse(n, n.Initial, start, &paths, visited)
	return paths
}

func traverse(n *nfa.NFA, curr nfa.StateID, p *Path, paths *[]*Path, visited []bool) {
	beenHere := visited[curr]

	if curr == n.Final {
		markVisited(p, visited)
		*paths = append(*paths, p.clone())
		return
	}

	for next := nfa.StateID(0); int(next) < n.Size; next++ {
		edge := n.Edges[curr][next]
		if edge == nil {
			continue
		}
		p.append(edge, next)
		traverse(n, next, p, paths, visited)
		p.removeLast()
		if beenHere {
			break
		}
	}
}

func markVisited(p *Path, visited []bool) {
	for _, s := range p.States {
		visited[s] = true
	}
}

// Process walks the path's edges in order, resolving each to a
// concrete substring and assembling TestString (spec.md §4.5).
// baseSubstring is the user-supplied word substituted for repeated
// string-candidate character sets (spec.md §6).
func (p *Path) Process(baseSubstring string) {
	var sb strings.Builder
	for i, edge := range p.Edges {
		prefix := sb.String()
		sub, evil := p.processOne(edge, prefix, baseSubstring)
		edge.Substring = sub
		edge.Processed = true
		if evil {
			p.EvilEdges = append(p.EvilEdges, i)
		}
		sb.WriteString(sub)
	}
	p.TestString = sb.String()
}

func (p *Path) processOne(edge *nfa.Edge, prefix, baseSubstring string) (string, bool) {
	switch edge.Type {
	case nfa.CharacterEdge:
		return string(edge.Character), false

	case nfa.CaretEdge, nfa.DollarEdge, nfa.EpsilonEdge:
		return "", false

	case nfa.CharSetEdge:
		edge.CharSet.SetPrefix(prefix)
		c := edge.CharSet.GetValidCharacter(0)
		return string(c), true

	case nfa.StringEdge:
		rs := edge.RegexStr
		rs.SetPrefix(prefix)
		body := regexstring.Body(baseSubstring, rs.Lower)
		rs.SetSubstring(body)
		return body, true

	case nfa.BeginLoopEdge:
		edge.Loop.SetCurrPrefix(prefix)
		return "", false

	case nfa.EndLoopEdge:
		lp := edge.Loop
		lp.SetCurrSubstring(prefix) // prefix already holds one body pass
		lp.Commit()
		extra := lp.Lower - 1
		if extra < 0 {
			extra = 0
		}
		return strings.Repeat(lp.Substring, extra), true

	case nfa.BackreferenceEdge:
		br := edge.Backref
		br.SetCurrPrefix(prefix)
		br.SetCurrSubstring(p.genBackrefString(br.GroupLoc))
		br.CommitFromCurr()
		return br.Substring, true

	default:
		return "", false
	}
}

// genBackrefString concatenates the substrings of every edge whose
// location falls strictly inside loc — the span of the group a
// backreference refers to. Requires those edges to already be
// processed, which holds because a group always closes, and so is
// walked, before any reference to it can appear in the path.
func (p *Path) genBackrefString(loc span.Location) string {
	var sb strings.Builder
	for _, e := range p.Edges {
		if e.Loc.Start > loc.Start && e.Loc.Start < loc.End {
			sb.WriteString(e.Substring)
		}
	}
	return sb.String()
}

// HasLeadingCaret reports whether the path opens with a ^ anchor,
// skipping over loop/backreference/epsilon bookkeeping edges that
// carry no text.
func (p *Path) HasLeadingCaret() bool {
	for _, e := range p.Edges {
		switch e.Type {
		case nfa.CaretEdge:
			return true
		case nfa.BeginLoopEdge, nfa.EndLoopEdge, nfa.BackreferenceEdge, nfa.EpsilonEdge:
			continue
		default:
			return false
		}
	}
	return false
}

// HasTrailingDollar reports whether the path closes with a $ anchor.
func (p *Path) HasTrailingDollar() bool {
	for i := len(p.Edges) - 1; i >= 0; i-- {
		switch p.Edges[i].Type {
		case nfa.DollarEdge:
			return true
		case nfa.BeginLoopEdge, nfa.EndLoopEdge, nfa.BackreferenceEdge, nfa.EpsilonEdge:
			continue
		default:
			return false
		}
	}
	return false
}

// genExample replays every edge's resolution, letting transform
// substitute what gets appended for a given edge's naturally-resolved
// substring. Used by the GenExampleString family to synthesize a
// string identical to TestString except at one or two call-out
// locations.
func (p *Path) genExample(baseSubstring string, transform func(edge *nfa.Edge, sub string) string) string {
	var sb strings.Builder
	for _, edge := range p.Edges {
		prefix := sb.String()
		sub, _ := p.processOne(edge, prefix, baseSubstring)
		sb.WriteString(transform(edge, sub))
	}
	return sb.String()
}

// GenExampleString renders the path with c substituted at loc. This is
// the charset.ExampleGenerator method CharSet.Check calls.
func (p *Path) GenExampleString(loc span.Location, c byte) string {
	return p.genExampleWith("", loc, c)
}

// GenExampleStringWithBase is GenExampleString for callers that know
// the process-wide base substring (needed so STRING_EDGE segments
// elsewhere in the path still render correctly).
func (p *Path) GenExampleStringWithBase(baseSubstring string, loc span.Location, c byte) string {
	return p.genExampleWith(baseSubstring, loc, c)
}

func (p *Path) genExampleWith(baseSubstring string, loc span.Location, c byte) string {
	return p.genExample(baseSubstring, func(edge *nfa.Edge, sub string) string {
		if edge.Loc.Start == loc.Start {
			return string(c)
		}
		return sub
	})
}

// GenExampleStringExcept renders the path with c substituted at loc,
// and any edge whose natural substring equals except given a different
// valid character instead (used when the natural choice would collide
// with the thing being flagged).
func (p *Path) GenExampleStringExcept(baseSubstring string, loc span.Location, c, except byte) string {
	return p.genExample(baseSubstring, func(edge *nfa.Edge, sub string) string {
		if edge.Loc.Start == loc.Start {
			return string(c)
		}
		if sub == string(except) && edge.Type == nfa.CharSetEdge {
			return string(edge.CharSet.GetValidCharacter(except))
		}
		return sub
	})
}

// GenExampleStringOmit renders the path with c substituted at loc and
// the edge at omit dropped entirely.
func (p *Path) GenExampleStringOmit(baseSubstring string, loc span.Location, c byte, omit span.Location) string {
	return p.genExample(baseSubstring, func(edge *nfa.Edge, sub string) string {
		switch {
		case edge.Loc.Start == loc.Start:
			return string(c)
		case edge.Loc.Start == omit.Start:
			return ""
		default:
			return sub
		}
	})
}

// GenExampleStringTwo renders the path with c1 substituted at loc1 and
// c2 substituted at loc2.
func (p *Path) GenExampleStringTwo(baseSubstring string, loc1 span.Location, c1 byte, loc2 span.Location, c2 byte) string {
	return p.genExample(baseSubstring, func(edge *nfa.Edge, sub string) string {
		switch {
		case edge.Loc.Start == loc1.Start:
			return string(c1)
		case edge.Loc.Start == loc2.Start:
			return string(c2)
		default:
			return sub
		}
	})
}

// GenExampleStringReplace renders the path with the span loc replaced
// by replace wholesale, dropping every edge whose location falls
// inside that span.
func (p *Path) GenExampleStringReplace(baseSubstring string, loc span.Location, replace string) string {
	var sb strings.Builder
	inReplace := false
	replaced := false
	for _, edge := range p.Edges {
		prefix := sb.String()
		sub, _ := p.processOne(edge, prefix, baseSubstring)
		switch {
		case edge.Loc.Start == loc.Start:
			if !replaced {
				sb.WriteString(replace)
				replaced = true
			}
			inReplace = edge.Loc.End != loc.End
		case edge.Loc.End == loc.End:
			inReplace = false
		case !inReplace:
			sb.WriteString(sub)
		}
	}
	return sb.String()
}

// GenMinIterString renders a string that takes every optional
// repetition zero times (spec.md §4.7), showing what the pattern
// accepts at its most permissive.
//
// Edges inside a loop body never contribute on their own: the
// surrounding BEGIN_LOOP/END_LOOP pair already folded one pass through
// the body into Loop.Substring during Process, and the outermost
// END_LOOP_EDGE repeats that Lower times (mirroring Process's own
// body-written-once-plus-Lower-copies convention). depth tracks loop
// nesting so only edges outside any loop, and the END_LOOP_EDGE that
// closes the outermost loop, add to the result.
func (p *Path) GenMinIterString() string {
	var out []byte
	depth := 0
	for _, edge := range p.Edges {
		switch edge.Type {
		case nfa.BeginLoopEdge:
			depth++
		case nfa.EndLoopEdge:
			depth--
			if depth == 0 {
				edge.Loop.GenMinIterString(&out)
			}
		case nfa.CharacterEdge:
			if depth == 0 {
				out = append(out, edge.Character)
			}
		case nfa.StringEdge:
			if depth == 0 {
				edge.RegexStr.GenMinIterString(&out)
			}
		case nfa.BackreferenceEdge:
			if depth == 0 {
				edge.Backref.GenMinIterString(&out)
			}
		case nfa.CharSetEdge:
			if depth == 0 {
				out = append(out, edge.Substring...)
			}
		}
	}
	return string(out)
}

// GenEvilStrings produces the path's band of the mutation catalog
// (spec.md §4.7): every flagged edge contributes its own variants,
// built from the already-resolved TestString.
func (p *Path) GenEvilStrings(punctMarks map[byte]struct{}) []string {
	var evil []string
	for _, idx := range p.EvilEdges {
		edge := p.Edges[idx]
		evil = append(evil, genEdgeEvilStrings(edge, p.TestString, punctMarks)...)
	}
	return evil
}

func genEdgeEvilStrings(edge *nfa.Edge, testString string, punctMarks map[byte]struct{}) []string {
	switch edge.Type {
	case nfa.CharSetEdge:
		start := len(edge.CharSet.Prefix)
		end := start + len(edge.Substring)
		return edge.CharSet.GenEvilStrings(testString[:start], testString[end:], punctMarks)
	case nfa.StringEdge:
		return edge.RegexStr.GenEvilStrings(testString, punctMarks)
	case nfa.EndLoopEdge:
		return edge.Loop.GenEvilStrings(testString)
	case nfa.BackreferenceEdge:
		return edge.Backref.GenEvilStrings(testString)
	default:
		return nil
	}
}
