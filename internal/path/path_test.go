package path

import (
	"testing"

	"github.com/purduedualitylab/egret/internal/ast"
	"github.com/purduedualitylab/egret/internal/nfa"
)

func pathsFor(t *testing.T, regex string) []*Path {
	t.Helper()
	tree, err := ast.Parse(regex)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", regex, err)
	}
	n, err := nfa.Build(tree)
	if err != nil {
		t.Fatalf("Build(%q) error: %v", regex, err)
	}
	return FindBasisPaths(n)
}

func TestFindBasisPathsSingleCharacter(t *testing.T) {
	paths := pathsFor(t, "a")
	if len(paths) != 1 {
		t.Fatalf("expected 1 basis path for 'a', got %d", len(paths))
	}
}

func TestFindBasisPathsAlternationTwoBranches(t *testing.T) {
	paths := pathsFor(t, "a|b")
	if len(paths) != 2 {
		t.Fatalf("expected 2 basis paths for 'a|b', got %d", len(paths))
	}
}

func TestProcessSimpleConcat(t *testing.T) {
	paths := pathsFor(t, "ab")
	paths[0].Process("xxx")
	if paths[0].TestString != "ab" {
		t.Errorf("TestString = %q, want ab", paths[0].TestString)
	}
}

func TestProcessStringEdgeUsesBaseSubstring(t *testing.T) {
	paths := pathsFor(t, `\w+`)
	paths[0].Process("hello")
	if paths[0].TestString != "hello" {
		t.Errorf("TestString = %q, want hello", paths[0].TestString)
	}
}

func TestProcessLoopRepeatsLowerBound(t *testing.T) {
	paths := pathsFor(t, "a{3}")
	paths[0].Process("xxx")
	if paths[0].TestString != "aaa" {
		t.Errorf("TestString = %q, want aaa", paths[0].TestString)
	}
}

func TestProcessLoopZeroLowerBoundStillEmbedsOnePass(t *testing.T) {
	// Canonical differs from minimum-iteration on purpose: even a
	// zero-lower-bound loop keeps one representative body pass in
	// TestString (see TestGenMinIterStringSkipsOptionalRepeat for the
	// empty minimum-iteration counterpart), since Loop.GenEvilStrings
	// locates its suffix by assuming exactly one pass is present.
	paths := pathsFor(t, "a*")
	paths[0].Process("xxx")
	if paths[0].TestString != "a" {
		t.Errorf("TestString = %q, want a", paths[0].TestString)
	}
}

func TestHasLeadingCaretAndTrailingDollar(t *testing.T) {
	paths := pathsFor(t, "^a$")
	paths[0].Process("xxx")
	if !paths[0].HasLeadingCaret() {
		t.Error("expected HasLeadingCaret true for ^a$")
	}
	if !paths[0].HasTrailingDollar() {
		t.Error("expected HasTrailingDollar true for ^a$")
	}

	paths2 := pathsFor(t, "a")
	paths2[0].Process("xxx")
	if paths2[0].HasLeadingCaret() {
		t.Error("expected HasLeadingCaret false for 'a'")
	}
}

func TestGenMinIterStringSkipsOptionalRepeat(t *testing.T) {
	paths := pathsFor(t, "a{0,5}b")
	paths[0].Process("xxx")
	got := paths[0].GenMinIterString()
	if got != "b" {
		t.Errorf("GenMinIterString = %q, want b", got)
	}
}

func TestGenExampleStringSubstitutesAtLocation(t *testing.T) {
	paths := pathsFor(t, "[a-z]")
	p := paths[0]
	p.Process("xxx")
	loc := p.Edges[0].Loc
	got := p.GenExampleString(loc, 'q')
	if got != "q" {
		t.Errorf("GenExampleString = %q, want q", got)
	}
}

func TestGenExampleStringTwoSubstitutesBothLocations(t *testing.T) {
	paths := pathsFor(t, "[a-z][0-9]")
	p := paths[0]
	p.Process("xxx")
	loc1 := p.Edges[0].Loc
	loc2 := p.Edges[2].Loc // Edges[1] is the epsilon edge joining the two sets
	got := p.GenExampleStringTwo("xxx", loc1, 'q', loc2, '5')
	if got != "q5" {
		t.Errorf("GenExampleStringTwo = %q, want q5", got)
	}
}

func TestGenExampleStringReplaceSpansOneEdge(t *testing.T) {
	paths := pathsFor(t, `\w+ done`)
	p := paths[0]
	p.Process("xxx")
	loc := p.Edges[0].Loc // the STRING_EDGE for \w+
	got := p.GenExampleStringReplace("xxx", loc, "hello")
	if got != "hello done" {
		t.Errorf("GenExampleStringReplace = %q, want %q", got, "hello done")
	}
}

func TestGenEvilStringsForCharSet(t *testing.T) {
	paths := pathsFor(t, "[a-z]")
	p := paths[0]
	p.Process("xxx")
	evil := p.GenEvilStrings(nil)
	if len(evil) == 0 {
		t.Error("expected at least one evil string for a char-set edge")
	}
}
