package ast

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, regex string) *Tree {
	t.Helper()
	tree, err := Parse(regex)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", regex, err)
	}
	return tree
}

func TestParseConcat(t *testing.T) {
	tree := mustParse(t, "ab")
	if tree.Root.Type != ConcatNode {
		t.Fatalf("root type = %v, want ConcatNode", tree.Root.Type)
	}
	if tree.Root.Left.Character != 'a' || tree.Root.Right.Character != 'b' {
		t.Error("concat children should be the two literal characters in order")
	}
}

func TestParseAlternation(t *testing.T) {
	tree := mustParse(t, "a|b")
	if tree.Root.Type != AlternationNode {
		t.Fatalf("root type = %v, want AlternationNode", tree.Root.Type)
	}
}

func TestParseEmptyAlternationBranchBecomesOptional(t *testing.T) {
	tree := mustParse(t, "a|")
	if tree.Root.Type != RepeatNode || tree.Root.RepeatLower != 0 || tree.Root.RepeatUpper != 1 {
		t.Fatalf("'a|' should parse to an optional repeat, got %+v", tree.Root)
	}

	tree2 := mustParse(t, "|a")
	if tree2.Root.Type != RepeatNode || tree2.Root.RepeatLower != 0 || tree2.Root.RepeatUpper != 1 {
		t.Fatalf("'|a' should parse to an optional repeat, got %+v", tree2.Root)
	}
}

func TestParsePointlessAlternationIsFatal(t *testing.T) {
	if _, err := Parse("|"); err == nil {
		t.Error("'|' alone should be a fatal parse error")
	}
}

func TestParseRepeatForms(t *testing.T) {
	cases := []struct {
		src              string
		lower, upper int
	}{
		{"a*", 0, -1},
		{"a+", 1, -1},
		{"a?", 0, 1},
		{"a{2,5}", 2, 5},
		{"a{3}", 3, 3},
	}
	for _, c := range cases {
		tree := mustParse(t, c.src)
		if tree.Root.Type != RepeatNode {
			t.Fatalf("%q: root type = %v, want RepeatNode", c.src, tree.Root.Type)
		}
		if tree.Root.RepeatLower != c.lower || tree.Root.RepeatUpper != c.upper {
			t.Errorf("%q: bounds = (%d,%d), want (%d,%d)", c.src, tree.Root.RepeatLower, tree.Root.RepeatUpper, c.lower, c.upper)
		}
	}
}

func TestParseGroupCapturing(t *testing.T) {
	tree := mustParse(t, "(a)")
	if tree.Root.Type != GroupNode {
		t.Fatalf("root type = %v, want GroupNode", tree.Root.Type)
	}
	if tree.Root.GroupNumber != 1 {
		t.Errorf("GroupNumber = %d, want 1", tree.Root.GroupNumber)
	}
	if _, ok := tree.GroupLocs[1]; !ok {
		t.Error("expected group 1 recorded in GroupLocs")
	}
}

func TestParseNonCapturingGroup(t *testing.T) {
	tree := mustParse(t, "(?:a)")
	if tree.Root.Type != GroupNode {
		t.Fatalf("root type = %v, want GroupNode", tree.Root.Type)
	}
	if tree.Root.GroupNumber != 0 {
		t.Errorf("non-capturing group should have GroupNumber 0, got %d", tree.Root.GroupNumber)
	}
	if len(tree.GroupLocs) != 0 {
		t.Error("non-capturing group should not be recorded in GroupLocs")
	}
}

func TestParseNamedGroupAndBackreference(t *testing.T) {
	tree := mustParse(t, "(?P<x>a)(?P=x)")
	if tree.Root.Type != ConcatNode {
		t.Fatalf("root type = %v, want ConcatNode", tree.Root.Type)
	}
	backrefNode := tree.Root.Right
	if backrefNode.Type != BackreferenceNode {
		t.Fatalf("second concat child type = %v, want BackreferenceNode", backrefNode.Type)
	}
	if backrefNode.Backref == nil {
		t.Fatal("expected non-nil Backref")
	}
}

func TestParseNumberedBackreference(t *testing.T) {
	tree := mustParse(t, `(a)\1`)
	backrefNode := tree.Root.Right
	if backrefNode.Type != BackreferenceNode {
		t.Fatalf("type = %v, want BackreferenceNode", backrefNode.Type)
	}
}

func TestParseUndefinedBackreferenceIsFatal(t *testing.T) {
	if _, err := Parse(`\1`); err == nil {
		t.Error("backreference to undefined group should be a fatal parse error")
	}
	if _, err := Parse("(?P=nope)"); err == nil {
		t.Error("named backreference to undefined group should be a fatal parse error")
	}
}

func TestParseIgnoredExtensionIsAtomic(t *testing.T) {
	tree := mustParse(t, "(?#comment)a")
	if tree.Root.Type != ConcatNode {
		t.Fatalf("root type = %v, want ConcatNode", tree.Root.Type)
	}
	if tree.Root.Left.Type != IgnoredNode {
		t.Errorf("ignored extension should parse to IgnoredNode, got %v", tree.Root.Left.Type)
	}
}

func TestParseWordBoundaryIsIgnored(t *testing.T) {
	tree := mustParse(t, `\ba`)
	if tree.Root.Type != ConcatNode {
		t.Fatalf("root type = %v, want ConcatNode", tree.Root.Type)
	}
	if tree.Root.Left.Type != IgnoredNode {
		t.Errorf("word boundary should parse to IgnoredNode, got %v", tree.Root.Left.Type)
	}
}

func TestParseSingleCharSetCollapsesToCharacter(t *testing.T) {
	tree := mustParse(t, "[a]")
	if tree.Root.Type != CharacterNode || tree.Root.Character != 'a' {
		t.Fatalf("[a] should collapse to a CharacterNode, got %+v", tree.Root)
	}
}

func TestParseCharSetRange(t *testing.T) {
	tree := mustParse(t, "[a-z]")
	if tree.Root.Type != CharSetNode {
		t.Fatalf("root type = %v, want CharSetNode", tree.Root.Type)
	}
	if len(tree.Root.CharSet.Items) != 1 {
		t.Fatalf("expected one range item, got %d", len(tree.Root.CharSet.Items))
	}
}

func TestParseComplementCharSet(t *testing.T) {
	tree := mustParse(t, "[^a]")
	if tree.Root.Type != CharSetNode {
		t.Fatalf("root type = %v, want CharSetNode", tree.Root.Type)
	}
	if !tree.Root.CharSet.Complement {
		t.Error("expected Complement set")
	}
}

func TestParseUnterminatedCharSetIsFatal(t *testing.T) {
	if _, err := Parse("[a"); err == nil {
		t.Error("unterminated char set should be a fatal parse error")
	}
}

func TestParseUnterminatedGroupIsFatal(t *testing.T) {
	if _, err := Parse("(a"); err == nil {
		t.Error("unterminated group should be a fatal parse error")
	}
}

func TestParseTrailingInputIsFatal(t *testing.T) {
	if _, err := Parse("a)"); err == nil {
		t.Error("unmatched trailing ')' should be a fatal parse error")
	}
}

func TestParseEmptyRegex(t *testing.T) {
	tree := mustParse(t, "")
	if tree.Root.Type != IgnoredNode {
		t.Fatalf("empty regex should parse to an IgnoredNode root, got %v", tree.Root.Type)
	}
}

func TestParseAnchors(t *testing.T) {
	tree := mustParse(t, "^a$")
	if tree.Root.Type != ConcatNode {
		t.Fatalf("root type = %v, want ConcatNode", tree.Root.Type)
	}
}

func TestTreeDumpRendersNodeTypes(t *testing.T) {
	tree := mustParse(t, "a|b")
	dump := tree.Dump()
	if !strings.Contains(dump, "ALTERNATION") {
		t.Errorf("expected dump to mention ALTERNATION, got %q", dump)
	}
	if !strings.Contains(dump, "CHARACTER") {
		t.Errorf("expected dump to mention CHARACTER, got %q", dump)
	}
}
