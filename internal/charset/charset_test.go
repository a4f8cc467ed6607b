package charset

import (
	"testing"

	"github.com/purduedualitylab/egret/internal/span"
)

func TestIsSingleChar(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharacterItem, Character: 'a'})
	if !cs.IsSingleChar() {
		t.Error("single literal char should report IsSingleChar")
	}

	cs.AddItem(Item{Type: CharacterItem, Character: 'b'})
	if cs.IsSingleChar() {
		t.Error("two items should not report IsSingleChar")
	}
}

func TestIsWildcard(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharClassItem, Character: '.'})
	if !cs.IsWildcard() {
		t.Error("bare '.' set should report IsWildcard")
	}
}

func TestRecognizesRange(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharRangeItem, RangeStart: 'a', RangeEnd: 'z'})
	if !cs.Recognizes('m') {
		t.Error("range a-z should recognize m")
	}
	if cs.Recognizes('M') {
		t.Error("range a-z should not recognize M")
	}
}

func TestRecognizesComplement(t *testing.T) {
	cs := New()
	cs.Complement = true
	cs.AddItem(Item{Type: CharacterItem, Character: 'a'})
	if cs.Recognizes('a') {
		t.Error("complemented set should not recognize its listed char")
	}
	if !cs.Recognizes('b') {
		t.Error("complemented set should recognize chars outside its list")
	}
}

func TestClassMatches(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharClassItem, Character: 'd'})
	if !cs.Recognizes('5') || cs.Recognizes('a') {
		t.Error("\\d should recognize digits only")
	}

	cs2 := New()
	cs2.AddItem(Item{Type: CharClassItem, Character: 'w'})
	if !cs2.Recognizes('_') || !cs2.Recognizes('a') || cs2.Recognizes(' ') {
		t.Error("\\w should recognize word chars, not space")
	}
}

func TestIsStringCandidate(t *testing.T) {
	word := New()
	word.AddItem(Item{Type: CharClassItem, Character: 'w'})
	if !word.IsStringCandidate() {
		t.Error("\\w should be a string candidate")
	}

	letters := New()
	letters.AddItem(Item{Type: CharRangeItem, RangeStart: 'a', RangeEnd: 'z'})
	letters.AddItem(Item{Type: CharRangeItem, RangeStart: 'A', RangeEnd: 'Z'})
	if !letters.IsStringCandidate() {
		t.Error("two letter-admitting ranges should be a string candidate")
	}

	single := New()
	single.AddItem(Item{Type: CharRangeItem, RangeStart: 'a', RangeEnd: 'z'})
	if !single.IsStringCandidate() {
		t.Error("a single multi-letter range like [a-z] should be a string candidate")
	}

	oneLetter := New()
	oneLetter.AddItem(Item{Type: CharacterItem, Character: 'a'})
	if oneLetter.IsStringCandidate() {
		t.Error("a single non-range letter should not be a string candidate")
	}

	digits := New()
	digits.AddItem(Item{Type: CharClassItem, Character: 'd'})
	if digits.IsStringCandidate() {
		t.Error("\\d alone admits no letters, should not be a string candidate")
	}
}

func TestOnlyHasPuncAndSpaces(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharacterItem, Character: '!'})
	cs.AddItem(Item{Type: CharacterItem, Character: ' '})
	if !cs.OnlyHasPuncAndSpaces() {
		t.Error("punctuation and space only set should report true")
	}

	cs2 := New()
	cs2.AddItem(Item{Type: CharacterItem, Character: 'a'})
	if cs2.OnlyHasPuncAndSpaces() {
		t.Error("letter item should disqualify OnlyHasPuncAndSpaces")
	}
}

func TestGetValidCharacter(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharRangeItem, RangeStart: '0', RangeEnd: '9'})
	c := cs.GetValidCharacter(0)
	if c < '0' || c > '9' {
		t.Errorf("GetValidCharacter returned %q, want a digit", c)
	}

	letters := New()
	letters.AddItem(Item{Type: CharRangeItem, RangeStart: 'a', RangeEnd: 'z'})
	letters.AddItem(Item{Type: CharRangeItem, RangeStart: '0', RangeEnd: '9'})
	c2 := letters.GetValidCharacter(0)
	if !(c2 >= 'a' && c2 <= 'z') {
		t.Errorf("GetValidCharacter should prefer a letter, got %q", c2)
	}
}

func TestGetValidCharacterExcept(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharacterItem, Character: 'a'})
	if c := cs.GetValidCharacter('a'); c != 0 {
		t.Errorf("GetValidCharacter('a') with only 'a' available should fail, got %q", c)
	}
}

func TestIsRepeatPuncCandidate(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharacterItem, Character: '!'})
	if !cs.IsRepeatPuncCandidate() {
		t.Error("single punctuation literal should be a repeat-punc candidate")
	}
	if cs.GetRepeatPuncChar() != '!' {
		t.Errorf("GetRepeatPuncChar() = %q, want '!'", cs.GetRepeatPuncChar())
	}

	cs2 := New()
	cs2.AddItem(Item{Type: CharacterItem, Character: 'a'})
	if cs2.IsRepeatPuncCandidate() {
		t.Error("letter should not be a repeat-punc candidate")
	}
}

func TestIsDigitTooOptionalCandidate(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharClassItem, Character: 'd'})
	if !cs.IsDigitTooOptionalCandidate() {
		t.Error("\\d should admit a digit")
	}

	cs2 := New()
	cs2.AddItem(Item{Type: CharacterItem, Character: 'a'})
	if cs2.IsDigitTooOptionalCandidate() {
		t.Error("letter-only set should not admit a digit")
	}
}

func TestCheckBadRange(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharRangeItem, RangeStart: 'z', RangeEnd: 'a'})
	alerts := cs.Check(span.Location{Start: 0, End: 5}, nil)
	if len(alerts) != 1 || alerts[0].Type != "bad range" {
		t.Fatalf("expected one bad range alert, got %v", alerts)
	}
}

func TestCheckClassBoundaryCrossing(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharRangeItem, RangeStart: '5', RangeEnd: 'a'})
	alerts := cs.Check(span.Location{Start: 0, End: 5}, nil)
	if len(alerts) != 1 || !alerts[0].Warning {
		t.Fatalf("expected one warning alert for class-crossing range, got %v", alerts)
	}
}

func TestCheckCommaOrBar(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharacterItem, Character: 'a'})
	cs.AddItem(Item{Type: CharacterItem, Character: ','})
	alerts := cs.Check(span.Location{Start: 0, End: 5}, nil)
	found := false
	for _, a := range alerts {
		if a.Type == "comma or bar in charset" {
			found = true
		}
	}
	if !found {
		t.Error("expected a comma-or-bar alert")
	}
}

func TestGetCharsetAsStringDeterministic(t *testing.T) {
	cs1 := New()
	cs1.AddItem(Item{Type: CharacterItem, Character: 'b'})
	cs1.AddItem(Item{Type: CharacterItem, Character: 'a'})

	cs2 := New()
	cs2.AddItem(Item{Type: CharacterItem, Character: 'a'})
	cs2.AddItem(Item{Type: CharacterItem, Character: 'b'})

	if cs1.GetCharsetAsString() != cs2.GetCharsetAsString() {
		t.Error("GetCharsetAsString should be order-independent")
	}
}

func TestGenEvilStringsIncludesEmpty(t *testing.T) {
	cs := New()
	cs.AddItem(Item{Type: CharRangeItem, RangeStart: 'a', RangeEnd: 'z'})
	strs := cs.GenEvilStrings("pre", "post", nil)
	if len(strs) == 0 || strs[0] != "prepost" {
		t.Errorf("expected first variant to be the empty-substitution case, got %v", strs)
	}
}
