package literal

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		s    string
		want Run
	}{
		{"", Run{}},
		{"abc", Run{HasLetter: true}},
		{"123", Run{HasDigit: true}},
		{"a1", Run{HasLetter: true, HasDigit: true}},
		{"!!!", Run{HasPunct: true}},
		{"a b", Run{HasLetter: true, HasSpace: true}},
		{"a1! ", Run{HasLetter: true, HasDigit: true, HasPunct: true, HasSpace: true}},
	}
	for _, tt := range tests {
		if got := Classify(tt.s); got != tt.want {
			t.Errorf("Classify(%q) = %+v, want %+v", tt.s, got, tt.want)
		}
	}
}
