package alert

import (
	"strings"
	"testing"

	"github.com/purduedualitylab/egret/internal/span"
)

func TestDedupByTypeAndStart(t *testing.T) {
	s := NewSink("abc", false, false)
	s.Add(Alert{Type: "bad range", Message: "first", Loc1: span.Location{Start: 2, End: 2}})
	s.Add(Alert{Type: "bad range", Message: "second", Loc1: span.Location{Start: 2, End: 3}})
	if len(s.Alerts()) != 1 {
		t.Fatalf("expected second alert with same (type, start) to be dropped, got %d", len(s.Alerts()))
	}
}

func TestDistinctStartsNotDeduped(t *testing.T) {
	s := NewSink("abc", false, false)
	s.Add(Alert{Type: "bad range", Loc1: span.Location{Start: 2, End: 2}})
	s.Add(Alert{Type: "bad range", Loc1: span.Location{Start: 5, End: 5}})
	if len(s.Alerts()) != 2 {
		t.Fatalf("distinct starts should both survive, got %d", len(s.Alerts()))
	}
}

func TestCheckModeSuppressesWarnings(t *testing.T) {
	s := NewSink("abc", true, false)
	s.Add(Alert{Type: "x", Warning: true, Loc1: span.Location{Start: 0, End: 0}})
	if len(s.Alerts()) != 0 {
		t.Errorf("check mode should drop warnings, got %v", s.Alerts())
	}

	s2 := NewSink("abc", false, false)
	s2.Add(Alert{Type: "x", Warning: true, Loc1: span.Location{Start: 0, End: 0}})
	if len(s2.Alerts()) != 1 {
		t.Error("generate mode should keep warnings")
	}
}

func TestRenderViolationVsWarning(t *testing.T) {
	s := NewSink("abc", false, false)
	s.Add(Alert{Type: "t", Message: "m", Loc1: span.None})
	out := s.Alerts()[0]
	if !strings.Contains(out, "VIOLATION") {
		t.Errorf("non-warning alert should render as VIOLATION, got %q", out)
	}

	s2 := NewSink("abc", false, false)
	s2.Add(Alert{Type: "t", Message: "m", Warning: true, Loc1: span.None})
	out2 := s2.Alerts()[0]
	if !strings.Contains(out2, "WARNING") {
		t.Errorf("warning alert should render as WARNING, got %q", out2)
	}
}

func TestRenderWebModeUsesHTMLMarkers(t *testing.T) {
	s := NewSink("abc", false, true)
	s.Add(Alert{Type: "t", Message: "m", Loc1: span.Location{Start: 0, End: 1}})
	out := s.Alerts()[0]
	if !strings.Contains(out, "<mark>") || !strings.Contains(out, "<br>") {
		t.Errorf("web mode should use HTML markers, got %q", out)
	}
}

func TestRenderSuggestAndExample(t *testing.T) {
	s := NewSink("abc", false, false)
	s.Add(Alert{
		Type: "t", Message: "m", Loc1: span.None,
		HasSuggest: true, Suggest: "fix-it",
		HasExample: true, Example: "sample",
	})
	out := s.Alerts()[0]
	if !strings.Contains(out, "fix-it") || !strings.Contains(out, "sample") {
		t.Errorf("expected suggestion and example in output, got %q", out)
	}
}

func TestNoLocationOmitsRegexLine(t *testing.T) {
	s := NewSink("abc", false, false)
	s.Add(Alert{Type: "t", Message: "m", Loc1: span.None})
	out := s.Alerts()[0]
	if strings.Contains(out, "...Regex:") {
		t.Errorf("no-location alert should not render a regex excerpt, got %q", out)
	}
}
