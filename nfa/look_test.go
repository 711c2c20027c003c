package nfa

import "testing"

func TestLooksAt(t *testing.T) {
	h := []byte("ab\ncd ")
	tests := []struct {
		at      int
		has     []Look
		missing []Look
	}{
		{0, []Look{LookStartText, LookStartLine, LookWordBoundary}, []Look{LookEndText, LookEndLine, LookNoWordBoundary}},
		{1, []Look{LookNoWordBoundary}, []Look{LookStartLine, LookEndLine, LookWordBoundary}},
		{2, []Look{LookEndLine, LookWordBoundary}, []Look{LookEndText, LookStartLine}},
		{3, []Look{LookStartLine, LookWordBoundary}, []Look{LookStartText, LookEndLine}},
		{5, []Look{LookWordBoundary}, []Look{LookStartLine}},
		{6, []Look{LookEndText, LookEndLine, LookNoWordBoundary}, []Look{LookStartText, LookWordBoundary}},
	}
	for _, tt := range tests {
		got := LooksAt(h, tt.at)
		for _, l := range tt.has {
			if !got.Contains(l) {
				t.Errorf("LooksAt(%d) = %s, missing %s", tt.at, got, l)
			}
		}
		for _, l := range tt.missing {
			if got.Contains(l) {
				t.Errorf("LooksAt(%d) = %s, unexpected %s", tt.at, got, l)
			}
		}
	}
}

func TestLooksAt_EmptyHaystack(t *testing.T) {
	got := LooksAt(nil, 0)
	for _, l := range []Look{LookStartText, LookEndText, LookStartLine, LookEndLine, LookNoWordBoundary} {
		if !got.Contains(l) {
			t.Errorf("LooksAt(nil, 0) = %s, missing %s", got, l)
		}
	}
	if got.Contains(LookWordBoundary) {
		t.Error("empty haystack has no word boundary")
	}
}

func TestLookSet_String(t *testing.T) {
	s := LookSet(0).Insert(LookStartText).Insert(LookWordBoundary)
	if got := s.String(); got != `{\A \b}` {
		t.Errorf("String() = %q", got)
	}
	if !LookSet(0).IsEmpty() {
		t.Error("zero LookSet should be empty")
	}
}
