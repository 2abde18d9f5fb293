package focal

import (
	"strings"
	"testing"
)

func TestIndex_BracketBoundaries(t *testing.T) {
	cases := []struct {
		length int
		want   int
	}{
		{0, 0},
		{1, 0},
		{3, 0},
		{4, 1},
		{5, 1},
		{6, 2},
		{9, 2},
		{10, 3},
		{13, 3},
		{14, 3},
		{20, 5},
		{41, 10},
	}
	for _, c := range cases {
		word := strings.Repeat("a", c.length)
		if got := Index(word); got != c.want {
			t.Errorf("Index(len=%d): expected %d, got %d", c.length, c.want, got)
		}
	}
}

func TestIndex_Words(t *testing.T) {
	cases := map[string]int{
		"cat":           0,
		"house":         1,
		"elephant":      2,
		"international": 3,
	}
	for word, want := range cases {
		if got := Index(word); got != want {
			t.Errorf("Index(%q): expected %d, got %d", word, want, got)
		}
	}
}

func TestIndex_NonDecreasing(t *testing.T) {
	prev := 0
	for n := 0; n <= 60; n++ {
		got := Index(strings.Repeat("x", n))
		if got < prev {
			t.Fatalf("Index decreased at length %d: %d < %d", n, got, prev)
		}
		prev = got
	}
}

func TestIndex_CountsRunes(t *testing.T) {
	// "naïve" is five characters but six bytes.
	if got := Index("naïve"); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestSplitWord_Reassembles(t *testing.T) {
	words := []string{"a", "to", "the", "word", "hello,", "elephant", "internationalisation", "café", "—", "“quoted”"}
	for _, w := range words {
		s := SplitWord(w)
		if got := s.Before + s.Focal + s.After; got != w {
			t.Errorf("SplitWord(%q) reassembled to %q", w, got)
		}
		if w != "" && s.Focal == "" {
			t.Errorf("SplitWord(%q): expected non-empty focal letter", w)
		}
	}
}

func TestSplitWord_Parts(t *testing.T) {
	s := SplitWord("elephant")
	if s.Before != "el" || s.Focal != "e" || s.After != "phant" {
		t.Errorf("unexpected split %+v", s)
	}
}

func TestSplitWord_Empty(t *testing.T) {
	s := SplitWord("")
	if s != (Split{}) {
		t.Errorf("expected zero split for empty word, got %+v", s)
	}
}
