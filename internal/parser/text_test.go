package parser

import (
	"slices"
	"strings"
	"testing"
)

func TestTextParser_WordsAndSentences(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "First paragraph line one." {
		t.Errorf("expected title %q, got %q", "First paragraph line one.", doc.Title)
	}
	if doc.WordCount != 10 {
		t.Errorf("expected 10 words, got %d", doc.WordCount)
	}
	want := []string{
		"First paragraph line one.",
		"First paragraph line two.",
		"Second paragraph.",
	}
	if !slices.Equal(doc.Sentences, want) {
		t.Errorf("expected sentences %q, got %q", want, doc.Sentences)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Untitled" {
		t.Errorf("expected title %q, got %q", "Untitled", doc.Title)
	}
	if doc.WordCount != 0 {
		t.Errorf("expected 0 words for empty input, got %d", doc.WordCount)
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	input := "Para one.\n   \n\n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(doc.Sentences))
	}
	if err := doc.Check(); err != nil {
		t.Errorf("inconsistent document: %v", err)
	}
}
