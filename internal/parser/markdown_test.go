package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_TitleFromHeading(t *testing.T) {
	input := `## Overview

Intro text.

# Real Title

Section **bold** content with a [link](https://example.com).
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Real Title" {
		t.Errorf("expected level-1 heading title, got %q", doc.Title)
	}

	joined := strings.Join(doc.Words, " ")
	if strings.ContainsAny(joined, "*[]#") {
		t.Errorf("expected markup to be stripped, got %q", joined)
	}
	if !strings.Contains(joined, "Section bold content with a link.") {
		t.Errorf("expected inline text to survive, got %q", joined)
	}
}

func TestMarkdownParser_NoDuplicateText(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("Just one sentence."), "one.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.WordCount != 3 {
		t.Errorf("expected 3 words, got %d: %q", doc.WordCount, doc.Words)
	}
	if doc.Title != "Just one sentence." {
		t.Errorf("expected title from first sentence, got %q", doc.Title)
	}
}

func TestMarkdownParser_ListsAndCode(t *testing.T) {
	input := "- alpha\n- beta\n\n```go\nfmt.Println()\n```\n\n<div>raw html</div>\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "list.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(doc.Words, " ")
	if joined != "alpha beta fmt.Println()" {
		t.Errorf("unexpected words %q", joined)
	}
}

func TestMarkdownParser_Empty(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.WordCount != 0 {
		t.Errorf("expected no words, got %d", doc.WordCount)
	}
}
