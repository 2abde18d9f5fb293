package parser

import "testing"

func TestForFile(t *testing.T) {
	cases := map[string]any{
		"a.txt":         &TextParser{},
		"b.MD":          &MarkdownParser{},
		"c.markdown":    &MarkdownParser{},
		"dir/page.html": &HTMLParser{},
		"page.htm":      &HTMLParser{},
		"paper.pdf":     &PDFParser{},
		"report.docx":   &DOCXParser{},
	}
	for name, want := range cases {
		p, err := ForFile(name, nil)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		switch want.(type) {
		case *TextParser:
			_, ok := p.(*TextParser)
			if !ok {
				t.Errorf("%s: expected TextParser, got %T", name, p)
			}
		case *MarkdownParser:
			if _, ok := p.(*MarkdownParser); !ok {
				t.Errorf("%s: expected MarkdownParser, got %T", name, p)
			}
		case *HTMLParser:
			h, ok := p.(*HTMLParser)
			if !ok || h.Reducer == nil {
				t.Errorf("%s: expected HTMLParser with reducer, got %T", name, p)
			}
		case *PDFParser:
			if _, ok := p.(*PDFParser); !ok {
				t.Errorf("%s: expected PDFParser, got %T", name, p)
			}
		case *DOCXParser:
			if _, ok := p.(*DOCXParser); !ok {
				t.Errorf("%s: expected DOCXParser, got %T", name, p)
			}
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("sheet.csv", nil); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("image.png") {
		t.Error("expected .png to be unsupported")
	}
	if !IsSupportedExtension("NOTES.TXT") {
		t.Error("expected extension check to be case-insensitive")
	}
}

func TestStem(t *testing.T) {
	if got := stem("/tmp/uploads/My Paper.pdf"); got != "My Paper" {
		t.Errorf("expected %q, got %q", "My Paper", got)
	}
}
