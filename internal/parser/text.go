package parser

import (
	"fmt"
	"io"

	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/segment"
)

// TextParser handles plain text. The title comes from the first sentence.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	return segment.Parse(string(data), ""), nil
}
