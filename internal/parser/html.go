package parser

import (
	"fmt"
	"io"

	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/reducer"
	"github.com/kylemclaren/speed-reader/internal/segment"
)

// HTMLParser handles saved web pages.
type HTMLParser struct {
	Reducer reducer.Reducer
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}
	red := p.Reducer
	if red == nil {
		red = reducer.Heuristic{}
	}
	article := red.Reduce(string(data), nil)
	return segment.Parse(article.Text, article.Title), nil
}
