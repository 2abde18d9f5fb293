package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/fetch"
	"github.com/kylemclaren/speed-reader/internal/parser"
	"github.com/kylemclaren/speed-reader/internal/reducer"
	"github.com/urfave/cli/v2"
)

const fetchTimeout = 15 * time.Second

// loadDocument reads the single source argument: "-" for stdin, an http(s)
// URL, or a path to a supported file.
func loadDocument(c *cli.Context, log *slog.Logger) (*document.Document, error) {
	if c.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one source, got %d", c.NArg())
	}
	src := c.Args().First()
	red := reducer.New(c.String("extractor"), 0, log)

	var (
		doc *document.Document
		err error
	)
	switch {
	case src == "-":
		doc, err = (&parser.TextParser{}).Parse(c.App.Reader, "stdin.txt")
	case isURL(src):
		f := fetch.New(fetch.Options{
			Timeout: c.Duration("timeout"),
			Reducer: red,
			Log:     log,
		})
		doc, err = f.Fetch(c.Context, src)
	default:
		doc, err = parseFile(src, red)
	}
	if err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(c.String("title")); title != "" {
		doc.Title = title
	}
	return doc, nil
}

func isURL(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func parseFile(path string, red reducer.Reducer) (*document.Document, error) {
	p, err := parser.ForFile(path, red)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no such file: %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return p.Parse(f, path)
}
