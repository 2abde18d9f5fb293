package reducer

import (
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

// Readability reduces pages with go-readability's content scoring and falls
// back to the heuristic rules when scoring fails or finds too little text.
type Readability struct {
	// MinChars is the shortest acceptable readability result.
	MinChars int
	Log      *slog.Logger
}

func (r Readability) Reduce(html string, pageURL *url.URL) (out Article) {
	fallback := Heuristic{}.Reduce(html, pageURL)
	defer func() {
		if p := recover(); p != nil {
			r.logger().Warn("readability panicked, using heuristic", "panic", p)
			out = fallback
		}
	}()

	if pageURL == nil {
		pageURL = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), pageURL)
	if err != nil {
		r.logger().Debug("readability failed, using heuristic", "error", err)
		return fallback
	}

	text := StripTags(article.Content)
	if n := utf8.RuneCountInString(text); n == 0 || n < r.MinChars {
		r.logger().Debug("readability result too short, using heuristic", "chars", n)
		return fallback
	}

	title := strings.TrimSpace(article.Title)
	if fallback.Title != Untitled || title == "" {
		// Explicit page metadata beats readability's title guess.
		title = fallback.Title
	}
	return Article{Title: title, Text: text}
}

func (r Readability) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.New(slog.DiscardHandler)
}

// New returns the reducer named by mode: "readability" or "heuristic".
// Unknown modes get the heuristic reducer.
func New(mode string, minChars int, log *slog.Logger) Reducer {
	if mode == "readability" {
		return Readability{MinChars: minChars, Log: log}
	}
	return Heuristic{}
}
