// Package fetch downloads article pages and turns them into playback
// documents.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/reducer"
	"github.com/kylemclaren/speed-reader/internal/segment"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent identifies the reader to the sites it fetches.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SpeedReader/1.0)"

// DefaultMinContentChars is the shortest article text accepted by Fetch.
const DefaultMinContentChars = 50

var (
	ErrInvalidURL          = errors.New("invalid URL format")
	ErrInsufficientContent = errors.New("could not extract enough content from this page")
	ErrTooLarge            = errors.New("page exceeds size limit")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL    string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Status)
}

// Options configures a Fetcher. Zero values get defaults.
type Options struct {
	Timeout         time.Duration
	UserAgent       string
	MaxBytes        int64
	Retries         int
	MinContentChars int
	Reducer         reducer.Reducer
	Stats           *Stats
	Log             *slog.Logger
}

// Fetcher retrieves HTML over HTTP.
type Fetcher struct {
	client *http.Client
	opts   Options
}

func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 << 20
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.MinContentChars <= 0 {
		opts.MinContentChars = DefaultMinContentChars
	}
	if opts.Reducer == nil {
		opts.Reducer = reducer.Heuristic{}
	}
	if opts.Stats == nil {
		opts.Stats = NewStats(time.Hour)
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		opts:   opts,
	}
}

// Stats returns the latency recorder shared by all fetches.
func (f *Fetcher) Stats() *Stats {
	return f.opts.Stats
}

// NormalizeURL accepts user input such as "example.com/post" and returns an
// absolute http(s) URL, prepending https:// when no scheme is present.
func NormalizeURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidURL
	}
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return u, nil
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http:") || strings.HasPrefix(lower, "https:") || strings.Contains(raw, "://") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	u, err := url.Parse("https://" + raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

// Fetch downloads rawURL, reduces it to its article text and parses the
// result. Pages yielding fewer than MinContentChars characters fail with
// ErrInsufficientContent.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*document.Document, error) {
	html, u, err := f.FetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	article := f.opts.Reducer.Reduce(html, u)
	if n := utf8.RuneCountInString(article.Text); n < f.opts.MinContentChars {
		f.opts.Log.Info("page too short", "url", u.String(), "chars", n)
		return nil, ErrInsufficientContent
	}

	doc := segment.Parse(article.Text, article.Title)
	f.opts.Log.Info("fetched article", "url", u.String(), "title", doc.Title, "words", doc.WordCount)
	return doc, nil
}

// FetchHTML downloads rawURL and returns the page decoded to UTF-8 together
// with the normalized URL. Server errors and timeouts are retried.
func (f *Fetcher) FetchHTML(ctx context.Context, rawURL string) (string, *url.URL, error) {
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return "", nil, err
	}
	log := f.opts.Log.With("url", u.String())

	var lastErr error
	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		start := time.Now()
		html, err := f.get(ctx, u)
		f.opts.Stats.Record(time.Since(start), err != nil)
		if err == nil {
			return html, u, nil
		}
		lastErr = err
		if !retryable(err) || attempt == f.opts.Retries {
			break
		}
		log.Warn("retryable fetch error", "attempt", attempt, "error", err)
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return "", u, ctx.Err()
		}
	}
	return "", u, lastErr
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{URL: u.String(), Code: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	if int64(len(raw)) > f.opts.MaxBytes {
		f.opts.Log.Warn("page too large", "url", u.String(), "max_bytes", f.opts.MaxBytes)
		return "", fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, u, f.opts.MaxBytes)
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode response body: %w", err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("decode response body: %w", err)
	}
	return string(data), nil
}
