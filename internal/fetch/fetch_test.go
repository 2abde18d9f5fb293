package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const articlePage = `<html><head><title>Test Article</title></head><body>
<nav>Home</nav>
<article><p>The quick brown fox jumps over the lazy dog. It was a sunny day in the forest!</p></article>
</body></html>`

func TestNormalizeURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a":  "https://example.com/a",
		"http://example.com":     "http://example.com",
		"example.com/post?id=1":  "https://example.com/post?id=1",
		"  example.com  ":        "https://example.com",
		"httpbin.org/get":        "https://httpbin.org/get",
		"localhost:8080/article": "https://localhost:8080/article",
	}
	for in, want := range cases {
		u, err := NormalizeURL(in)
		if err != nil {
			t.Errorf("NormalizeURL(%q): unexpected error: %v", in, err)
			continue
		}
		if u.String() != want {
			t.Errorf("NormalizeURL(%q): expected %q, got %q", in, want, u.String())
		}
	}
}

func TestNormalizeURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "ftp://example.com", "http://", "https:/broken"} {
		if _, err := NormalizeURL(in); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("NormalizeURL(%q): expected ErrInvalidURL, got %v", in, err)
		}
	}
}

func TestFetch_ParsesArticle(t *testing.T) {
	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := New(Options{MinContentChars: 50})
	doc, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Test Article" {
		t.Errorf("expected title %q, got %q", "Test Article", doc.Title)
	}
	if len(doc.Sentences) != 2 {
		t.Errorf("expected 2 sentences, got %q", doc.Sentences)
	}
	if doc.Words[0] != "The" {
		t.Errorf("expected nav to be dropped, first word %q", doc.Words[0])
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("expected user agent %q, got %q", DefaultUserAgent, gotUA)
	}
	if gotAccept != "text/html" {
		t.Errorf("expected Accept text/html, got %q", gotAccept)
	}
	if snap := f.Stats().Snapshot(); snap.Count != 1 || snap.Failed != 0 {
		t.Errorf("expected one successful sample, got %+v", snap)
	}
}

func TestFetch_DecodesLegacyCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		// "café" with é as the single Latin-1 byte 0xE9.
		w.Write([]byte("<title>caf\xe9</title><article>Un caf\xe9 noir.</article>"))
	}))
	defer srv.Close()

	doc, err := New(Options{MinContentChars: 1}).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "café" {
		t.Errorf("expected decoded title, got %q", doc.Title)
	}
	if !strings.Contains(strings.Join(doc.Words, " "), "café noir.") {
		t.Errorf("expected decoded body, got %q", doc.Words)
	}
}

func TestFetch_InsufficientContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<body>Too short.</body>"))
	}))
	defer srv.Close()

	_, err := New(Options{MinContentChars: 50}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent, got %v", err)
	}
}

func TestFetch_StatusError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := New(Options{Retries: 2}).Fetch(context.Background(), srv.URL)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", se.Code)
	}
	if calls.Load() != 1 {
		t.Errorf("expected client errors not to be retried, got %d calls", calls.Load())
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	f := New(Options{Retries: 1})
	if _, err := f.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
	if snap := f.Stats().Snapshot(); snap.Count != 2 || snap.Failed != 1 {
		t.Errorf("expected 2 samples with 1 failure, got %+v", snap)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := New(Options{}).Fetch(context.Background(), "ftp://example.com")
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestRetryable(t *testing.T) {
	if !retryable(&StatusError{Code: 502}) {
		t.Error("expected 502 to be retryable")
	}
	if !retryable(&StatusError{Code: 429}) {
		t.Error("expected 429 to be retryable")
	}
	if retryable(&StatusError{Code: 403}) {
		t.Error("expected 403 not to be retryable")
	}
	if retryable(context.Canceled) {
		t.Error("expected cancellation not to be retryable")
	}
}

func TestFetch_DefaultMinimumContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<body>Too short.</body>"))
	}))
	defer srv.Close()

	_, err := New(Options{}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent with default options, got %v", err)
	}
}

func TestFetch_RejectsOversizedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	_, err := New(Options{MaxBytes: 64}).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	limit := int64(len(articlePage))
	if _, err := New(Options{MaxBytes: limit}).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatalf("expected a page of exactly MaxBytes to pass, got %v", err)
	}
}

func TestBackoff_Bounded(t *testing.T) {
	for _, attempt := range []int{-1, 0, 1, 5, 36, 40, 64, 1000} {
		d := backoff(attempt)
		if d <= 0 || d > 7500*time.Millisecond {
			t.Errorf("backoff(%d): expected a delay in (0, 7.5s], got %v", attempt, d)
		}
	}
	if d := backoff(0); d < 250*time.Millisecond || d >= 375*time.Millisecond {
		t.Errorf("backoff(0): expected 250ms plus jitter, got %v", d)
	}
}
