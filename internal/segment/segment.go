// Package segment splits plain text into the word and sentence sequences
// used for playback.
//
// Sentence detection is a punctuation heuristic: a boundary follows every
// '.', '!' or '?' that is followed by whitespace. Abbreviations, decimals and
// quoted punctuation are not special-cased, so "Dr. Smith" yields two
// sentences.
package segment

import (
	"strings"
	"unicode"

	"github.com/kylemclaren/speed-reader/internal/document"
)

const (
	// DefaultTitleWords is the word limit applied by ExtractTitle.
	DefaultTitleWords = 8
	// DefaultContextWindow is the number of sentences shown before the current one.
	DefaultContextWindow = 2
	// Untitled is used when no title can be derived.
	Untitled = "Untitled"
)

// SplitWords splits text on runs of whitespace and drops empty tokens.
// Punctuation stays attached to its word.
func SplitWords(text string) []string {
	return strings.Fields(text)
}

// SplitSentences cuts text after terminal punctuation that is followed by
// whitespace. Pieces are trimmed and empty pieces dropped.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	terminal := false
	for i, r := range text {
		if terminal && unicode.IsSpace(r) {
			if s := strings.TrimSpace(text[start:i]); s != "" {
				sentences = append(sentences, s)
			}
			start = i
		}
		terminal = r == '.' || r == '!' || r == '?'
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// FindSentence returns the index of the sentence containing the word at
// wordIndex. Indexes past the end map to the last sentence; -1 is returned
// when there are no sentences. words and sentences must come from the same
// text; see document.Check.
func FindSentence(wordIndex int, words, sentences []string) int {
	count := 0
	for i, s := range sentences {
		count += len(SplitWords(s))
		if wordIndex < count {
			return i
		}
	}
	return len(sentences) - 1
}

// RecentContext returns the sentence containing wordIndex preceded by up to
// window earlier sentences, oldest first.
func RecentContext(wordIndex int, words, sentences []string, window int) []string {
	cur := FindSentence(wordIndex, words, sentences)
	if cur < 0 {
		return nil
	}
	start := max(0, cur-window)
	return sentences[start : cur+1]
}

// Clean collapses every whitespace run, newlines included, into a single
// space and trims both ends.
func Clean(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ExtractTitle derives a title from the first sentence of text. Sentences
// longer than maxWords words are cut and suffixed with "...".
func ExtractTitle(text string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultTitleWords
	}
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return Untitled
	}
	first := sentences[0]
	words := SplitWords(first)
	if len(words) <= maxWords {
		return first
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

// Parse cleans text and splits it into a document. An empty title is
// replaced by one extracted from the text.
func Parse(text, title string) *document.Document {
	cleaned := Clean(text)
	words := SplitWords(cleaned)
	if title == "" {
		title = ExtractTitle(cleaned, DefaultTitleWords)
	}
	return &document.Document{
		Words:     words,
		Sentences: SplitSentences(cleaned),
		Title:     title,
		WordCount: len(words),
	}
}
