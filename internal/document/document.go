package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInconsistent reports a document whose sentences and words were not
// derived from the same text.
var ErrInconsistent = errors.New("inconsistent document")

// Document is a parsed text ready for playback. It is not modified after
// construction.
type Document struct {
	Words     []string `json:"words" yaml:"words"`         // Whitespace-separated tokens, punctuation included
	Sentences []string `json:"sentences" yaml:"sentences"` // Coarser partition of the same text
	Title     string   `json:"title" yaml:"title"`
	WordCount int      `json:"wordCount" yaml:"wordCount"` // Always len(Words)
}

// Len returns the number of words, treating a nil document as empty.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Words)
}

// Check verifies that WordCount matches Words and that splitting every
// sentence on whitespace reproduces Words in order.
func (d *Document) Check() error {
	if d.WordCount != len(d.Words) {
		return fmt.Errorf("%w: wordCount %d, have %d words", ErrInconsistent, d.WordCount, len(d.Words))
	}
	i := 0
	for si, s := range d.Sentences {
		for _, w := range strings.Fields(s) {
			if i >= len(d.Words) {
				return fmt.Errorf("%w: sentence %d runs past the last word", ErrInconsistent, si)
			}
			if d.Words[i] != w {
				return fmt.Errorf("%w: word %d is %q, sentence %d has %q", ErrInconsistent, i, d.Words[i], si, w)
			}
			i++
		}
	}
	if i != len(d.Words) {
		return fmt.Errorf("%w: sentences cover %d of %d words", ErrInconsistent, i, len(d.Words))
	}
	return nil
}
