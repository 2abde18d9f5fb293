package focal

import "unicode/utf8"

// Split is a word divided around its focal letter.
type Split struct {
	Before string `json:"before"`
	Focal  string `json:"focal"`
	After  string `json:"after"`
}

// Index returns the rune offset of the optimal recognition point of word:
// the letter the eye anchors on when words are flashed in place.
func Index(word string) int {
	n := utf8.RuneCountInString(word)
	switch {
	case n <= 3:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	case n <= 13:
		return 3
	}
	return n / 4
}

// SplitWord divides word into the text before the focal letter, the focal
// letter itself and the remainder. Focal is empty for an empty word.
func SplitWord(word string) Split {
	runes := []rune(word)
	i := Index(word)
	if i >= len(runes) {
		return Split{Before: word}
	}
	return Split{
		Before: string(runes[:i]),
		Focal:  string(runes[i]),
		After:  string(runes[i+1:]),
	}
}
