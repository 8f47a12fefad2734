package tokenizer

import (
	"fmt"
	"strings"
	"unicode"
)

// WordName is the registry name of the word-level tokenizer.
const WordName = "word"

// DefaultVocabulary is the vocabulary used by the attention demos.
// ID 0 is the unknown-word token.
var DefaultVocabulary = []string{"<unk>", "the", "cat", "sat", "on", "mat", "dog", "ran"}

// Word is a word-level tokenizer over a fixed vocabulary.
//
// Text is lower-cased and split on anything that is not a letter or digit.
// Words outside the vocabulary map to ID 0. A Word never changes after
// construction.
type Word struct {
	ids   map[string]int32
	words []string
}

// NewWord creates a tokenizer; the position of each word is its ID.
func NewWord(vocab []string) *Word {
	w := &Word{
		ids:   make(map[string]int32, len(vocab)),
		words: append([]string(nil), vocab...),
	}
	for i, word := range vocab {
		w.ids[strings.ToLower(word)] = int32(i) //nolint:gosec // G115: vocabularies are small.
	}
	return w
}

// Encode converts text to token IDs.
func (w *Word) Encode(text string) ([]int32, error) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	ids := make([]int32, len(fields))
	for i, f := range fields {
		ids[i] = w.ids[f] // zero value is the unknown token
	}
	return ids, nil
}

// Decode converts token IDs back to space-separated words.
func (w *Word) Decode(tokens []int32) (string, error) {
	words := make([]string, len(tokens))
	for i, id := range tokens {
		if id < 0 || int(id) >= len(w.words) {
			return "", fmt.Errorf("token %d outside vocabulary of %d words", id, len(w.words))
		}
		words[i] = w.words[id]
	}
	return strings.Join(words, " "), nil
}

// VocabSize returns the number of words in the vocabulary.
func (w *Word) VocabSize() int {
	return len(w.words)
}

// Name returns "word".
func (w *Word) Name() string {
	return WordName
}
