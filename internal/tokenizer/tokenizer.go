package tokenizer

import (
	"fmt"
	"strings"
)

// Tokenizer is the core interface for text tokenization.
//
// Implementations must be safe for concurrent use: demos running in parallel
// share one tokenizer.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size.
	VocabSize() int

	// Name returns the tokenizer name.
	Name() string
}

// New returns the tokenizer registered under name: "word" (the default
// vocabulary) or any tiktoken encoding name such as "cl100k_base".
func New(name string) (Tokenizer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", WordName:
		return NewWord(DefaultVocabulary), nil
	case encodingCL100kBase, encodingP50kBase, encodingR50kBase:
		return NewTikToken(name)
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}
