// Package tokenizer provides the text tokenizers used by the attention demos.
//
// This package wraps the internal tokenizer implementations and provides
// a clean public API.
//
// Supported tokenizers:
//   - Word: fixed word-level vocabulary, offline and deterministic
//   - TikToken: OpenAI BPE tokenizers (GPT-3, GPT-4)
//
// Example usage:
//
//	import "github.com/tensor-logic/tensorlogic/tokenizer"
//
//	tok := tokenizer.NewWord([]string{"<unk>", "the", "cat", "sat"})
//
//	// Encode text
//	tokens, err := tok.Encode("the cat sat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Decode tokens
//	text, err := tok.Decode(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
package tokenizer

import (
	"github.com/tensor-logic/tensorlogic/internal/tokenizer"
)

// Tokenizer is the core interface for text tokenization.
//
// All tokenizer implementations must implement this interface.
type Tokenizer = tokenizer.Tokenizer

// DefaultVocabulary is the word list of the built-in word tokenizer.
var DefaultVocabulary = tokenizer.DefaultVocabulary

// New returns a tokenizer by name: "word" or a tiktoken encoding.
func New(name string) (Tokenizer, error) {
	return tokenizer.New(name)
}

// NewWord creates a word-level tokenizer; a word's position in vocab is its ID
// and ID 0 is used for unknown words.
func NewWord(vocab []string) Tokenizer {
	return tokenizer.NewWord(vocab)
}

// NewTikToken creates a new TikToken tokenizer with the specified encoding.
//
// Supported encodings: "cl100k_base" (GPT-4), "p50k_base" and "r50k_base" (GPT-3).
func NewTikToken(encodingName string) (Tokenizer, error) {
	return tokenizer.NewTikToken(encodingName)
}
