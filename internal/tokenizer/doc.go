// Package tokenizer turns text into token IDs for the attention demos.
//
// Two implementations are provided:
//   - Word: a fixed word-level vocabulary, deterministic and offline
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//
// Example usage:
//
//	tok, err := tokenizer.New("word")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ids, err := tok.Encode("the cat sat")
//	if err != nil {
//	    log.Fatal(err)
//	}
package tokenizer
