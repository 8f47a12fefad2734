package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadTikToken skips the test when the encoding cannot be fetched (offline runs).
func loadTikToken(t *testing.T, encoding string) *TikToken {
	t.Helper()
	tok, err := NewTikToken(encoding)
	if err != nil {
		t.Skipf("tiktoken encoding %s unavailable: %v", encoding, err)
	}
	return tok
}

func TestTikToken_InvalidEncoding(t *testing.T) {
	tok, err := NewTikToken("invalid_encoding_xyz")
	assert.Error(t, err)
	assert.Nil(t, tok)
}

func TestTikToken_Metadata(t *testing.T) {
	tests := []struct {
		encoding  string
		vocabSize int
	}{
		{"cl100k_base", 100256},
		{"p50k_base", 50257},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			tok := loadTikToken(t, tt.encoding)
			assert.Equal(t, tt.vocabSize, tok.VocabSize())
			assert.Equal(t, tt.encoding, tok.Name())
		})
	}
}

func TestTikToken_Roundtrip(t *testing.T) {
	tok := loadTikToken(t, "cl100k_base")

	for _, text := range []string{"the cat sat on the mat", "Hello, world!", ""} {
		ids, err := tok.Encode(text)
		require.NoError(t, err)

		decoded, err := tok.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}
}
