package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teanganlp/teanga-go/internal/layer"
)

func TestTokenizeWordsAndPunctuation(t *testing.T) {
	// "Hi, Bob!": Hi=0-2, ,=2-3, Bob=4-7, !=7-8
	spans := Tokenize("Hi, Bob!")
	assert.Equal(t, []layer.Span{
		{Start: 0, End: 2},
		{Start: 2, End: 3},
		{Start: 4, End: 7},
		{Start: 7, End: 8},
	}, spans)
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize(""))
}

func TestTokenizeWhitespaceOnly(t *testing.T) {
	assert.Empty(t, Tokenize("  \t\n "))
}

func TestTokenizeWordAtEndOfInput(t *testing.T) {
	spans := Tokenize("end")
	assert.Equal(t, []layer.Span{{Start: 0, End: 3}}, spans)
}

func TestTokenizeDigitsJoinWords(t *testing.T) {
	spans := Tokenize("abc123 42")
	assert.Equal(t, []layer.Span{
		{Start: 0, End: 6},
		{Start: 7, End: 9},
	}, spans)
}

func TestTokenizeAdjacentPunctuation(t *testing.T) {
	// Every non-alphanumeric, non-space rune is its own span
	spans := Tokenize("a--b")
	assert.Equal(t, []layer.Span{
		{Start: 0, End: 1},
		{Start: 1, End: 2},
		{Start: 2, End: 3},
		{Start: 3, End: 4},
	}, spans)
}

func TestTokenizeUTF8ByteOffsets(t *testing.T) {
	// "né!" - 'é' is two bytes, so the word covers bytes 0-3 and
	// '!' covers 3-4
	spans := Tokenize("né!")
	assert.Equal(t, []layer.Span{
		{Start: 0, End: 3},
		{Start: 3, End: 4},
	}, spans)
}

func TestTokenizeMultiByteSymbol(t *testing.T) {
	// '€' (3 bytes) is not alphanumeric: a single three-byte span
	spans := Tokenize("5€")
	assert.Equal(t, []layer.Span{
		{Start: 0, End: 1},
		{Start: 1, End: 4},
	}, spans)
}

func TestTokenizeSpansAreNonDecreasing(t *testing.T) {
	spans := Tokenize("The cat, which sat still, watched 2 birds!")
	var prev uint32
	for _, s := range spans {
		assert.LessOrEqual(t, prev, s.Start)
		assert.Less(t, s.Start, s.End)
		prev = s.End
	}
}

func TestTokenizeInvalidUTF8ByteStaysInBounds(t *testing.T) {
	// A lone 0x80 is not valid UTF-8; it must become a one-byte span
	spans := Tokenize("a\x80")
	assert.Equal(t, []layer.Span{
		{Start: 0, End: 1},
		{Start: 1, End: 2},
	}, spans)
}

func TestTokenizeAdjacentInvalidBytes(t *testing.T) {
	input := "a\x80\x80b"
	spans := Tokenize(input)
	assert.Equal(t, []layer.Span{
		{Start: 0, End: 1},
		{Start: 1, End: 2},
		{Start: 2, End: 3},
		{Start: 3, End: 4},
	}, spans)
	for _, s := range spans {
		assert.LessOrEqual(t, s.End, uint32(len(input)))
	}
}
