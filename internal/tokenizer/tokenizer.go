// Package tokenizer provides a regex-free word tokenizer producing
// spans over raw text.
package tokenizer

import (
	"unicode"
	"unicode/utf8"

	"github.com/teanganlp/teanga-go/internal/layer"
)

// Tokenize scans text left to right and returns non-overlapping,
// half-open spans measured in UTF-8 byte offsets.
//
// A maximal run of letters or digits becomes one span. Any other
// non-whitespace rune becomes its own single-rune span. Whitespace
// closes an open word span and emits nothing itself. A word span still
// open at end of input is closed at the text's end.
//
// The scan is a single linear pass with O(1) auxiliary state.
func Tokenize(text string) []layer.Span {
	spans := []layer.Span{}
	var start uint32
	inWord := false

	for i := 0; i < len(text); {
		// Decode explicitly so invalid bytes report their consumed
		// width of 1, not the 3-byte width of the replacement rune
		r, w := utf8.DecodeRuneInString(text[i:])
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inWord {
				start = uint32(i)
				inWord = true
			}
			i += w
			continue
		}
		if inWord {
			spans = append(spans, layer.Span{Start: start, End: uint32(i)})
			inWord = false
		}
		if !unicode.IsSpace(r) {
			spans = append(spans, layer.Span{
				Start: uint32(i),
				End:   uint32(i + w),
			})
		}
		i += w
	}

	if inWord {
		spans = append(spans, layer.Span{Start: start, End: uint32(len(text))})
	}

	return spans
}
