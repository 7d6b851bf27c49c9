package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/teanganlp/teanga-go/internal/layer"
)

// minIDLen is the starting length of content-derived document ids.
const minIDLen = 4

// deriveDocID produces a stable id for a document from its character
// layers: their texts are concatenated in layer order, NFC normalized,
// hashed with SHA-256 and rendered as unpadded URL-safe base64. The
// shortest unused prefix of at least minIDLen characters becomes the
// id, so ids stay short until the corpus grows.
//
// Documents with no character layer get a random UUID instead.
func deriveDocID(ctx context.Context, s Store, doc *Document) (string, error) {
	var sb strings.Builder
	for _, name := range doc.Names() {
		if l, ok := doc.Get(name); ok {
			if chars, isChars := l.(layer.Characters); isChars {
				sb.WriteString(string(chars))
			}
		}
	}
	if sb.Len() == 0 {
		return uuid.Must(uuid.NewV7()).String(), nil
	}

	sum := sha256.Sum256([]byte(norm.NFC.String(sb.String())))
	full := base64.RawURLEncoding.EncodeToString(sum[:])

	for n := minIDLen; n <= len(full); n++ {
		candidate := full[:n]
		taken, err := s.HasDoc(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// Every prefix of a 43-character hash is taken: fall back to a
	// UUID rather than overwrite
	return uuid.Must(uuid.NewV7()).String(), nil
}
