package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/layer"
)

// applyAssertion checks one assertion against a result. Returns an
// empty string on success and a failure message otherwise.
func applyAssertion(result *Result, a *Assertion) string {
	switch a.Type {
	case AssertTextContains:
		if !strings.Contains(result.Text, a.Value) {
			return fmt.Sprintf("rendered text does not contain %q", a.Value)
		}
	case AssertLayerCount:
		if result.Info.LayerCount != a.Count {
			return fmt.Sprintf("expected %d layer(s), got %d", a.Count, result.Info.LayerCount)
		}
	case AssertDocCount:
		if result.Info.DocumentCount != a.Count {
			return fmt.Sprintf("expected %d document(s), got %d", a.Count, result.Info.DocumentCount)
		}
	case AssertDocIDs:
		if !slices.Equal(result.Info.DocumentIDs, a.IDs) {
			return fmt.Sprintf("expected document ids %v, got %v", a.IDs, result.Info.DocumentIDs)
		}
	default:
		// validateScenario rejects unknown types before Run
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
	return ""
}

// errorCode extracts the machine-readable code from a layer or corpus
// error for comparison with a step's expect_error declaration.
func errorCode(err error) string {
	var decodeErr *layer.DecodeError
	if errors.As(err, &decodeErr) {
		return string(decodeErr.Code)
	}
	var descErr *layer.DescriptorError
	if errors.As(err, &descErr) {
		return "INVALID_DESCRIPTOR"
	}
	var corpusErr *corpus.CorpusError
	if errors.As(err, &corpusErr) {
		return string(corpusErr.Code)
	}
	return "UNCLASSIFIED"
}
