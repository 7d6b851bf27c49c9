package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoldenBasicCorpus(t *testing.T) {
	scenario := loadTestScenario(t, "basic_corpus.yaml")
	require.NoError(t, RunWithGolden(t, scenario))
}

func TestGoldenEscapedText(t *testing.T) {
	scenario := loadTestScenario(t, "escaped_text.yaml")
	require.NoError(t, RunWithGolden(t, scenario))
}

func TestGoldenRejectedInput(t *testing.T) {
	// Rejected steps leave no trace in the rendered corpus
	scenario := loadTestScenario(t, "rejected_input.yaml")
	require.NoError(t, RunWithGolden(t, scenario))
}
