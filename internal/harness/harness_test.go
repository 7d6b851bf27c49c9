package harness

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name))
	require.NoError(t, err)
	return scenario
}

func TestRunBasicCorpus(t *testing.T) {
	scenario := loadTestScenario(t, "basic_corpus.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 3, result.Info.LayerCount)
	assert.Equal(t, []string{"doc1"}, result.Info.DocumentIDs)
	assert.Equal(t, "doc1", result.DocIDs[0])
	assert.Contains(t, result.Text, "_meta:")
}

func TestRunRejectedInput(t *testing.T) {
	scenario := loadTestScenario(t, "rejected_input.yaml")

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 2, result.Info.LayerCount)
	assert.Equal(t, []string{"ok1"}, result.Info.DocumentIDs)
}

func TestRunDerivesDocumentID(t *testing.T) {
	scenario := &Scenario{
		Name:        "derived_id",
		Description: "a doc without an id gets a content-derived one",
		Layers: []LayerStep{
			{Name: "text", Type: "characters"},
		},
		Docs: []DocStep{
			{Layers: map[string]interface{}{"text": "Hello world"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Info.DocumentIDs, 1)
	assert.GreaterOrEqual(t, len(result.Info.DocumentIDs[0]), 4)
	assert.Equal(t, result.Info.DocumentIDs[0], result.DocIDs[0])
}

func TestRunReportsUnexpectedStepError(t *testing.T) {
	scenario := &Scenario{
		Name:        "surprise_error",
		Description: "a failing step without expect_error fails the scenario",
		Layers: []LayerStep{
			{Name: "tokens", Type: "span", Base: "missing"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "layers[0]")
	assert.Contains(t, result.Errors[0], "unexpected error")
}

func TestRunReportsMissingExpectedError(t *testing.T) {
	scenario := &Scenario{
		Name:        "expected_error_absent",
		Description: "a succeeding step with expect_error fails the scenario",
		Layers: []LayerStep{
			{Name: "text", Type: "characters", ExpectError: "UNKNOWN_BASE"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error UNKNOWN_BASE, got none")
}

func TestRunReportsWrongErrorCode(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong_error_code",
		Description: "a step failing with a different code fails the scenario",
		Layers: []LayerStep{
			{Name: "tokens", Type: "span", Base: "missing", ExpectError: "DUPLICATE_LAYER"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error DUPLICATE_LAYER, got UNKNOWN_BASE")
}

func TestRunExpectedErrorOnOverflowingIndex(t *testing.T) {
	scenario := &Scenario{
		Name:        "overflowing_index",
		Description: "an index above MaxInt64 surfaces as INVALID_NUMBER",
		Layers: []LayerStep{
			{Name: "text", Type: "characters"},
			{Name: "tokens", Type: "span", Base: "text"},
		},
		Docs: []DocStep{
			{
				ID: "doc1",
				Layers: map[string]interface{}{
					"text":   "hi",
					"tokens": []interface{}{[]interface{}{uint64(0), uint64(math.MaxUint64)}},
				},
				ExpectError: "INVALID_NUMBER",
			},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.NotContains(t, result.DocIDs, 0)
}

func TestRunFailingAssertion(t *testing.T) {
	scenario := &Scenario{
		Name:        "failing_assertion",
		Description: "an unmet assertion fails the scenario",
		Layers: []LayerStep{
			{Name: "text", Type: "characters"},
		},
		Assertions: []Assertion{
			{Type: AssertDocCount, Count: 5},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected 5 document(s), got 0")
}
