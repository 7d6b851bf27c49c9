package harness

import (
	"context"
	"fmt"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/layer"
)

// Result holds the outcome of running a scenario.
type Result struct {
	// Pass is true when every step behaved as declared and every
	// assertion held.
	Pass bool

	// Errors lists assertion and step failures in order.
	Errors []string

	// Text is the corpus rendered in the Teanga text format. Empty
	// when the scenario never built a complete corpus.
	Text string

	// Info summarizes the built corpus.
	Info corpus.Info

	// DocIDs maps each doc step index to the id its document was
	// stored under. Rejected steps have no entry.
	DocIDs map[int]string
}

// Run builds an in-memory corpus from the scenario and checks its
// assertions. The returned error covers harness-level failures such as
// store failures; scenario-level failures, including doc values that do
// not convert, land in Result.Errors with Pass set to false.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()
	c := corpus.NewInMemory()

	result := &Result{Pass: true, DocIDs: make(map[int]string)}

	for i, step := range scenario.Layers {
		err := c.AddLayerMeta(ctx, step.Name, step.Type, step.Base, step.Data)
		checkStepError(result, fmt.Sprintf("layers[%d]", i), step.ExpectError, err)
	}

	for i, step := range scenario.Docs {
		layers, convErr := convertDocLayers(step.Layers)
		if convErr != nil {
			checkStepError(result, fmt.Sprintf("docs[%d]", i), step.ExpectError, convErr)
			continue
		}

		var id string
		var addErr error
		if step.ID != "" {
			id = step.ID
			addErr = c.AddDocWithID(ctx, step.ID, layers)
		} else {
			id, addErr = c.AddDoc(ctx, layers)
		}
		checkStepError(result, fmt.Sprintf("docs[%d]", i), step.ExpectError, addErr)
		if addErr == nil {
			result.DocIDs[i] = id
		}
	}

	info, err := c.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect corpus: %w", err)
	}
	result.Info = info

	text, err := c.ToText(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to render corpus: %w", err)
	}
	result.Text = text

	for i, assertion := range scenario.Assertions {
		if msg := applyAssertion(result, &assertion); msg != "" {
			result.Pass = false
			result.Errors = append(result.Errors, fmt.Sprintf("assertions[%d]: %s", i, msg))
		}
	}

	return result, nil
}

// checkStepError reconciles a step's outcome with its declared
// expectation and records any mismatch.
func checkStepError(result *Result, step, expectCode string, err error) {
	switch {
	case expectCode == "" && err != nil:
		result.Pass = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s: unexpected error: %v", step, err))
	case expectCode != "" && err == nil:
		result.Pass = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s: expected error %s, got none", step, expectCode))
	case expectCode != "" && err != nil:
		if code := errorCode(err); code != expectCode {
			result.Pass = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: expected error %s, got %s: %v", step, expectCode, code, err))
		}
	}
}

// convertDocLayers converts YAML-decoded layer values into untyped
// layer values.
func convertDocLayers(raw map[string]interface{}) (map[string]layer.Value, error) {
	layers := make(map[string]layer.Value, len(raw))
	for name, v := range raw {
		conv, err := layer.FromGo(v)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", name, err)
		}
		layers[name] = conv
	}
	return layers, nil
}
