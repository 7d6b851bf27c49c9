package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a corpus conformance scenario: a layer schema, a
// set of documents, and assertions over the resulting corpus.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name for golden comparison.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Layers declares the schema in registration order.
	Layers []LayerStep `yaml:"layers"`

	// Docs lists the documents to add, in order.
	Docs []DocStep `yaml:"docs,omitempty"`

	// Assertions validate the built corpus and its text rendering.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// LayerStep registers one layer descriptor.
type LayerStep struct {
	// Name is the layer name.
	Name string `yaml:"name"`

	// Type is the layer type (characters, span, seq, div, element).
	Type string `yaml:"type"`

	// Base names the layer this one builds on. Required for every
	// non-characters type.
	Base string `yaml:"base,omitempty"`

	// Data is the optional data refinement in its string surface form:
	// "string", "link", or a JSON list literal for an enum.
	Data string `yaml:"data,omitempty"`

	// ExpectError names the error code this registration must be
	// rejected with. Steps without it are assumed to succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// DocStep adds one document.
type DocStep struct {
	// ID is the document id. If empty, the corpus derives one from the
	// document content.
	ID string `yaml:"id,omitempty"`

	// Layers maps layer names to untyped layer values, decoded through
	// shape inference exactly like API input.
	Layers map[string]interface{} `yaml:"layers"`

	// ExpectError names the error code this document must be rejected
	// with. Steps without it are assumed to succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates the built corpus.
type Assertion struct {
	// Type specifies the assertion type:
	// - "text_contains": rendered text contains Value
	// - "layer_count": corpus has exactly Count layers
	// - "doc_count": corpus has exactly Count documents
	// - "doc_ids": document ids equal IDs, in order
	Type string `yaml:"type"`

	// Value is the expected substring (text_contains).
	Value string `yaml:"value,omitempty"`

	// Count is the expected number (layer_count, doc_count).
	Count int `yaml:"count,omitempty"`

	// IDs is the expected id list (doc_ids).
	IDs []string `yaml:"ids,omitempty"`
}

// Assertion type constants.
const (
	AssertTextContains = "text_contains"
	AssertLayerCount   = "layer_count"
	AssertDocCount     = "doc_count"
	AssertDocIDs       = "doc_ids"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Layers) == 0 {
		return fmt.Errorf("layers list is required and must be non-empty")
	}

	for i, step := range s.Layers {
		if step.Name == "" {
			return fmt.Errorf("layers[%d]: name is required", i)
		}
		if step.Type == "" {
			return fmt.Errorf("layers[%d]: type is required", i)
		}
	}

	for i, step := range s.Docs {
		if len(step.Layers) == 0 {
			return fmt.Errorf("docs[%d]: layers is required and must be non-empty", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTextContains:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for text_contains", index)
		}
	case AssertLayerCount, AssertDocCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertDocIDs:
		if len(a.IDs) == 0 {
			return fmt.Errorf("assertions[%d]: ids list is required for doc_ids", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
