// Package harness provides conformance testing for Teanga corpora.
//
// The harness loads YAML scenarios that declare a layer schema and a
// set of documents, builds an in-memory corpus from them, and checks
// assertions against the resulting corpus and its text rendering.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	layers:
//	  - name: text
//	    type: characters
//	  - name: tokens
//	    type: span
//	    base: text
//	docs:
//	  - id: doc1
//	    layers:
//	      text: "This works"
//	      tokens: [[0, 4], [5, 10]]
//	assertions:
//	  - type: text_contains
//	    value: 'text: "This works"'
//	  - type: doc_ids
//	    ids: [doc1]
//
// A document without an id gets a content-derived one, the same as a
// corpus built through the API. A layer or document step may instead
// declare the error it must be rejected with:
//
//	docs:
//	  - layers:
//	      tokens: [[0, 4], [5, 10, 3]]
//	    expect_error: ARITY_MISMATCH
//
// # Assertion Types
//
//   - text_contains: the rendered text contains a substring
//   - layer_count: the corpus has exactly N layers
//   - doc_count: the corpus has exactly N documents
//   - doc_ids: the document ids equal the given list, in order
//
// # Deterministic Testing
//
// Document ids derive from document content, layer registration order
// follows the scenario, and the text rendering is byte-deterministic,
// so scenario output is stable across runs and suitable for golden
// file comparison.
package harness
