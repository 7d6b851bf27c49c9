// Package schema validates corpus schema files (layer descriptor
// mappings) before they are loaded into a corpus.
//
// Structural validation is delegated to a CUE definition; reference
// checks that CUE cannot express (dangling bases, base cycles,
// duplicate enum labels) run as a second pass over the parsed mapping.
package schema

import (
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// schemaSource is the CUE definition a corpus schema must satisfy.
// It mirrors the descriptor surface: a mapping from layer names to
// descriptors with a layer type, an optional base, and an optional
// data refinement ("string", "link", or an enum label list).
const schemaSource = `
#LayerType: "characters" | "span" | "seq" | "div" | "element"

#Data: "string" | "link" | [...string]

#LayerDesc: {
	type: #LayerType
	base?: string
	data?: #Data
	link_types?: [...string]
	target?: string
	default?: _
}

#Meta: {
	[string]: #LayerDesc
}
`

// ValidationError is one schema violation.
type ValidationError struct {
	// Path locates the violation, e.g. "tokens.type".
	Path string `json:"path"`

	// Message describes the violation.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidateFile reads a YAML or JSON schema file and validates it.
// The file may be a bare layer-name mapping or a full corpus file, in
// which case its _meta block is validated. Returns the violations
// found; a nil slice means the schema is valid. The error return is
// reserved for I/O and parse failures.
func ValidateFile(path string) ([]ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	meta := doc
	if inner, ok := doc["_meta"].(map[string]any); ok {
		meta = inner
	}

	return ValidateMeta(meta), nil
}

// ValidateMeta validates a parsed layer-name mapping against the CUE
// definition and the reference rules.
func ValidateMeta(meta map[string]any) []ValidationError {
	var violations []ValidationError

	violations = append(violations, validateStructure(meta)...)
	violations = append(violations, validateReferences(meta)...)

	if len(violations) == 0 {
		return nil
	}
	return violations
}

// validateStructure unifies the mapping with the #Meta definition.
func validateStructure(meta map[string]any) []ValidationError {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schemaSource)
	if err := schemaVal.Err(); err != nil {
		// The embedded definition is a compile-time constant; failing
		// to compile it is a programming error worth surfacing loudly
		return []ValidationError{{Message: fmt.Sprintf("internal schema definition error: %v", err)}}
	}

	metaDef := schemaVal.LookupPath(cue.ParsePath("#Meta"))
	dataVal := ctx.Encode(meta)
	if err := dataVal.Err(); err != nil {
		return []ValidationError{{Message: fmt.Sprintf("schema is not a valid mapping: %v", err)}}
	}

	unified := metaDef.Unify(dataVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return cueErrorList(err)
	}
	return nil
}

// cueErrorList flattens a CUE error into per-path violations.
func cueErrorList(err error) []ValidationError {
	var violations []ValidationError
	for _, e := range cueerrors.Errors(err) {
		path := ""
		if p := e.Path(); len(p) > 0 {
			path = joinPath(p)
		}
		violations = append(violations, ValidationError{
			Path:    path,
			Message: e.Error(),
		})
	}
	return violations
}

func joinPath(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}

// validateReferences checks the rules CUE cannot express: base
// presence per layer type, dangling references, base cycles, and
// duplicate enum labels. Layer names are visited in sorted order so
// violations are reported deterministically.
func validateReferences(meta map[string]any) []ValidationError {
	var violations []ValidationError

	names := make([]string, 0, len(meta))
	for name := range meta {
		names = append(names, name)
	}
	sort.Strings(names)

	bases := make(map[string]string, len(meta))
	for _, name := range names {
		desc, ok := meta[name].(map[string]any)
		if !ok {
			continue // structural pass already reported it
		}
		layerType, _ := desc["type"].(string)
		base, _ := desc["base"].(string)
		bases[name] = base

		switch {
		case layerType == "characters" && base != "":
			violations = append(violations, ValidationError{
				Path:    name + ".base",
				Message: "characters layer must not declare a base",
			})
		case layerType != "" && layerType != "characters" && base == "":
			violations = append(violations, ValidationError{
				Path:    name + ".base",
				Message: fmt.Sprintf("%s layer requires a base", layerType),
			})
		case base != "":
			if _, exists := meta[base]; !exists {
				violations = append(violations, ValidationError{
					Path:    name + ".base",
					Message: fmt.Sprintf("base %q is not a declared layer", base),
				})
			}
		}

		if enum, ok := desc["data"].([]any); ok {
			seen := make(map[string]bool, len(enum))
			for _, v := range enum {
				label, ok := v.(string)
				if !ok {
					continue
				}
				if seen[label] {
					violations = append(violations, ValidationError{
						Path:    name + ".data",
						Message: fmt.Sprintf("duplicate enum label: %s", label),
					})
				}
				seen[label] = true
			}
		}
	}

	violations = append(violations, findBaseCycles(names, bases)...)
	return violations
}

// findBaseCycles reports every layer whose base chain loops back on
// itself.
func findBaseCycles(names []string, bases map[string]string) []ValidationError {
	var violations []ValidationError
	for _, name := range names {
		seen := map[string]bool{name: true}
		cur := bases[name]
		for cur != "" {
			if seen[cur] {
				violations = append(violations, ValidationError{
					Path:    name + ".base",
					Message: "base chain forms a cycle",
				})
				break
			}
			seen[cur] = true
			cur = bases[cur]
		}
	}
	return violations
}
