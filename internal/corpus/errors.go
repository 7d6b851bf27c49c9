package corpus

import (
	"errors"
	"fmt"
)

// CorpusError represents a rejection by the corpus facade or its store.
//
// Corpus errors include:
//   - Schema errors: duplicate layer names, missing or dangling base
//     references, base cycles
//   - Document errors: layers not present in the schema, unknown
//     document ids
type CorpusError struct {
	// Code identifies the error category.
	Code CorpusErrorCode

	// Message is a human-readable description.
	Message string

	// Layer names the affected layer, if any.
	Layer string

	// Doc names the affected document id, if any.
	Doc string
}

// CorpusErrorCode categorizes corpus errors.
type CorpusErrorCode string

const (
	// ErrCodeDuplicateLayer indicates a layer name registered twice.
	ErrCodeDuplicateLayer CorpusErrorCode = "DUPLICATE_LAYER"

	// ErrCodeMissingBase indicates a non-characters layer without a base.
	ErrCodeMissingBase CorpusErrorCode = "MISSING_BASE"

	// ErrCodeUnexpectedBase indicates a characters layer declaring a base.
	ErrCodeUnexpectedBase CorpusErrorCode = "UNEXPECTED_BASE"

	// ErrCodeUnknownBase indicates a base reference to an unregistered layer.
	ErrCodeUnknownBase CorpusErrorCode = "UNKNOWN_BASE"

	// ErrCodeCyclicBase indicates a base reference that closes a cycle.
	ErrCodeCyclicBase CorpusErrorCode = "CYCLIC_BASE"

	// ErrCodeUnknownLayer indicates a document layer not present in the schema.
	ErrCodeUnknownLayer CorpusErrorCode = "UNKNOWN_LAYER"

	// ErrCodeNoSuchDocument indicates a lookup for an unknown document id.
	ErrCodeNoSuchDocument CorpusErrorCode = "NO_SUCH_DOCUMENT"
)

// Error implements the error interface.
func (e *CorpusError) Error() string {
	switch {
	case e.Layer != "":
		return fmt.Sprintf("%s: %s (layer=%s)", e.Code, e.Message, e.Layer)
	case e.Doc != "":
		return fmt.Sprintf("%s: %s (doc=%s)", e.Code, e.Message, e.Doc)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsNoSuchDocument returns true if the error is an unknown-document error.
// Uses errors.As to handle wrapped errors.
func IsNoSuchDocument(err error) bool {
	return hasCorpusCode(err, ErrCodeNoSuchDocument)
}

// IsDuplicateLayer returns true if the error is a duplicate-layer error.
func IsDuplicateLayer(err error) bool {
	return hasCorpusCode(err, ErrCodeDuplicateLayer)
}

// IsSchemaError returns true for any descriptor-level rejection
// (duplicate names and every base-reference violation).
func IsSchemaError(err error) bool {
	var ce *CorpusError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Code {
	case ErrCodeDuplicateLayer, ErrCodeMissingBase, ErrCodeUnexpectedBase,
		ErrCodeUnknownBase, ErrCodeCyclicBase:
		return true
	}
	return false
}

func hasCorpusCode(err error, code CorpusErrorCode) bool {
	var ce *CorpusError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// NewDuplicateLayerError creates a CorpusError for a re-registered name.
func NewDuplicateLayerError(name string) *CorpusError {
	return &CorpusError{
		Code:    ErrCodeDuplicateLayer,
		Message: "layer already registered",
		Layer:   name,
	}
}

// NewNoSuchDocumentError creates a CorpusError for an unknown doc id.
func NewNoSuchDocumentError(id string) *CorpusError {
	return &CorpusError{
		Code:    ErrCodeNoSuchDocument,
		Message: "document not found",
		Doc:     id,
	}
}

// NewUnknownLayerError creates a CorpusError for a document layer that
// has no registered descriptor.
func NewUnknownLayerError(name string) *CorpusError {
	return &CorpusError{
		Code:    ErrCodeUnknownLayer,
		Message: "no descriptor registered for layer",
		Layer:   name,
	}
}
