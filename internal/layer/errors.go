package layer

import (
	"errors"
	"fmt"
)

// DecodeError represents a rejection by the shape-inference decoder.
//
// Decode errors include:
//   - Shape mismatch: array elements disagree with the first element's type
//   - Arity mismatch: a nested array's length differs from the committed arity
//   - Unsupported shape: the outer or inner structure matches no layer shape
//   - Invalid number: an index value is missing, negative, fractional,
//     or out of uint32 range
//
// DecodeError includes the offending element index for diagnostics.
type DecodeError struct {
	// Code identifies the error category.
	Code DecodeErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the position of the offending element within the input
	// array, or -1 when no single element is at fault.
	Index int
}

// DecodeErrorCode categorizes decode errors.
type DecodeErrorCode string

const (
	// ErrCodeShapeMismatch indicates array elements with inconsistent
	// types relative to the first element.
	ErrCodeShapeMismatch DecodeErrorCode = "SHAPE_MISMATCH"

	// ErrCodeArityMismatch indicates a nested array whose length does
	// not match the arity committed from the first element.
	ErrCodeArityMismatch DecodeErrorCode = "ARITY_MISMATCH"

	// ErrCodeUnsupportedShape indicates input whose structure matches
	// none of the recognized layer shapes.
	ErrCodeUnsupportedShape DecodeErrorCode = "UNSUPPORTED_SHAPE"

	// ErrCodeInvalidNumber indicates an index value that is missing,
	// negative, fractional, or out of uint32 range.
	ErrCodeInvalidNumber DecodeErrorCode = "INVALID_NUMBER"
)

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: %s (index=%d)", e.Code, e.Message, e.Index)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsShapeMismatch returns true if the error is a shape mismatch.
// Uses errors.As to handle wrapped errors.
func IsShapeMismatch(err error) bool {
	return hasDecodeCode(err, ErrCodeShapeMismatch)
}

// IsArityMismatch returns true if the error is an arity mismatch.
func IsArityMismatch(err error) bool {
	return hasDecodeCode(err, ErrCodeArityMismatch)
}

// IsUnsupportedShape returns true if the error is an unsupported shape.
func IsUnsupportedShape(err error) bool {
	return hasDecodeCode(err, ErrCodeUnsupportedShape)
}

// IsInvalidNumber returns true if the error is an invalid number.
func IsInvalidNumber(err error) bool {
	return hasDecodeCode(err, ErrCodeInvalidNumber)
}

func hasDecodeCode(err error, code DecodeErrorCode) bool {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// NewShapeMismatchError creates a DecodeError for inconsistent element types.
func NewShapeMismatchError(index int, message string) *DecodeError {
	return &DecodeError{Code: ErrCodeShapeMismatch, Message: message, Index: index}
}

// NewArityMismatchError creates a DecodeError for a wrong-length nested array.
func NewArityMismatchError(index int, message string) *DecodeError {
	return &DecodeError{Code: ErrCodeArityMismatch, Message: message, Index: index}
}

// NewUnsupportedShapeError creates a DecodeError for unrecognized structure.
func NewUnsupportedShapeError(index int, message string) *DecodeError {
	return &DecodeError{Code: ErrCodeUnsupportedShape, Message: message, Index: index}
}

// NewInvalidNumberError creates a DecodeError for a bad index value.
func NewInvalidNumberError(index int, message string) *DecodeError {
	return &DecodeError{Code: ErrCodeInvalidNumber, Message: message, Index: index}
}

// DescriptorError represents an invalid layer type or data type
// declaration supplied by a caller.
type DescriptorError struct {
	// Field names the descriptor field at fault ("layer_type" or "data").
	Field string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *DescriptorError) Error() string {
	return fmt.Sprintf("INVALID_DESCRIPTOR: %s: %s", e.Field, e.Message)
}

// IsInvalidDescriptor returns true if the error is a descriptor error.
func IsInvalidDescriptor(err error) bool {
	var de *DescriptorError
	return errors.As(err, &de)
}

// NewDescriptorError creates a DescriptorError for the given field.
func NewDescriptorError(field, message string) *DescriptorError {
	return &DescriptorError{Field: field, Message: message}
}
