// Package layer provides the canonical data model for Teanga annotation
// layers and the codec between typed layers and untyped structured values.
//
// This package contains the value model, layer variants, descriptor
// metadata, and the shape-inference decoder / encoder pair. All other
// internal packages import layer; layer imports nothing internal. This
// ensures the data model remains the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Layer and Value are sealed interfaces; only the variants defined
//     here implement them
//   - Index values are uint32 and fail closed on overflow or negatives
//   - Object preserves key order (the text format depends on it)
//   - Decode and Encode are pure functions with no shared state
package layer
