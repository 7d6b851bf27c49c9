// Package store provides the SQLite-backed corpus store.
//
// It implements the corpus.Store capability: ordered layer descriptor
// registration and ordered document storage. Each layer is persisted
// as its encoded JSON form alongside an explicit variant tag, so every
// layer variant round-trips losslessly - including the string-bearing
// variants the shape-inference decoder deliberately cannot reach.
//
// Ordering contracts:
//   - Layer descriptors are returned in registration order
//   - Document ids are returned in insertion order
//   - Document layers keep the order they were stored in
//
// The text serializer's output ordering depends on all three.
package store
