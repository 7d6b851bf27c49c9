// Package corpus provides the corpus facade: schema registration,
// document ingestion through the shape-inference codec, and the read
// surface the text serializer consumes.
//
// The facade owns no storage itself. It validates descriptors and
// documents, converts between untyped values and typed layers, and
// delegates persistence to a Store implementation (the in-memory store
// here, or the SQLite store in internal/store).
package corpus
