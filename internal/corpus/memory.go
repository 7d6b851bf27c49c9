package corpus

import (
	"context"
	"sync"

	"github.com/teanganlp/teanga-go/internal/layer"
)

// MemoryStore is an in-memory Store. It is the default backend for
// short-lived corpora and for tests; the SQLite store in internal/store
// offers the same contract with durability.
//
// MemoryStore is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	descNames []string
	descs     map[string]layer.LayerDesc
	docIDs    []string
	docs      map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		descs: make(map[string]layer.LayerDesc),
		docs:  make(map[string]*Document),
	}
}

// AddLayerDesc implements Store.
func (s *MemoryStore) AddLayerDesc(ctx context.Context, name string, desc layer.LayerDesc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.descs[name]; ok {
		return NewDuplicateLayerError(name)
	}
	s.descNames = append(s.descNames, name)
	s.descs[name] = desc
	return nil
}

// LayerDesc implements Store.
func (s *MemoryStore) LayerDesc(ctx context.Context, name string) (layer.LayerDesc, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	desc, ok := s.descs[name]
	return desc, ok, nil
}

// LayerDescs implements Store.
func (s *MemoryStore) LayerDescs(ctx context.Context) ([]NamedDesc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]NamedDesc, len(s.descNames))
	for i, name := range s.descNames {
		out[i] = NamedDesc{Name: name, Desc: s.descs[name]}
	}
	return out, nil
}

// PutDoc implements Store.
func (s *MemoryStore) PutDoc(ctx context.Context, id string, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		s.docIDs = append(s.docIDs, id)
	}
	s.docs[id] = doc
	return nil
}

// GetDoc implements Store.
func (s *MemoryStore) GetDoc(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, NewNoSuchDocumentError(id)
	}
	return doc, nil
}

// HasDoc implements Store.
func (s *MemoryStore) HasDoc(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[id]
	return ok, nil
}

// DocIDs implements Store.
func (s *MemoryStore) DocIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.docIDs))
	copy(out, s.docIDs)
	return out, nil
}
