package store

import (
	"context"
	"fmt"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/layer"
)

// AddLayerDesc registers a descriptor at the next position. The facade
// has already rejected duplicates; a racing duplicate insert still
// fails on the primary key and surfaces as a corpus error.
func (s *Store) AddLayerDesc(ctx context.Context, name string, desc layer.LayerDesc) error {
	layerType, base, data, linkTypes, target, dflt, err := marshalDesc(desc)
	if err != nil {
		return fmt.Errorf("add layer desc: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO layer_descs (name, layer_type, base, data, link_types, target, dflt, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COUNT(*) FROM layer_descs))
		ON CONFLICT(name) DO NOTHING
	`, name, layerType, base, data, linkTypes, target, dflt)
	if err != nil {
		return fmt.Errorf("add layer desc: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add layer desc: %w", err)
	}
	if affected == 0 {
		return corpus.NewDuplicateLayerError(name)
	}
	return nil
}

// PutDoc stores a document under id, replacing any previous layers for
// that id while keeping its original position.
func (s *Store) PutDoc(ctx context.Context, id string, doc *corpus.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put doc: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO documents (id, position)
		VALUES (?, (SELECT COUNT(*) FROM documents))
		ON CONFLICT(id) DO NOTHING
	`, id); err != nil {
		return fmt.Errorf("put doc: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM document_layers WHERE doc_id = ?`, id); err != nil {
		return fmt.Errorf("put doc: %w", err)
	}

	for i, name := range doc.Names() {
		l, _ := doc.Get(name)
		kind, content, err := marshalLayer(l)
		if err != nil {
			return fmt.Errorf("put doc layer %q: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO document_layers (doc_id, name, kind, content, position)
			VALUES (?, ?, ?, ?, ?)
		`, id, name, kind, content, i); err != nil {
			return fmt.Errorf("put doc layer %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put doc: %w", err)
	}
	return nil
}
