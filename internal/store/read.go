package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/teanganlp/teanga-go/internal/corpus"
	"github.com/teanganlp/teanga-go/internal/layer"
)

// LayerDesc returns the descriptor registered under name.
func (s *Store) LayerDesc(ctx context.Context, name string) (layer.LayerDesc, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT layer_type, base, data, link_types, target, dflt
		FROM layer_descs
		WHERE name = ?
	`, name)

	var layerType, base, data, linkTypes, target, dflt string
	if err := row.Scan(&layerType, &base, &data, &linkTypes, &target, &dflt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return layer.LayerDesc{}, false, nil
		}
		return layer.LayerDesc{}, false, fmt.Errorf("layer desc: %w", err)
	}

	desc, err := unmarshalDesc(layerType, base, data, linkTypes, target, dflt)
	if err != nil {
		return layer.LayerDesc{}, false, fmt.Errorf("layer desc %q: %w", name, err)
	}
	return desc, true, nil
}

// LayerDescs returns all descriptors in registration order.
func (s *Store) LayerDescs(ctx context.Context) ([]corpus.NamedDesc, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, layer_type, base, data, link_types, target, dflt
		FROM layer_descs
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("layer descs: %w", err)
	}
	defer rows.Close()

	descs := []corpus.NamedDesc{}
	for rows.Next() {
		var name, layerType, base, data, linkTypes, target, dflt string
		if err := rows.Scan(&name, &layerType, &base, &data, &linkTypes, &target, &dflt); err != nil {
			return nil, fmt.Errorf("layer descs: %w", err)
		}
		desc, err := unmarshalDesc(layerType, base, data, linkTypes, target, dflt)
		if err != nil {
			return nil, fmt.Errorf("layer desc %q: %w", name, err)
		}
		descs = append(descs, corpus.NamedDesc{Name: name, Desc: desc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("layer descs: %w", err)
	}
	return descs, nil
}

// GetDoc returns the document stored under id.
func (s *Store) GetDoc(ctx context.Context, id string) (*corpus.Document, error) {
	ok, err := s.HasDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, corpus.NewNoSuchDocumentError(id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, kind, content
		FROM document_layers
		WHERE doc_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get doc: %w", err)
	}
	defer rows.Close()

	doc := corpus.NewDocument()
	for rows.Next() {
		var name, kind, content string
		if err := rows.Scan(&name, &kind, &content); err != nil {
			return nil, fmt.Errorf("get doc: %w", err)
		}
		l, err := unmarshalLayer(kind, content)
		if err != nil {
			return nil, fmt.Errorf("get doc layer %q: %w", name, err)
		}
		doc.Set(name, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get doc: %w", err)
	}
	return doc, nil
}

// HasDoc reports whether a document exists under id.
func (s *Store) HasDoc(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("has doc: %w", err)
	}
	return true, nil
}

// DocIDs returns all document ids in insertion order.
func (s *Store) DocIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM documents ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("doc ids: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("doc ids: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doc ids: %w", err)
	}
	return ids, nil
}
