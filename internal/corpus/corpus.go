package corpus

import (
	"context"
	"fmt"
	"slices"

	"github.com/teanganlp/teanga-go/internal/layer"
	"github.com/teanganlp/teanga-go/internal/serializer"
)

// Corpus is the facade over a Store: it validates layer descriptors,
// converts untyped document values through the shape-inference codec,
// and exposes the encoded and text-format read surfaces.
type Corpus struct {
	store Store
}

// New creates a corpus over the given store.
func New(s Store) *Corpus {
	return &Corpus{store: s}
}

// NewInMemory creates a corpus over a fresh in-memory store.
func NewInMemory() *Corpus {
	return New(NewMemoryStore())
}

// AddLayerMeta registers a layer from the string surface the boundary
// layer exposes: a layer type name, an optional base layer name, and an
// optional data type string ("string", "link", or a JSON list literal
// for an enum). Empty strings mean absent.
func (c *Corpus) AddLayerMeta(ctx context.Context, name, layerType, base, dataType string) error {
	desc, err := layer.NewLayerDesc(layerType, base, dataType)
	if err != nil {
		return err
	}
	return c.AddLayerDesc(ctx, name, desc)
}

// AddLayerDesc validates and registers a descriptor. Non-characters
// layers must name a registered base; characters layers must not name
// one. Because a base must already exist at registration time, base
// chains can never form a cycle beyond direct self-reference, which is
// rejected explicitly.
func (c *Corpus) AddLayerDesc(ctx context.Context, name string, desc layer.LayerDesc) error {
	if name == "" {
		return &CorpusError{Code: ErrCodeUnknownLayer, Message: "layer name must not be empty"}
	}

	if _, ok, err := c.store.LayerDesc(ctx, name); err != nil {
		return err
	} else if ok {
		return NewDuplicateLayerError(name)
	}

	if desc.Type == layer.TypeCharacters {
		if desc.Base != "" {
			return &CorpusError{
				Code:    ErrCodeUnexpectedBase,
				Message: "characters layer must not declare a base",
				Layer:   name,
			}
		}
	} else {
		if desc.Base == "" {
			return &CorpusError{
				Code:    ErrCodeMissingBase,
				Message: fmt.Sprintf("%s layer requires a base", desc.Type),
				Layer:   name,
			}
		}
		if desc.Base == name {
			return &CorpusError{
				Code:    ErrCodeCyclicBase,
				Message: "layer must not be its own base",
				Layer:   name,
			}
		}
		if _, ok, err := c.store.LayerDesc(ctx, desc.Base); err != nil {
			return err
		} else if !ok {
			return &CorpusError{
				Code:    ErrCodeUnknownBase,
				Message: fmt.Sprintf("base %q is not a registered layer", desc.Base),
				Layer:   name,
			}
		}
	}

	return c.store.AddLayerDesc(ctx, name, desc)
}

// AddDoc decodes the given untyped layer values through shape
// inference, derives a content-based document id, and stores the
// document. Layer names are processed in sorted order so the derived
// id and the stored layer order are deterministic regardless of map
// iteration.
func (c *Corpus) AddDoc(ctx context.Context, layers map[string]layer.Value) (string, error) {
	doc, err := c.decodeDoc(ctx, layers)
	if err != nil {
		return "", err
	}

	id, err := deriveDocID(ctx, c.store, doc)
	if err != nil {
		return "", err
	}

	if err := c.store.PutDoc(ctx, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

// AddDocWithID stores a document under a caller-supplied id, replacing
// any existing content for that id. Used when ingesting corpora whose
// ids were assigned elsewhere.
func (c *Corpus) AddDocWithID(ctx context.Context, id string, layers map[string]layer.Value) error {
	doc, err := c.decodeDoc(ctx, layers)
	if err != nil {
		return err
	}
	return c.store.PutDoc(ctx, id, doc)
}

func (c *Corpus) decodeDoc(ctx context.Context, layers map[string]layer.Value) (*Document, error) {
	names := make([]string, 0, len(layers))
	for name := range layers {
		names = append(names, name)
	}
	slices.Sort(names)

	doc := NewDocument()
	for _, name := range names {
		if _, ok, err := c.store.LayerDesc(ctx, name); err != nil {
			return nil, err
		} else if !ok {
			return nil, NewUnknownLayerError(name)
		}
		l, err := layer.Decode(layers[name])
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", name, err)
		}
		doc.Set(name, l)
	}
	return doc, nil
}

// GetDocument returns the typed document stored under id.
func (c *Corpus) GetDocument(ctx context.Context, id string) (*Document, error) {
	return c.store.GetDoc(ctx, id)
}

// GetDocByID returns the document under id in its encoded, untyped
// form: an ordered Object of layer name to encoded layer value.
func (c *Corpus) GetDocByID(ctx context.Context, id string) (layer.Object, error) {
	doc, err := c.store.GetDoc(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Encode(), nil
}

// DocIDs returns all document ids in insertion order.
func (c *Corpus) DocIDs(ctx context.Context) ([]string, error) {
	return c.store.DocIDs(ctx)
}

// Meta returns all layer descriptors in registration order.
func (c *Corpus) Meta(ctx context.Context) ([]NamedDesc, error) {
	return c.store.LayerDescs(ctx)
}

// EncodeMeta returns the schema as an ordered Object of layer name to
// encoded descriptor, the form the boundary layer serializes.
func (c *Corpus) EncodeMeta(ctx context.Context) (layer.Object, error) {
	descs, err := c.store.LayerDescs(ctx)
	if err != nil {
		return nil, err
	}
	obj := make(layer.Object, 0, len(descs))
	for _, d := range descs {
		obj = append(obj, layer.F(d.Name, layer.EncodeDesc(d.Desc)))
	}
	return obj, nil
}

// Info summarizes the corpus contents.
type Info struct {
	LayerCount    int      `json:"layer_count"`
	DocumentCount int      `json:"document_count"`
	LayerNames    []string `json:"layer_names"`
	DocumentIDs   []string `json:"document_ids"`
}

// Info returns layer and document counts and names.
func (c *Corpus) Info(ctx context.Context) (Info, error) {
	descs, err := c.store.LayerDescs(ctx)
	if err != nil {
		return Info{}, err
	}
	ids, err := c.store.DocIDs(ctx)
	if err != nil {
		return Info{}, err
	}

	names := make([]string, len(descs))
	for i, d := range descs {
		names[i] = d.Name
	}
	return Info{
		LayerCount:    len(descs),
		DocumentCount: len(ids),
		LayerNames:    names,
		DocumentIDs:   ids,
	}, nil
}

// ToText renders the corpus in the Teanga text format: the _meta block
// in registration order, then each document in insertion order with its
// layers in stored order.
func (c *Corpus) ToText(ctx context.Context) (string, error) {
	view, err := c.snapshot(ctx)
	if err != nil {
		return "", err
	}
	return serializer.String(view), nil
}

// snapshot collects the serializer view eagerly so that the serializer
// itself stays pure and total.
func (c *Corpus) snapshot(ctx context.Context) (serializer.View, error) {
	descs, err := c.store.LayerDescs(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := c.store.DocIDs(ctx)
	if err != nil {
		return nil, err
	}

	view := &corpusView{meta: make([]serializer.MetaEntry, len(descs))}
	for i, d := range descs {
		view.meta[i] = serializer.MetaEntry{Name: d.Name, Desc: d.Desc}
	}

	for _, id := range ids {
		doc, err := c.store.GetDoc(ctx, id)
		if err != nil {
			return nil, err
		}
		entry := serializer.DocEntry{ID: id}
		for _, name := range doc.Names() {
			l, _ := doc.Get(name)
			entry.Layers = append(entry.Layers, serializer.LayerEntry{Name: name, Layer: l})
		}
		view.docs = append(view.docs, entry)
	}
	return view, nil
}

type corpusView struct {
	meta []serializer.MetaEntry
	docs []serializer.DocEntry
}

func (v *corpusView) Meta() []serializer.MetaEntry { return v.meta }
func (v *corpusView) Docs() []serializer.DocEntry  { return v.docs }
