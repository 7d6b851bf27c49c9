package corpus

import (
	"context"

	"github.com/teanganlp/teanga-go/internal/layer"
)

// NamedDesc is one named layer descriptor in registration order.
type NamedDesc struct {
	Name string
	Desc layer.LayerDesc
}

// Store is the persistence capability the corpus facade consumes.
// Implementations must preserve registration order for descriptors and
// insertion order for document ids; the text serializer's output
// ordering is built on that contract.
//
// Stores persist typed layers as given and return them unchanged. All
// descriptor and document validation happens in the facade before a
// store method is called.
type Store interface {
	// AddLayerDesc registers a descriptor under name. The facade has
	// already rejected duplicates and invalid base references.
	AddLayerDesc(ctx context.Context, name string, desc layer.LayerDesc) error

	// LayerDesc returns the descriptor registered under name.
	LayerDesc(ctx context.Context, name string) (layer.LayerDesc, bool, error)

	// LayerDescs returns all descriptors in registration order.
	LayerDescs(ctx context.Context) ([]NamedDesc, error)

	// PutDoc stores a document under id, replacing any previous
	// content for that id.
	PutDoc(ctx context.Context, id string, doc *Document) error

	// GetDoc returns the document stored under id, or a
	// NO_SUCH_DOCUMENT corpus error.
	GetDoc(ctx context.Context, id string) (*Document, error)

	// HasDoc reports whether a document exists under id.
	HasDoc(ctx context.Context, id string) (bool, error)

	// DocIDs returns all document ids in insertion order.
	DocIDs(ctx context.Context) ([]string, error)
}
