package layer

// Layer is a sealed interface representing the data of one annotation
// layer on one document. Exactly one variant type holds the data; the
// variant must agree with the LayerDesc registered for the layer's name
// (cross-checked by the corpus, not here - the codec is schema-agnostic).
type Layer interface {
	layer() // Sealed - only these types implement it
}

// Characters is the root text content layer: a single owned string.
type Characters string

func (Characters) layer() {}

// Span is a half-open [Start, End) offset pair into a base layer.
// Offsets over character layers are UTF-8 byte offsets.
type Span struct {
	Start uint32
	End   uint32
}

// Triple is an index triple, typically a span plus a link target.
type Triple struct {
	Start uint32
	End   uint32
	Idx   uint32
}

// L1 is an ordered sequence of single indices into a base layer,
// e.g. token boundaries into a div layer.
type L1 []uint32

func (L1) layer() {}

// L2 is an ordered sequence of (start, end) spans over a base layer.
type L2 []Span

func (L2) layer() {}

// L3 is an ordered sequence of index triples.
type L3 []Triple

func (L3) layer() {}

// LS is an ordered sequence of free-standing string values, one per
// annotation, with no positional link.
type LS []string

func (LS) layer() {}

// IdxVal is a single index with an associated string value.
type IdxVal struct {
	Idx uint32
	Val string
}

// L1S is an ordered sequence of index-plus-string annotations.
type L1S []IdxVal

func (L1S) layer() {}

// SpanVal is a span with an associated string value.
type SpanVal struct {
	Start uint32
	End   uint32
	Val   string
}

// L2S is an ordered sequence of span-plus-string annotations.
type L2S []SpanVal

func (L2S) layer() {}

// TripleVal is an index triple with an associated string value.
type TripleVal struct {
	Start uint32
	End   uint32
	Idx   uint32
	Val   string
}

// L3S is an ordered sequence of triple-plus-string annotations.
type L3S []TripleVal

func (L3S) layer() {}

// Meta holds an arbitrary nested Value for document-level metadata
// layers. A nil Val represents an explicit null.
type Meta struct {
	Val Value
}

func (Meta) layer() {}

// Kind identifies a Layer variant. Used by stores that persist layers
// with an explicit tag so that every variant (including the ones not
// reachable by shape inference) can be read back losslessly.
type Kind string

const (
	KindCharacters Kind = "characters"
	KindL1         Kind = "l1"
	KindL2         Kind = "l2"
	KindL3         Kind = "l3"
	KindLS         Kind = "ls"
	KindL1S        Kind = "l1s"
	KindL2S        Kind = "l2s"
	KindL3S        Kind = "l3s"
	KindMeta       Kind = "meta"
)

// KindOf returns the Kind tag for a Layer variant.
func KindOf(l Layer) Kind {
	switch l.(type) {
	case Characters:
		return KindCharacters
	case L1:
		return KindL1
	case L2:
		return KindL2
	case L3:
		return KindL3
	case LS:
		return KindLS
	case L1S:
		return KindL1S
	case L2S:
		return KindL2S
	case L3S:
		return KindL3S
	case Meta:
		return KindMeta
	default:
		// Sealed interface - unreachable for values constructed
		// through this package
		return ""
	}
}
