package corpus

import (
	"github.com/teanganlp/teanga-go/internal/layer"
)

// Document is an ordered mapping of layer name to layer data. Iteration
// order is insertion order; the text serializer and the encoded output
// both preserve it.
type Document struct {
	names  []string
	layers map[string]layer.Layer
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{layers: make(map[string]layer.Layer)}
}

// Set stores a layer under name, replacing any previous value without
// changing its position.
func (d *Document) Set(name string, l layer.Layer) {
	if _, ok := d.layers[name]; !ok {
		d.names = append(d.names, name)
	}
	d.layers[name] = l
}

// Get returns the layer stored under name.
func (d *Document) Get(name string) (layer.Layer, bool) {
	l, ok := d.layers[name]
	return l, ok
}

// Names returns the layer names in insertion order. The returned slice
// is a copy.
func (d *Document) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Len returns the number of layers.
func (d *Document) Len() int {
	return len(d.names)
}

// Encode renders the document as an ordered Object of encoded layer
// values, the structural inverse of the values AddDoc consumed.
func (d *Document) Encode() layer.Object {
	obj := make(layer.Object, 0, len(d.names))
	for _, name := range d.names {
		obj = append(obj, layer.F(name, layer.Encode(d.layers[name])))
	}
	return obj
}
