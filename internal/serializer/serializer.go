// Package serializer renders a corpus view into the Teanga text
// format: a line-oriented, YAML-compatible layout with a _meta header
// block followed by one block per document.
//
// The output is hand-rolled string concatenation rather than a YAML
// library so that the exact line layout stays under this package's
// control. The serializer performs no schema validation and never
// fails; it trusts descriptors and layers as given.
package serializer

import (
	"io"
	"strings"

	"github.com/teanganlp/teanga-go/internal/layer"
)

// MetaEntry is one named layer descriptor in the corpus schema.
type MetaEntry struct {
	Name string
	Desc layer.LayerDesc
}

// LayerEntry is one named layer of a document.
type LayerEntry struct {
	Name  string
	Layer layer.Layer
}

// DocEntry is one document with its ordered layers.
type DocEntry struct {
	ID     string
	Layers []LayerEntry
}

// View is the read surface the serializer consumes. Both slices define
// the emission order: layers render in Meta order within the header and
// in each document's own order within its block; documents render in
// Docs order.
type View interface {
	Meta() []MetaEntry
	Docs() []DocEntry
}

// metaKey is the reserved header token for the schema block.
const metaKey = "_meta"

// String renders the view to a string.
func String(v View) string {
	var sb strings.Builder
	writeView(&sb, v)
	return sb.String()
}

// Write renders the view to w. The only possible errors are I/O errors
// from w itself.
func Write(w io.Writer, v View) error {
	var sb strings.Builder
	writeView(&sb, v)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeView(sb *strings.Builder, v View) {
	sb.WriteString(metaKey)
	sb.WriteString(":\n")
	for _, entry := range v.Meta() {
		writeMetaEntry(sb, entry)
	}
	for _, doc := range v.Docs() {
		writeDoc(sb, doc)
	}
}

func writeMetaEntry(sb *strings.Builder, entry MetaEntry) {
	sb.WriteString("  ")
	sb.WriteString(entry.Name)
	sb.WriteString(":\n    type: ")
	sb.WriteString(string(entry.Desc.Type))
	sb.WriteByte('\n')
	if entry.Desc.Base != "" {
		sb.WriteString("    base: ")
		sb.WriteString(entry.Desc.Base)
		sb.WriteByte('\n')
	}
	if entry.Desc.Data != nil {
		sb.WriteString("    data: ")
		if entry.Desc.Data.Kind == layer.DataEnum {
			arr := make(layer.Array, len(entry.Desc.Data.Enum))
			for i, v := range entry.Desc.Data.Enum {
				arr[i] = layer.String(v)
			}
			sb.WriteString(compact(arr))
		} else {
			sb.WriteString(string(entry.Desc.Data.Kind))
		}
		sb.WriteByte('\n')
	}
}

func writeDoc(sb *strings.Builder, doc DocEntry) {
	sb.WriteString(doc.ID)
	sb.WriteString(":\n")
	for _, entry := range doc.Layers {
		sb.WriteString("  ")
		sb.WriteString(entry.Name)
		sb.WriteString(": ")
		if chars, ok := entry.Layer.(layer.Characters); ok {
			writeQuoted(sb, string(chars))
		} else {
			sb.WriteString(compact(layer.Encode(entry.Layer)))
		}
		sb.WriteByte('\n')
	}
}

// writeQuoted emits a character layer as a double-quoted string with
// backslashes, quotes and line breaks escaped so a conforming parser
// recovers the text without ambiguity.
func writeQuoted(sb *strings.Builder, text string) {
	sb.WriteByte('"')
	for _, r := range text {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}

// compact renders a value as inline JSON, falling back to the null
// literal if the value cannot be rendered (which Encode's totality
// rules out for layers produced by this module).
func compact(v layer.Value) string {
	if data, err := layer.MarshalValue(v); err == nil {
		return string(data)
	}
	return "null"
}
