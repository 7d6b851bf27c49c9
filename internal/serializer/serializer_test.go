package serializer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teanganlp/teanga-go/internal/layer"
)

// fixedView is a literal View for tests.
type fixedView struct {
	meta []MetaEntry
	docs []DocEntry
}

func (v fixedView) Meta() []MetaEntry { return v.meta }
func (v fixedView) Docs() []DocEntry  { return v.docs }

func sampleView(t *testing.T) fixedView {
	t.Helper()

	textDesc, err := layer.NewLayerDesc("characters", "", "")
	require.NoError(t, err)
	tokensDesc, err := layer.NewLayerDesc("span", "text", "")
	require.NoError(t, err)
	posDesc, err := layer.NewLayerDesc("seq", "tokens", `["NN","VBZ"]`)
	require.NoError(t, err)

	return fixedView{
		meta: []MetaEntry{
			{Name: "text", Desc: textDesc},
			{Name: "tokens", Desc: tokensDesc},
			{Name: "pos", Desc: posDesc},
		},
		docs: []DocEntry{
			{
				ID: "Kjco",
				Layers: []LayerEntry{
					{Name: "text", Layer: layer.Characters("This works")},
					{Name: "tokens", Layer: layer.L2{{Start: 0, End: 4}, {Start: 5, End: 10}}},
					{Name: "pos", Layer: layer.LS{"NN", "VBZ"}},
				},
			},
		},
	}
}

func TestStringLayout(t *testing.T) {
	got := String(sampleView(t))

	want := `_meta:
  text:
    type: characters
  tokens:
    type: span
    base: text
  pos:
    type: seq
    base: tokens
    data: ["NN","VBZ"]
Kjco:
  text: "This works"
  tokens: [[0,4],[5,10]]
  pos: ["NN","VBZ"]
`
	assert.Equal(t, want, got)
}

func TestWriteMatchesString(t *testing.T) {
	view := sampleView(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, view))
	assert.Equal(t, String(view), buf.String())
}

func TestCharactersEscaping(t *testing.T) {
	view := fixedView{
		docs: []DocEntry{{
			ID: "d1",
			Layers: []LayerEntry{
				{Name: "text", Layer: layer.Characters("He said \"hi\"\nback\\slash")},
			},
		}},
	}

	got := String(view)
	assert.Contains(t, got, `  text: "He said \"hi\"\nback\\slash"`)
	// The raw newline must not survive into the quoted scalar
	assert.NotContains(t, got, "\"hi\"\nback")
}

func TestEmptyCorpus(t *testing.T) {
	assert.Equal(t, "_meta:\n", String(fixedView{}))
}

func TestDataKindsRenderBare(t *testing.T) {
	strDesc, err := layer.NewLayerDesc("seq", "tokens", "string")
	require.NoError(t, err)
	linkDesc, err := layer.NewLayerDesc("element", "tokens", "link")
	require.NoError(t, err)

	got := String(fixedView{meta: []MetaEntry{
		{Name: "lemma", Desc: strDesc},
		{Name: "dep", Desc: linkDesc},
	}})

	assert.Contains(t, got, "    data: string\n")
	assert.Contains(t, got, "    data: link\n")
}

// The rendered text must be recoverable by a conforming YAML parser
// with the layer values intact.
func TestOutputIsParseableYAML(t *testing.T) {
	view := sampleView(t)
	view.docs[0].Layers[0].Layer = layer.Characters("He said \"hi\"\n")

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(String(view)), &doc))

	meta, ok := doc["_meta"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, meta, 3)

	body, ok := doc["Kjco"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "He said \"hi\"\n", body["text"])
	assert.Equal(t, []any{[]any{0, 4}, []any{5, 10}}, body["tokens"])
	assert.Equal(t, []any{"NN", "VBZ"}, body["pos"])
}
