package corpus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teanganlp/teanga-go/internal/layer"
)

func newTestCorpus(t *testing.T) *Corpus {
	t.Helper()

	c := NewInMemory()
	ctx := context.Background()
	require.NoError(t, c.AddLayerMeta(ctx, "text", "characters", "", ""))
	require.NoError(t, c.AddLayerMeta(ctx, "tokens", "span", "text", ""))
	require.NoError(t, c.AddLayerMeta(ctx, "pos", "seq", "tokens", `["NN","VBZ","DT"]`))
	return c
}

func TestAddLayerMetaValidates(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate name", func(t *testing.T) {
		c := newTestCorpus(t)
		err := c.AddLayerMeta(ctx, "text", "characters", "", "")
		require.Error(t, err)
		assert.True(t, IsDuplicateLayer(err))
	})

	t.Run("invalid layer type", func(t *testing.T) {
		c := newTestCorpus(t)
		err := c.AddLayerMeta(ctx, "para", "paragraph", "text", "")
		require.Error(t, err)
		assert.True(t, layer.IsInvalidDescriptor(err))
	})

	t.Run("missing base", func(t *testing.T) {
		c := newTestCorpus(t)
		err := c.AddLayerMeta(ctx, "sentences", "div", "", "")
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
		var ce *CorpusError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrCodeMissingBase, ce.Code)
	})

	t.Run("dangling base", func(t *testing.T) {
		c := newTestCorpus(t)
		err := c.AddLayerMeta(ctx, "sentences", "div", "nope", "")
		require.Error(t, err)
		var ce *CorpusError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrCodeUnknownBase, ce.Code)
	})

	t.Run("self base", func(t *testing.T) {
		c := newTestCorpus(t)
		err := c.AddLayerMeta(ctx, "loops", "span", "loops", "")
		require.Error(t, err)
		var ce *CorpusError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrCodeCyclicBase, ce.Code)
	})

	t.Run("characters with base", func(t *testing.T) {
		c := newTestCorpus(t)
		err := c.AddLayerMeta(ctx, "alt", "characters", "text", "")
		require.Error(t, err)
		var ce *CorpusError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, ErrCodeUnexpectedBase, ce.Code)
	})

	t.Run("malformed enum literal", func(t *testing.T) {
		c := newTestCorpus(t)
		err := c.AddLayerMeta(ctx, "ner", "span", "tokens", `["PER","LOC"`)
		require.Error(t, err)
		assert.True(t, layer.IsInvalidDescriptor(err))
	})
}

func TestAddDocAndGetBack(t *testing.T) {
	c := newTestCorpus(t)
	ctx := context.Background()

	id, err := c.AddDoc(ctx, map[string]layer.Value{
		"text":   layer.String("This works"),
		"tokens": layer.Array{layer.Array{layer.Int(0), layer.Int(4)}, layer.Array{layer.Int(5), layer.Int(10)}},
		"pos":    layer.Array{layer.String("DT"), layer.String("VBZ")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := c.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"pos", "text", "tokens"}, doc.Names())

	text, ok := doc.Get("text")
	require.True(t, ok)
	assert.Equal(t, layer.Characters("This works"), text)

	tokens, ok := doc.Get("tokens")
	require.True(t, ok)
	assert.Equal(t, layer.L2{{Start: 0, End: 4}, {Start: 5, End: 10}}, tokens)

	encoded, err := c.GetDocByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"pos", "text", "tokens"}, encoded.Keys())
	textVal, _ := encoded.Get("text")
	assert.Equal(t, layer.String("This works"), textVal)
}

func TestAddDocRejectsUnknownLayer(t *testing.T) {
	c := newTestCorpus(t)

	_, err := c.AddDoc(context.Background(), map[string]layer.Value{
		"text":   layer.String("hi"),
		"lemmas": layer.Array{layer.String("hi")},
	})
	require.Error(t, err)
	var ce *CorpusError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeUnknownLayer, ce.Code)
}

func TestAddDocPropagatesDecodeErrors(t *testing.T) {
	c := newTestCorpus(t)

	_, err := c.AddDoc(context.Background(), map[string]layer.Value{
		"text":   layer.String("hi"),
		"tokens": layer.Array{layer.Array{layer.Int(0), layer.Int(2)}, layer.Array{layer.Int(0), layer.Int(1), layer.Int(2)}},
	})
	require.Error(t, err)
	assert.True(t, layer.IsArityMismatch(err))
	// The wrapping names the offending layer
	assert.Contains(t, err.Error(), `layer "tokens"`)
}

func TestDocIDsStable(t *testing.T) {
	c := newTestCorpus(t)
	ctx := context.Background()

	id1, err := c.AddDoc(ctx, map[string]layer.Value{"text": layer.String("first")})
	require.NoError(t, err)
	id2, err := c.AddDoc(ctx, map[string]layer.Value{"text": layer.String("second")})
	require.NoError(t, err)

	ids, err := c.DocIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id1, id2}, ids)

	// Content-derived ids are deterministic for the same text
	other := newTestCorpus(t)
	again, err := other.AddDoc(ctx, map[string]layer.Value{"text": layer.String("first")})
	require.NoError(t, err)
	assert.Equal(t, id1, again)
}

func TestDocIDCollisionExtendsPrefix(t *testing.T) {
	c := newTestCorpus(t)
	ctx := context.Background()

	id1, err := c.AddDoc(ctx, map[string]layer.Value{"text": layer.String("same")})
	require.NoError(t, err)
	id2, err := c.AddDoc(ctx, map[string]layer.Value{"text": layer.String("same")})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, id1, id2[:len(id1)])
}

func TestDocWithoutTextGetsUUID(t *testing.T) {
	c := NewInMemory()
	ctx := context.Background()
	require.NoError(t, c.AddLayerMeta(ctx, "note", "characters", "", ""))

	id, err := c.AddDoc(ctx, map[string]layer.Value{"note": layer.Array{}})
	require.NoError(t, err)
	assert.Len(t, id, 36) // UUID format
}

func TestAddDocWithID(t *testing.T) {
	c := newTestCorpus(t)
	ctx := context.Background()

	require.NoError(t, c.AddDocWithID(ctx, "doc1", map[string]layer.Value{
		"text": layer.String("pinned id"),
	}))

	ids, err := c.DocIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc1"}, ids)
}

func TestGetDocumentUnknownID(t *testing.T) {
	c := newTestCorpus(t)

	_, err := c.GetDocument(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNoSuchDocument(err))
}

func TestEncodeMeta(t *testing.T) {
	c := newTestCorpus(t)

	meta, err := c.EncodeMeta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "tokens", "pos"}, meta.Keys())

	posVal, ok := meta.Get("pos")
	require.True(t, ok)
	pos, ok := posVal.(layer.Object)
	require.True(t, ok)
	data, _ := pos.Get("data")
	assert.Equal(t, layer.Array{layer.String("NN"), layer.String("VBZ"), layer.String("DT")}, data)
}

func TestInfo(t *testing.T) {
	c := newTestCorpus(t)
	ctx := context.Background()

	id, err := c.AddDoc(ctx, map[string]layer.Value{"text": layer.String("hi")})
	require.NoError(t, err)

	info, err := c.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, info.LayerCount)
	assert.Equal(t, 1, info.DocumentCount)
	assert.Equal(t, []string{"text", "tokens", "pos"}, info.LayerNames)
	assert.Equal(t, []string{id}, info.DocumentIDs)
}

func TestToText(t *testing.T) {
	c := newTestCorpus(t)
	ctx := context.Background()

	require.NoError(t, c.AddDocWithID(ctx, "Kjco", map[string]layer.Value{
		"text":   layer.String("This works"),
		"tokens": layer.Array{layer.Array{layer.Int(0), layer.Int(4)}, layer.Array{layer.Int(5), layer.Int(10)}},
	}))

	text, err := c.ToText(ctx)
	require.NoError(t, err)
	assert.Equal(t, `_meta:
  text:
    type: characters
  tokens:
    type: span
    base: text
  pos:
    type: seq
    base: tokens
    data: ["NN","VBZ","DT"]
Kjco:
  text: "This works"
  tokens: [[0,4],[5,10]]
`, text)
}
