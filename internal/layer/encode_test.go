package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCharacters(t *testing.T) {
	assert.Equal(t, String("hello"), Encode(Characters("hello")))
}

func TestEncodeL1(t *testing.T) {
	assert.Equal(t, Array{Int(1), Int(2), Int(3)}, Encode(L1{1, 2, 3}))
}

func TestEncodeL2(t *testing.T) {
	got := Encode(L2{{Start: 0, End: 2}, {Start: 3, End: 4}})
	assert.Equal(t, Array{
		Array{Int(0), Int(2)},
		Array{Int(3), Int(4)},
	}, got)
}

func TestEncodeStringBearingVariants(t *testing.T) {
	assert.Equal(t,
		Array{Array{Int(0), String("NN")}},
		Encode(L1S{{Idx: 0, Val: "NN"}}))

	assert.Equal(t,
		Array{Array{Int(0), Int(2), String("PER")}},
		Encode(L2S{{Start: 0, End: 2, Val: "PER"}}))

	assert.Equal(t,
		Array{Array{Int(0), Int(2), Int(1), String("nsubj")}},
		Encode(L3S{{Start: 0, End: 2, Idx: 1, Val: "nsubj"}}))
}

func TestEncodeMeta(t *testing.T) {
	obj := Object{F("author", String("jmccrae")), F("year", Int(2024))}
	assert.Equal(t, Value(obj), Encode(Meta{Val: obj}))

	// Explicit null
	assert.Nil(t, Encode(Meta{}))
}

// decode(encode(v)) == v for every inference-reachable variant.
func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   Layer
	}{
		{"characters", Characters("He said \"hi\"\n")},
		{"empty characters", Characters("")},
		{"l1", L1{0, 3, 7, 12}},
		{"empty l1", L1{}},
		{"l2", L2{{Start: 0, End: 2}, {Start: 2, End: 3}, {Start: 4, End: 7}}},
		{"l3", L3{{Start: 0, End: 2, Idx: 1}, {Start: 2, End: 3, Idx: 0}}},
		{"ls", LS{"DT", "NN", "VBZ"}},
		{"l1 max index", L1{0, 1<<32 - 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(Encode(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}

// Tagged round-trip covers the variants inference cannot reach.
func TestRoundTripTagged(t *testing.T) {
	tests := []struct {
		name string
		in   Layer
	}{
		{"l1s", L1S{{Idx: 0, Val: "NN"}, {Idx: 1, Val: "VBZ"}}},
		{"l2s", L2S{{Start: 0, End: 2, Val: "PER"}}},
		{"l3s", L3S{{Start: 0, End: 2, Idx: 1, Val: "nsubj"}}},
		{"meta", Meta{Val: Object{F("k", Array{Int(1), Bool(true)})}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeKind(KindOf(tt.in), Encode(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindCharacters, KindOf(Characters("x")))
	assert.Equal(t, KindL1, KindOf(L1{}))
	assert.Equal(t, KindL2, KindOf(L2{}))
	assert.Equal(t, KindL3, KindOf(L3{}))
	assert.Equal(t, KindLS, KindOf(LS{}))
	assert.Equal(t, KindL1S, KindOf(L1S{}))
	assert.Equal(t, KindL2S, KindOf(L2S{}))
	assert.Equal(t, KindL3S, KindOf(L3S{}))
	assert.Equal(t, KindMeta, KindOf(Meta{}))
}
