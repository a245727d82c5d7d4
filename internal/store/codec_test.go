package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/draw"
)

func sampleDraft() draw.Draft {
	return draw.Draft{
		ID:   "d1",
		Name: "Drawing Jan 2, 2026 15:04",
		Strokes: []draw.Stroke{
			{
				Points:  []draw.Point{{X: 0, Y: 0}, {X: 1.5, Y: 2.25}, {X: -3, Y: 4}},
				Color:   draw.Color{R: 255, G: 0, B: 0, A: 255},
				Width:   3.5,
				Opacity: 0.75,
			},
			{
				Points:  []draw.Point{{X: 10, Y: 10}},
				Color:   draw.Color{R: 0, G: 0, B: 255, A: 128},
				Width:   12,
				Opacity: 1,
			},
		},
		Background:   draw.White,
		LastModified: "2026-01-02T15:04:05Z",
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	in := []draw.Draft{sampleDraft(), {
		ID:           "d2",
		Name:         "empty-ish",
		Strokes:      []draw.Stroke{{Points: []draw.Point{{X: 7, Y: 7}}, Color: draw.Black, Width: 1, Opacity: 1}},
		Background:   draw.Color{R: 10, G: 20, B: 30, A: 255},
		LastModified: "2026-02-03T04:05:06Z",
	}}

	data, err := encodeCollection(in)
	require.NoError(t, err)

	out, err := decodeCollection(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWireFieldNames(t *testing.T) {
	data, err := encodeCollection([]draw.Draft{sampleDraft()})
	require.NoError(t, err)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	for _, field := range []string{"id", "name", "strokes", "bgColor", "lastModified"} {
		assert.Contains(t, raw[0], field)
	}

	var strokes []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[0]["strokes"], &strokes))
	require.NotEmpty(t, strokes)
	for _, field := range []string{"points", "color", "size", "opacity"} {
		assert.Contains(t, strokes[0], field)
	}

	// Colors travel as packed 32-bit ARGB integers.
	var packed uint32
	require.NoError(t, json.Unmarshal(strokes[0]["color"], &packed))
	assert.Equal(t, uint32(0xFFFF0000), packed)
	require.NoError(t, json.Unmarshal(raw[0]["bgColor"], &packed))
	assert.Equal(t, uint32(0xFFFFFFFF), packed)
}

func TestDecodeAbsentBlobIsEmpty(t *testing.T) {
	out, err := decodeCollection(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestDecodeMalformed(t *testing.T) {
	for _, data := range []string{"{", "not json", `{"id":"x"}`, "42"} {
		_, err := decodeCollection([]byte(data))
		assert.ErrorIs(t, err, ErrDeserialization, "input %q", data)
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	out, err := decodeCollection([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, out)
}
