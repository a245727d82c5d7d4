package export

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/draw"
)

func testDraft() draw.Draft {
	return draw.Draft{
		ID:   "d1",
		Name: "test",
		Strokes: []draw.Stroke{
			{
				Points:  []draw.Point{{X: 10, Y: 10}, {X: 200, Y: 150}, {X: 50, Y: 300}},
				Color:   draw.Color{R: 200, G: 30, B: 30, A: 255},
				Width:   4,
				Opacity: 0.8,
			},
			{
				Points:  []draw.Point{{X: 150, Y: 40}},
				Color:   draw.Black,
				Width:   10,
				Opacity: 1,
			},
		},
		Background: draw.White,
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, testDraft()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output is a PDF")
	assert.Greater(t, buf.Len(), 500)
}

func TestWritePDFEmptyDraft(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, draw.Draft{Background: draw.White}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, testDraft(), 320, 240))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}
