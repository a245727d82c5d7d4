package render

import (
	"bytes"
	"image/png"

	"inkpad/internal/draw"
)

// Snapshot renders the given document state and returns it as an
// encoded PNG buffer, ready for an export sink.
func Snapshot(w, h int, background draw.Color, strokes []draw.Stroke, active *ActiveStroke) ([]byte, error) {
	img := Render(w, h, background, strokes, active)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
