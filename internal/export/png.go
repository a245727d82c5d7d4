package export

import (
	"io"

	"inkpad/internal/draw"
	"inkpad/internal/render"
)

// WritePNG rasterizes the draft at the given pixel size and encodes it
// as PNG.
func WritePNG(w io.Writer, d draw.Draft, width, height int) error {
	buf, err := render.Snapshot(width, height, d.Background, d.Strokes, nil)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}
