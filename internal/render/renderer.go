// Package render rasterizes a stroke list into pixels by wrapping
// rasterx. Rendering is a pure function of its inputs: every call
// repaints the full surface, background first, committed strokes in
// commit order, the in-progress stroke last.
package render

import (
	"image"
	stddraw "image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"inkpad/internal/draw"
)

// ActiveStroke is the in-progress point buffer plus the session's live
// brush. The brush is read at render time, not snapshotted at stroke
// begin, so a mid-stroke style change shows up immediately.
type ActiveStroke struct {
	Points []draw.Point
	Brush  draw.Brush
}

// Render paints background, committed strokes and the optional active
// stroke onto a fresh w x h RGBA image. Strokes are painted in list
// order with round caps and round joins; the active stroke is always on
// top.
func Render(w, h int, background draw.Color, strokes []draw.Stroke, active *ActiveStroke) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	stddraw.Draw(img, img.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, stddraw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	filler := rasterx.NewFiller(w, h, scanner)

	for _, st := range strokes {
		paintStroke(scanner, dasher, filler, st.Points, st.Color, st.Width, st.Opacity)
	}
	if active != nil && len(active.Points) > 0 {
		b := active.Brush
		paintStroke(scanner, dasher, filler, active.Points, b.Color, b.Width, b.Opacity)
	}
	return img
}

func paintStroke(scanner rasterx.Scanner, dasher *rasterx.Dasher, filler *rasterx.Filler, pts []draw.Point, c draw.Color, width, opacity float64) {
	if len(pts) == 0 || width <= 0 {
		return
	}
	scanner.SetColor(rasterx.ApplyOpacity(c.NRGBA(), opacity))

	// A single sample has no segment to stroke; round caps make it a
	// filled dot of the brush diameter.
	if len(pts) == 1 {
		rasterx.AddCircle(pts[0].X, pts[0].Y, width/2, filler)
		filler.Draw()
		filler.Clear()
		return
	}

	dasher.SetStroke(toFixed(width), fixed.Int26_6(4<<6),
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	dasher.Start(toFixedPoint(pts[0]))
	for _, p := range pts[1:] {
		dasher.Line(toFixedPoint(p))
	}
	dasher.Stop(false)
	dasher.Draw()
	dasher.Clear()
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func toFixedPoint(p draw.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}
