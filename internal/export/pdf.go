// Package export turns a draft into shareable artifacts: a vector PDF
// page or an encoded PNG. It only produces bytes; where they go
// (gallery, filesystem, share sheet) is the caller's business.
package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"inkpad/internal/draw"
)

const pdfMargin = 10 // mm

// WritePDF draws the draft onto a single A4 page, scaled to fit inside
// the page margins while preserving aspect ratio. Strokes keep their
// own color, width and opacity; single-point strokes become filled
// dots.
func WritePDF(w io.Writer, d draw.Draft) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()
	pageW, pageH := p.GetPageSize()

	bg := d.Background
	p.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	p.Rect(0, 0, pageW, pageH, "F")

	scale, offX, offY := fitPage(d.Bounds(), pageW, pageH)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, st := range d.Strokes {
		c := st.Color
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.SetAlpha(st.Opacity*float64(c.A)/255, "Normal")
		p.SetLineWidth(st.Width * scale)

		if len(st.Points) == 1 {
			pt := st.Points[0]
			p.Circle(offX+pt.X*scale, offY+pt.Y*scale, st.Width*scale/2, "F")
			continue
		}
		for i := 1; i < len(st.Points); i++ {
			a, b := st.Points[i-1], st.Points[i]
			p.Line(
				offX+a.X*scale, offY+a.Y*scale,
				offX+b.X*scale, offY+b.Y*scale,
			)
		}
	}
	return p.Output(w)
}

// fitPage maps document bounds onto the printable page area.
func fitPage(b draw.Rect, pageW, pageH float64) (scale, offX, offY float64) {
	availW := pageW - 2*pdfMargin
	availH := pageH - 2*pdfMargin
	scale = 1.0
	if b.Width() > 0 && availW/b.Width() < scale {
		scale = availW / b.Width()
	}
	if b.Height() > 0 && availH/b.Height() < scale {
		scale = availH / b.Height()
	}
	offX = pdfMargin - b.MinX*scale
	offY = pdfMargin - b.MinY*scale
	return scale, offX, offY
}
