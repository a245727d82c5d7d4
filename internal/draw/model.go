package draw

import "image/color"

// Point is one sampled pointer location in document coordinates.
// Coordinate mapping from screen space happens before a point reaches
// this package.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Color is an 8-bit-per-channel RGBA color. It is kept unpacked
// throughout the engine; packing to a 32-bit ARGB integer happens only
// at the serialization boundary (see internal/store).
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// NRGBA converts to the stdlib color type used by the rasterizer.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// PackARGB packs the channels into a 32-bit ARGB integer, alpha in the
// high byte.
func (c Color) PackARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// UnpackARGB is the inverse of PackARGB.
func UnpackARGB(v uint32) Color {
	return Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Brush is the live drawing style of a session. The renderer reads the
// brush directly for the in-progress stroke, so changing it mid-stroke
// changes how the preview is painted.
type Brush struct {
	Color   Color   `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// Validate rejects a brush that could not produce a drawable stroke.
func (b Brush) Validate() error {
	if b.Width <= 0 {
		return ErrInvalidBrush
	}
	if b.Opacity < 0 || b.Opacity > 1 {
		return ErrInvalidBrush
	}
	return nil
}

// Stroke is one committed continuous line: an ordered point sequence
// plus the brush style it was committed with. Point order is sample
// order and paint order. A committed stroke always has at least one
// point and is never mutated afterwards.
type Stroke struct {
	Points  []Point `json:"points"`
	Color   Color   `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// Rect is an axis-aligned bounding box in document coordinates.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union grows r to cover o.
func (r Rect) Union(o Rect) Rect {
	if o.MinX < r.MinX {
		r.MinX = o.MinX
	}
	if o.MinY < r.MinY {
		r.MinY = o.MinY
	}
	if o.MaxX > r.MaxX {
		r.MaxX = o.MaxX
	}
	if o.MaxY > r.MaxY {
		r.MaxY = o.MaxY
	}
	return r
}

// Bounds returns the bounding box of the stroke's points, grown by half
// the stroke width so the painted extent is covered.
func (s Stroke) Bounds() Rect {
	if len(s.Points) == 0 {
		return Rect{}
	}
	b := Rect{
		MinX: s.Points[0].X, MinY: s.Points[0].Y,
		MaxX: s.Points[0].X, MaxY: s.Points[0].Y,
	}
	for _, p := range s.Points[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	pad := s.Width / 2
	b.MinX -= pad
	b.MinY -= pad
	b.MaxX += pad
	b.MaxY += pad
	return b
}

// Draft is a named, persisted snapshot of a document. ID is assigned on
// first save and never changes. Strokes are in commit order, which is
// also paint order (earliest underneath). LastModified is an RFC 3339
// timestamp string.
type Draft struct {
	ID           string
	Name         string
	Strokes      []Stroke
	Background   Color
	LastModified string
}

// Bounds returns the union of all stroke bounds.
func (d Draft) Bounds() Rect {
	if len(d.Strokes) == 0 {
		return Rect{}
	}
	b := d.Strokes[0].Bounds()
	for _, s := range d.Strokes[1:] {
		b = b.Union(s.Bounds())
	}
	return b
}
