package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"inkpad/internal/draw"
)

// ErrDeserialization reports persisted bytes that do not match the
// collection schema. The collection is never partially loaded: the
// caller gets either the full decoded list or this error.
var ErrDeserialization = errors.New("store: malformed draft collection")

// Wire schema of the persisted collection. Field names are fixed for
// compatibility with existing data files; colors are packed 32-bit ARGB
// integers on the wire only.
type draftJSON struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Strokes      []strokeJSON `json:"strokes"`
	BgColor      uint32       `json:"bgColor"`
	LastModified string       `json:"lastModified"`
}

type strokeJSON struct {
	Points  []pointJSON `json:"points"`
	Color   uint32      `json:"color"`
	Size    float64     `json:"size"`
	Opacity float64     `json:"opacity"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func encodeCollection(drafts []draw.Draft) ([]byte, error) {
	out := make([]draftJSON, len(drafts))
	for i, d := range drafts {
		strokes := make([]strokeJSON, len(d.Strokes))
		for j, s := range d.Strokes {
			pts := make([]pointJSON, len(s.Points))
			for k, p := range s.Points {
				pts[k] = pointJSON{X: p.X, Y: p.Y}
			}
			strokes[j] = strokeJSON{
				Points:  pts,
				Color:   s.Color.PackARGB(),
				Size:    s.Width,
				Opacity: s.Opacity,
			}
		}
		out[i] = draftJSON{
			ID:           d.ID,
			Name:         d.Name,
			Strokes:      strokes,
			BgColor:      d.Background.PackARGB(),
			LastModified: d.LastModified,
		}
	}
	return json.Marshal(out)
}

func decodeCollection(data []byte) ([]draw.Draft, error) {
	if len(data) == 0 {
		return []draw.Draft{}, nil
	}
	var in []draftJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	drafts := make([]draw.Draft, len(in))
	for i, d := range in {
		strokes := make([]draw.Stroke, len(d.Strokes))
		for j, s := range d.Strokes {
			pts := make([]draw.Point, len(s.Points))
			for k, p := range s.Points {
				pts[k] = draw.Point{X: p.X, Y: p.Y}
			}
			strokes[j] = draw.Stroke{
				Points:  pts,
				Color:   draw.UnpackARGB(s.Color),
				Width:   s.Size,
				Opacity: s.Opacity,
			}
		}
		drafts[i] = draw.Draft{
			ID:           d.ID,
			Name:         d.Name,
			Strokes:      strokes,
			Background:   draw.UnpackARGB(d.BgColor),
			LastModified: d.LastModified,
		}
	}
	return drafts, nil
}
