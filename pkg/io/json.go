package io

import (
	"encoding/json"
	"image/color"
	"io"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/geom"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

// Result is a finished approximation: the canvas it was drawn for and the
// accepted polygons in drawing order.
type Result struct {
	Width      int
	Height     int
	Background color.NRGBA
	Polygons   []*shape.Polygon
}

type result struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Background rgba      `json:"background"`
	Polygons   []polygon `json:"polygons"`
}

type polygon struct {
	Kind   shape.Kind   `json:"kind"`
	Points [][2]float64 `json:"points"`
	Fill   rgba         `json:"fill"`
}

type rgba [4]uint8

// WritePolygons encodes r as JSON to w.
func WritePolygons(r *Result, w io.Writer) error {
	out := result{
		Width:      r.Width,
		Height:     r.Height,
		Background: toRGBA(r.Background),
		Polygons:   make([]polygon, len(r.Polygons)),
	}
	for i, p := range r.Polygons {
		pts := p.Points()
		pp := polygon{Kind: p.Kind(), Points: make([][2]float64, len(pts)), Fill: toRGBA(p.Fill)}
		for j, pt := range pts {
			pp.Points[j] = [2]float64{pt.X, pt.Y}
		}
		out.Polygons[i] = pp
	}

	if err := json.NewEncoder(w).Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode polygons")
	}
	return nil
}

// ReadPolygons decodes a JSON document written by [WritePolygons].
// Malformed input, and points outside [0,width) x [0,height), are a
// DECODE_ERROR.
func ReadPolygons(r io.Reader) (*Result, error) {
	var data result
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode polygons")
	}
	if data.Width < 1 || data.Height < 1 {
		return nil, errors.New(errors.ErrCodeDecode, "invalid canvas %dx%d", data.Width, data.Height)
	}

	out := &Result{
		Width:      data.Width,
		Height:     data.Height,
		Background: fromRGBA(data.Background),
		Polygons:   make([]*shape.Polygon, len(data.Polygons)),
	}
	for i, pp := range data.Polygons {
		pts := make([]geom.Point, len(pp.Points))
		for j, xy := range pp.Points {
			pts[j] = geom.Pt(xy[0], xy[1])
		}
		s, err := shape.FromPoints(pp.Kind, pts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "polygon %d", i)
		}
		out.Polygons[i] = &shape.Polygon{
			Shape:  s,
			Fill:   fromRGBA(pp.Fill),
			Width:  float64(data.Width),
			Height: float64(data.Height),
		}
		if err := out.Polygons[i].Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecode, err, "polygon %d", i)
		}
		for _, pt := range pts {
			if pt.X < 0 || pt.Y < 0 || pt.X >= float64(data.Width) || pt.Y >= float64(data.Height) {
				return nil, errors.New(errors.ErrCodeDecode, "polygon %d: point %v outside %dx%d canvas", i, pt, data.Width, data.Height)
			}
		}
	}
	return out, nil
}

func toRGBA(c color.NRGBA) rgba   { return rgba{c.R, c.G, c.B, c.A} }
func fromRGBA(c rgba) color.NRGBA { return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]} }
