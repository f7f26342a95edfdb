package shape

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/geom"
)

// FillAlpha is the fixed opacity of every polygon fill.
const FillAlpha uint8 = 230

// Polygon is a shape placed on a width x height canvas with a fill color.
type Polygon struct {
	Shape  Shape
	Fill   color.NRGBA
	Width  float64
	Height float64
}

// NewPolygon places s on a width x height canvas and clamps its points.
// The polygon takes ownership of s.
func NewPolygon(s Shape, width, height float64) *Polygon {
	p := &Polygon{Shape: s, Width: width, Height: height, Fill: color.NRGBA{A: FillAlpha}}
	p.Clamp()
	return p
}

// Kind returns the kind of the underlying shape.
func (p *Polygon) Kind() Kind { return p.Shape.Kind() }

// Points returns the polygon's points in drawing order.
func (p *Polygon) Points() []geom.Point { return p.Shape.Points() }

// Bounds returns the bounding box of the polygon.
func (p *Polygon) Bounds() (lo, hi geom.Point) {
	return geom.Bounds(p.Shape.Points())
}

// Window returns the canvas pixels covered by the polygon's bounding box.
func (p *Polygon) Window() image.Rectangle {
	lo, hi := p.Bounds()
	return geom.Window(lo, hi, int(p.Width), int(p.Height))
}

// SetFill sets the fill color, keeping the fixed opacity.
func (p *Polygon) SetFill(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = FillAlpha
	p.Fill = n
}

// Rotate turns the polygon by degrees about its pivot, then clamps.
func (p *Polygon) Rotate(degrees float64) {
	geom.Rotate(p.Shape.Points(), p.Shape.Pivot(), degrees)
	p.Clamp()
}

// Scale scales the polygon if its shape supports it and reports whether it
// did. Scaling is followed by clamping.
func (p *Polygon) Scale(sx, sy float64) bool {
	s, ok := p.Shape.(Scaler)
	if !ok {
		return false
	}
	s.Scale(sx, sy)
	p.Clamp()
	return true
}

// Clamp pulls every point into the canvas.
func (p *Polygon) Clamp() {
	geom.Clamp(p.Shape.Points(), p.Width, p.Height)
}

// Clone returns a deep copy.
func (p *Polygon) Clone() *Polygon {
	c := *p
	c.Shape = p.Shape.Clone()
	return &c
}

// Validate checks that the polygon can be rasterized: the point count must
// match its kind and every coordinate must be finite.
func (p *Polygon) Validate() error {
	if p == nil || p.Shape == nil {
		return errors.New(errors.ErrCodeRender, "polygon has no shape")
	}
	pts := p.Shape.Points()
	if want := p.Kind().NumPoints(); len(pts) != want {
		return errors.New(errors.ErrCodeRender, "%s has %d points, want %d", p.Kind(), len(pts), want)
	}
	for i, pt := range pts {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			return errors.New(errors.ErrCodeRender, "%s point %d is not finite: %v", p.Kind(), i, pt)
		}
	}
	return nil
}

func (p *Polygon) String() string {
	return fmt.Sprintf("%s%v fill=#%02x%02x%02x", p.Kind(), p.Shape.Points(), p.Fill.R, p.Fill.G, p.Fill.B)
}
