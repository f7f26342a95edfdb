package shape

import (
	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/geom"
)

// Shape is a point set of a known kind.
//
// Points returns the shape's own storage; transformations write through it.
type Shape interface {
	Kind() Kind
	Points() []geom.Point
	// Pivot is the fixed point used for rotation.
	Pivot() geom.Point
	Clone() Shape
}

// Scaler is implemented by shapes that support anisotropic scaling.
type Scaler interface {
	Shape
	Scale(sx, sy float64)
}

// Rectangle is a four-point shape laid out clockwise from the anchor corner:
//
//	p0--p1
//	|    |
//	p3--p2
type Rectangle struct {
	pts [4]geom.Point
}

// NewRectangle returns the axis-aligned rectangle with top-left corner (x, y).
func NewRectangle(x, y, w, h float64) *Rectangle {
	return &Rectangle{pts: [4]geom.Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}}
}

func (r *Rectangle) Kind() Kind            { return KindRectangle }
func (r *Rectangle) Points() []geom.Point { return r.pts[:] }

// Pivot returns the center of the rectangle's bounding box.
func (r *Rectangle) Pivot() geom.Point {
	lo, hi := geom.Bounds(r.pts[:])
	return geom.Pt((lo.X+hi.X)/2, (lo.Y+hi.Y)/2)
}

func (r *Rectangle) Clone() Shape {
	c := *r
	return &c
}

// Scale stretches the rectangle away from its anchor corner p0: the width
// (p0->p1) is multiplied by sx and the height (p0->p3) by sy.
func (r *Rectangle) Scale(sx, sy float64) {
	p := &r.pts
	w := p[1].X - p[0].X
	h := p[3].Y - p[0].Y
	right := p[0].X + w*sx
	bottom := p[0].Y + h*sy
	p[1].X = right
	p[2].X = right
	p[2].Y = bottom
	p[3].Y = bottom
}

// Triangle is a three-point shape.
type Triangle struct {
	pts [3]geom.Point
}

// NewTriangle returns the triangle a, b, c.
func NewTriangle(a, b, c geom.Point) *Triangle {
	return &Triangle{pts: [3]geom.Point{a, b, c}}
}

func (t *Triangle) Kind() Kind            { return KindTriangle }
func (t *Triangle) Points() []geom.Point { return t.pts[:] }

// Pivot returns the first vertex. Triangles rotate about a corner, not their
// centroid.
func (t *Triangle) Pivot() geom.Point { return t.pts[0] }

func (t *Triangle) Clone() Shape {
	c := *t
	return &c
}

var (
	_ Scaler = (*Rectangle)(nil)
	_ Shape  = (*Triangle)(nil)
)

// FromPoints rebuilds a shape of kind k from its points, as produced by
// Points. The point count must match the kind.
func FromPoints(k Kind, pts []geom.Point) (Shape, error) {
	if len(pts) != k.NumPoints() {
		return nil, errors.New(errors.ErrCodeInvalidShape, "%s needs %d points, got %d", k, k.NumPoints(), len(pts))
	}
	switch k {
	case KindRectangle:
		r := &Rectangle{}
		copy(r.pts[:], pts)
		return r, nil
	case KindTriangle:
		t := &Triangle{}
		copy(t.pts[:], pts)
		return t, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidShape, "unknown shape kind %d", int(k))
}
