package shape

import (
	"math/rand/v2"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/geom"
)

// Generator proposes a new shape inside a width x height canvas.
type Generator interface {
	Kind() Kind
	Generate(rng *rand.Rand, width, height float64) Shape
}

// RectangleGenerator emits fixed-size axis-aligned rectangles of
// width/Divisor x height/Divisor at a uniformly random anchor.
type RectangleGenerator struct {
	// Divisor sets the base size. Zero means 8.
	Divisor float64
}

func (g RectangleGenerator) Kind() Kind { return KindRectangle }

// Generate picks the anchor in [0, width-bw) x [0, height-bh).
func (g RectangleGenerator) Generate(rng *rand.Rand, width, height float64) Shape {
	div := g.Divisor
	if div <= 0 {
		div = 8
	}
	bw, bh := width/div, height/div
	x := rng.Float64() * (width - bw)
	y := rng.Float64() * (height - bh)
	return NewRectangle(x, y, bw, bh)
}

// TriangleGenerator splits the canvas into Tiles x Tiles cells, picks one
// cell uniformly and samples three points uniformly inside it. Keeping the
// vertices in one cell keeps triangles compact.
type TriangleGenerator struct {
	// Tiles is the grid size per axis. Zero means 4.
	Tiles int
}

func (g TriangleGenerator) Kind() Kind { return KindTriangle }

func (g TriangleGenerator) Generate(rng *rand.Rand, width, height float64) Shape {
	n := g.Tiles
	if n <= 0 {
		n = 4
	}
	tw, th := width/float64(n), height/float64(n)
	tx, ty := float64(rng.IntN(n)), float64(rng.IntN(n))

	point := func() geom.Point {
		return geom.Pt(tw*(tx+rng.Float64()), th*(ty+rng.Float64()))
	}
	a := point()
	b := point()
	c := point()
	return NewTriangle(a, b, c)
}

// NewGenerator returns the default generator for a kind.
func NewGenerator(k Kind) (Generator, error) {
	switch k {
	case KindRectangle:
		return RectangleGenerator{}, nil
	case KindTriangle:
		return TriangleGenerator{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidShape, "no generator for shape kind %d", int(k))
}
