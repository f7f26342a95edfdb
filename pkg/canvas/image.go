package canvas

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/fitness"
	"github.com/matzehuels/geoshaper/pkg/render"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

// Image is an approximation of a target: a background plus an ordered list
// of polygons.
type Image struct {
	id         int
	target     *image.RGBA
	background color.NRGBA
	polygons   []*shape.Polygon
	width      int
	height     int
	rasterizer render.Rasterizer
}

// New returns the generation-0 image for target: no polygons, drawn over an
// opaque background.
func New(id int, target *image.RGBA, background color.Color, r render.Rasterizer) *Image {
	bg := color.NRGBAModel.Convert(background).(color.NRGBA)
	bg.A = 255
	b := target.Bounds()
	return &Image{
		id:         id,
		target:     target,
		background: bg,
		width:      b.Dx(),
		height:     b.Dy(),
		rasterizer: r,
	}
}

// ID returns the image's generation or candidate id.
func (img *Image) ID() int { return img.id }

// Width returns the canvas width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the canvas height in pixels.
func (img *Image) Height() int { return img.height }

// Background returns the opaque background color.
func (img *Image) Background() color.NRGBA { return img.background }

// Target returns the shared target raster. Callers must not modify it.
func (img *Image) Target() *image.RGBA { return img.target }

// Len returns the number of polygons.
func (img *Image) Len() int { return len(img.polygons) }

// Polygons returns a copy of the polygon list. The polygons themselves are
// shared.
func (img *Image) Polygons() []*shape.Polygon {
	return append([]*shape.Polygon(nil), img.polygons...)
}

// LastPolygon returns the most recently added polygon, or nil.
func (img *Image) LastPolygon() *shape.Polygon {
	if len(img.polygons) == 0 {
		return nil
	}
	return img.polygons[len(img.polygons)-1]
}

// Accept appends p. It is the only way the accepted image grows.
func (img *Image) Accept(p *shape.Polygon) {
	img.polygons = append(img.polygons, p)
}

// MutationWindow returns the pixel window of the last polygon. An image
// without polygons has no mutation and reports a CONFIG_ERROR.
func (img *Image) MutationWindow() (image.Rectangle, error) {
	last := img.LastPolygon()
	if last == nil {
		return image.Rectangle{}, errors.New(errors.ErrCodeConfig, "image %d has no mutation", img.id)
	}
	return last.Window(), nil
}

// Mutate derives a candidate with a copy of base appended as a new polygon.
// The polygon is filled with the target's average color over its window,
// then scaled (if its shape can scale) and rotated by amounts drawn from
// rng. base and img are left untouched.
func (img *Image) Mutate(base shape.Shape, id int, rng *rand.Rand, opts MutationOptions) (*Image, error) {
	p := shape.NewPolygon(base.Clone(), float64(img.width), float64(img.height))

	fill, err := fitness.AverageColorIn(img.target, p.Window())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "candidate %d fill", id)
	}
	p.SetFill(fill)

	sx := opts.ScaleMin + rng.Float64()*(opts.ScaleMax-opts.ScaleMin)
	sy := opts.ScaleMin + rng.Float64()*(opts.ScaleMax-opts.ScaleMin)
	p.Scale(sx, sy)
	p.Rotate(rng.Float64() * opts.MaxAngle)

	polys := make([]*shape.Polygon, len(img.polygons), len(img.polygons)+1)
	copy(polys, img.polygons)

	child := *img
	child.id = id
	child.polygons = append(polys, p)
	return &child, nil
}

// Raster draws the image with its rasterizer.
func (img *Image) Raster() (*image.RGBA, error) {
	if img.rasterizer == nil {
		return nil, errors.New(errors.ErrCodeRender, "image %d has no rasterizer", img.id)
	}
	out, err := img.rasterizer.Rasterize(img.polygons, img.background, img.width, img.height)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "rasterize image %d", img.id)
	}
	return out, nil
}

// FitnessMutation scores the image against the target over its mutation
// window.
func (img *Image) FitnessMutation() (float64, error) {
	w, err := img.MutationWindow()
	if err != nil {
		return 0, err
	}
	return img.FitnessIn(w)
}

// FitnessIn scores the image against the target over window.
func (img *Image) FitnessIn(window image.Rectangle) (float64, error) {
	raster, err := img.Raster()
	if err != nil {
		return 0, err
	}
	return fitness.WindowedDiff(img.target, raster, window)
}

// FitnessFull scores the image against the whole target.
func (img *Image) FitnessFull() (float64, error) {
	raster, err := img.Raster()
	if err != nil {
		return 0, err
	}
	return fitness.FullDiff(img.target, raster)
}
