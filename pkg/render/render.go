package render

import (
	"image"
	"image/color"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

// Rasterizer draws polygons over a background color.
type Rasterizer interface {
	Rasterize(polys []*shape.Polygon, background color.Color, width, height int) (*image.RGBA, error)
}

// GG rasterizes with the gogpu/gg software renderer. The zero value is ready
// to use.
type GG struct{}

// NewGG returns a rasterizer backed by gogpu/gg.
func NewGG() *GG { return &GG{} }

// SetLogger routes the drawing library's diagnostics to logger. A nil logger
// silences them.
func SetLogger(logger *log.Logger) {
	if logger == nil {
		gg.SetLogger(nil)
		return
	}
	gg.SetLogger(slog.New(logger))
}

// Rasterize implements [Rasterizer]. Polygons are validated before anything
// is drawn; an invalid polygon or a drawing failure is a RENDER_ERROR.
func (GG) Rasterize(polys []*shape.Polygon, background color.Color, width, height int) (*image.RGBA, error) {
	if width < 1 || height < 1 {
		return nil, errors.New(errors.ErrCodeRender, "canvas %dx%d is empty", width, height)
	}
	for i, p := range polys {
		if err := p.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "polygon %d", i)
		}
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	bg := color.NRGBAModel.Convert(background).(color.NRGBA)
	bg.A = 255
	dc.ClearWithColor(gg.RGB(float64(bg.R)/255, float64(bg.G)/255, float64(bg.B)/255))

	for i, p := range polys {
		c := p.Fill
		dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
		pts := p.Points()
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, pt := range pts[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "fill polygon %d", i)
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "flush")
	}

	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		return nil, errors.New(errors.ErrCodeRender, "unexpected raster type %T", dc.Image())
	}
	return img, nil
}
