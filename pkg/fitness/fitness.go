// Package fitness measures how close a raster is to a target image.
//
// All metrics compare the R, G and B channels of two *image.RGBA buffers and
// ignore alpha. Differences are root-mean-square color distances: 0 means
// the compared pixels are identical and larger is worse. Windowed variants
// restrict the comparison to a rectangle, which is how candidate shapes are
// scored cheaply: only the area a new shape can have changed is compared.
package fitness

import (
	"image"
	"image/color"
	"math"

	"github.com/matzehuels/geoshaper/pkg/errors"
)

// AverageColor returns the mean R, G and B of every pixel in img as an opaque
// color. Channel means are truncated to integers.
func AverageColor(img *image.RGBA) color.NRGBA {
	c, err := AverageColorIn(img, img.Bounds())
	if err != nil {
		return color.NRGBA{A: 255}
	}
	return c
}

// AverageColorIn returns the mean R, G and B of the pixels of img inside
// window. The window must be non-empty and lie inside img.
func AverageColorIn(img *image.RGBA, window image.Rectangle) (color.NRGBA, error) {
	if err := checkWindow(window, img.Bounds()); err != nil {
		return color.NRGBA{}, err
	}
	var r, g, b uint64
	for y := window.Min.Y; y < window.Max.Y; y++ {
		i := img.PixOffset(window.Min.X, y)
		for x := window.Min.X; x < window.Max.X; x++ {
			r += uint64(img.Pix[i])
			g += uint64(img.Pix[i+1])
			b += uint64(img.Pix[i+2])
			i += 4
		}
	}
	n := uint64(window.Dx() * window.Dy())
	return color.NRGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}, nil
}

// FullDiff returns the RMS color distance between a and b over the whole
// canvas. Both images must have the same bounds.
func FullDiff(a, b *image.RGBA) (float64, error) {
	if !a.Bounds().Eq(b.Bounds()) {
		return 0, errors.New(errors.ErrCodeConfig, "image bounds differ: %v vs %v", a.Bounds(), b.Bounds())
	}
	return WindowedDiff(a, b, a.Bounds())
}

// WindowedDiff returns the RMS color distance between a and b restricted to
// window. A window that is empty or reaches outside either image is a
// CONFIG_ERROR.
func WindowedDiff(a, b *image.RGBA, window image.Rectangle) (float64, error) {
	if err := checkWindow(window, a.Bounds()); err != nil {
		return 0, err
	}
	if err := checkWindow(window, b.Bounds()); err != nil {
		return 0, err
	}

	var total uint64
	for y := window.Min.Y; y < window.Max.Y; y++ {
		ia := a.PixOffset(window.Min.X, y)
		ib := b.PixOffset(window.Min.X, y)
		for x := window.Min.X; x < window.Max.X; x++ {
			dr := int(a.Pix[ia]) - int(b.Pix[ib])
			dg := int(a.Pix[ia+1]) - int(b.Pix[ib+1])
			db := int(a.Pix[ia+2]) - int(b.Pix[ib+2])
			total += uint64(dr*dr + dg*dg + db*db)
			ia += 4
			ib += 4
		}
	}
	n := float64(window.Dx() * window.Dy())
	return math.Sqrt(float64(total) / n), nil
}

func checkWindow(window, bounds image.Rectangle) error {
	if window.Dx() < 1 || window.Dy() < 1 {
		return errors.New(errors.ErrCodeConfig, "window %v must span at least one pixel per axis", window)
	}
	if !window.In(bounds) {
		return errors.New(errors.ErrCodeConfig, "window %v outside image %v", window, bounds)
	}
	return nil
}
