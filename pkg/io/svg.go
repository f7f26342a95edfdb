package io

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

// RenderSVG returns an SVG document that draws polys over an opaque
// background on a width x height canvas.
func RenderSVG(polys []*shape.Polygon, background color.Color, width, height int) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)

	bg := color.NRGBAModel.Convert(background).(color.NRGBA)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", width, height, hexRGB(bg))

	for _, p := range polys {
		buf.WriteString(`  <polygon points="`)
		for i, pt := range p.Points() {
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%.2f,%.2f", pt.X, pt.Y)
		}
		fmt.Fprintf(&buf, `" fill="%s" fill-opacity="%.3f"/>`+"\n", hexRGB(p.Fill), float64(p.Fill.A)/255)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteSVG writes the document produced by [RenderSVG] to w.
func WriteSVG(polys []*shape.Polygon, background color.Color, width, height int, w io.Writer) error {
	if _, err := w.Write(RenderSVG(polys, background, width, height)); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write svg")
	}
	return nil
}

// ExportSVG writes an SVG file at path.
func ExportSVG(polys []*shape.Polygon, background color.Color, width, height int, path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteSVG(polys, background, width, height, w)
	})
}

func hexRGB(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
