// Package io reads target images and writes approximation results.
//
// # Import
//
// Use [ImportImage] to decode a file path, or [ReadImage] to decode from any
// io.Reader. PNG, JPEG and GIF are supported through the standard library;
// TIFF, BMP and WebP through golang.org/x/image. The result is always an
// *image.RGBA anchored at the origin, which is the layout the fitness
// metrics expect:
//
//	target, err := io.ImportImage("photo.jpg")
//	if err != nil {
//	    return err // DECODE_ERROR
//	}
//
// # Export
//
// [ExportPNG] / [WritePNG] write a raster. [ExportSVG] / [WriteSVG] write
// the accepted polygons as a vector document with the same canvas size and
// background, so the result can be scaled without loss:
//
//	err := io.ExportSVG(polys, background, w, h, "result.svg")
//
// Write failures are IO_ERROR. [ReadPolygons] and [WritePolygons] encode a
// polygon list as JSON; the pipeline uses them to cache finished runs.
package io
