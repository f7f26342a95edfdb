// Package render turns an ordered list of polygons into a raster.
//
// The [Rasterizer] interface is the only thing the search engine depends on.
// [GG] implements it in memory on top of github.com/gogpu/gg: the canvas is
// cleared to an opaque background and every polygon is filled in order with
// its own semi-transparent color, so later polygons composite over earlier
// ones.
//
//	r := render.NewGG()
//	img, err := r.Rasterize(polys, background, 320, 240)
//
// Rasterizers must be safe for concurrent use: the search engine calls one
// instance from every worker goroutine.
package render
