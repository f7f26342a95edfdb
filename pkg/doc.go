// Package pkg provides the libraries behind geoshaper, which approximates a
// raster image with flat-colored rectangles or triangles.
//
// # Overview
//
// A run starts from a blank canvas painted with the target's average color
// and grows it one polygon at a time. Every generation proposes a batch of
// candidate polygons, keeps the best one if it brings its region closer to
// the target, and otherwise discards it.
//
// # Architecture
//
// The data flow of a run:
//
//	target image
//	     ↓
//	[io] (decode, normalize to RGBA)
//	     ↓
//	[search] (generations of [canvas] mutations, scored with [fitness],
//	     ↓     drawn by [render])
//	[io] (PNG raster, SVG, polygon JSON)
//
// # Packages
//
// [geom] - Points, bounding boxes, rotation and clamping.
//
// [shape] - Rectangle and triangle shapes, their generators, and the
// colored [shape.Polygon].
//
// [fitness] - Average colors and RMS color distance between images.
//
// [canvas] - The accepted image and its candidate mutations.
//
// [render] - The [render.Rasterizer] interface and its gogpu/gg
// implementation.
//
// [search] - The hill-climbing engine with its worker pool.
//
// [io] - Image decoding and PNG, SVG and JSON export.
//
// [cache] - Result caching (file, Redis, null) and cache keys.
//
// [pipeline] - Load → search → export orchestration with caching.
//
// [observability] - Hooks for search, pipeline and cache events.
//
// [errors] - Coded errors and input validation.
//
// [buildinfo] - Version information stamped at build time.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Image = "photo.jpg"
//	opts.Shape = "triangle"
//	res, err := runner.Execute(ctx, opts)
package pkg
