// Package shape defines the shape kinds that can be placed on a canvas and
// the random generators that propose them.
//
// # Kinds
//
// The set of kinds is closed: [KindRectangle] and [KindTriangle]. Each kind
// is a concrete type implementing [Shape]. Capabilities that only some kinds
// support are separate interfaces; only [*Rectangle] implements [Scaler], so
// code that wants to scale a shape must ask for the capability with a type
// assertion instead of calling a method that silently does nothing.
//
// # Polygons
//
// A [Polygon] is a shape placed on a canvas: its points, a fill color and the
// canvas extents used for clamping. Every transformation through Polygon
// clamps the points back into [0, width) x [0, height).
//
// # Generators
//
// [RectangleGenerator] and [TriangleGenerator] implement [Generator]. Both
// draw all randomness from the *rand.Rand they are given, so a seeded source
// reproduces the same shapes.
package shape
