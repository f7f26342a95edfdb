// Package geom provides the planar geometry used by shapes on a canvas.
//
// Coordinates follow image conventions: the origin is the top-left corner,
// X grows to the right and Y grows downwards. A canvas of size W x H accepts
// coordinates in [0, W) x [0, H); [Clamp] enforces that range after every
// transformation.
//
// Functions that transform point sets work in place on the slice they are
// given. Callers that need to keep the original must copy it first.
package geom
