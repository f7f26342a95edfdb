// Package canvas models the evolving approximation and its candidates.
//
// An [Image] is the accepted state of a run: a shared read-only target, an
// opaque background equal to the target's average color and the polygons
// accepted so far in drawing order. [Image.Mutate] derives a candidate that
// shares nothing mutable with its parent and carries exactly one extra
// polygon; the search engine scores candidates over that polygon's window
// with [Image.FitnessMutation] and compares the parent over the same window
// with [Image.FitnessIn].
//
// An Image is not safe for concurrent mutation, but distinct candidates
// derived from the same parent may be rasterized and scored concurrently.
package canvas
