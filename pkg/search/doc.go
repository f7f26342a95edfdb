// Package search runs the greedy hill climb that grows an approximation one
// polygon at a time.
//
// # Generations
//
// Every generation follows the same cycle of [State] values:
//
//  1. Generating: one base shape is drawn from the configured generator and
//     Options.Candidates mutations of the accepted image are derived from
//     it. All random draws come from a single PCG source seeded with
//     Options.Seed, in a fixed order, so a run is reproducible.
//  2. Evaluating: a bounded pool of Options.Workers goroutines rasterizes
//     every candidate and scores it over its own mutation window. Each
//     worker returns an [Evaluation]; nothing is shared between workers.
//  3. Deciding: [Reduce] picks the lowest fitness, breaking ties by the
//     lowest candidate id. The accepted image is scored over the winner's
//     window and the winner's polygon is kept only if it is strictly
//     better.
//
// The run ends after Options.MaxGenerations generations or when the context
// is cancelled between generations.
//
// # Failures
//
// A candidate that cannot be mutated, rasterized or scored gets
// [PenaltyFitness] and cannot win. Failing to score the accepted image is a
// RENDER_ERROR that ends the run. Debug snapshot writes are best effort.
package search
