package search

import "math"

// PenaltyFitness is assigned to candidates that could not be scored.
var PenaltyFitness = math.Inf(1)

// Evaluation is one worker's result for one candidate.
type Evaluation struct {
	ID      int
	Fitness float64
	Err     error
}

// Reduce returns the evaluation with the lowest fitness. Among equal
// fitness values the lowest ID wins, so the result does not depend on the
// order evaluations arrive in. NaN counts as PenaltyFitness. ok is false for
// an empty slice.
func Reduce(evals []Evaluation) (best Evaluation, ok bool) {
	for _, e := range evals {
		if math.IsNaN(e.Fitness) {
			e.Fitness = PenaltyFitness
		}
		if !ok || e.Fitness < best.Fitness || (e.Fitness == best.Fitness && e.ID < best.ID) {
			best, ok = e, true
		}
	}
	return best, ok
}
