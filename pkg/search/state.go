package search

// State is a phase of the search loop.
type State int32

const (
	StateInitializing State = iota
	StateGenerating
	StateEvaluating
	StateDeciding
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateGenerating:
		return "generating"
	case StateEvaluating:
		return "evaluating"
	case StateDeciding:
		return "deciding"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}
