package search

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geoshaper/pkg/canvas"
	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/render"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

const (
	// DefaultMaxGenerations is the generation budget of a run.
	DefaultMaxGenerations = 200

	// DefaultCandidates is the number of mutations evaluated per generation.
	DefaultCandidates = 100

	// DefaultWorkers is the width of the evaluation pool.
	DefaultWorkers = 4

	// DefaultSeed seeds the random source.
	DefaultSeed = uint64(42)

	// DefaultDebugDir receives debug snapshots.
	DefaultDebugDir = "debug"
)

// Options configures a search run.
type Options struct {
	Kind           shape.Kind
	MaxGenerations int
	Candidates     int
	Workers        int
	Seed           uint64
	Mutation       canvas.MutationOptions

	// RenderDebugRasters writes a PNG of the accepted image to DebugDir
	// after every accepted generation.
	RenderDebugRasters bool
	DebugDir           string

	// PopulationSize is accepted for configuration compatibility and is
	// not used by the search loop.
	PopulationSize int

	// Generator overrides the generator for Kind.
	Generator shape.Generator
	// Rasterizer defaults to render.NewGG().
	Rasterizer render.Rasterizer
	Logger     *log.Logger
	// Progress is called after every generation from the goroutine
	// running the search.
	Progress func(Decision)
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	o := Options{MaxGenerations: DefaultMaxGenerations, Seed: DefaultSeed}
	o.SetDefaults()
	return o
}

// SetDefaults fills zero-valued fields that have no meaningful zero.
// MaxGenerations and Seed are taken as given: zero generations and seed
// zero are both valid.
func (o *Options) SetDefaults() {
	if o.Candidates == 0 {
		o.Candidates = DefaultCandidates
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.DebugDir == "" {
		o.DebugDir = DefaultDebugDir
	}
	o.Mutation.SetDefaults()
	if o.Rasterizer == nil {
		o.Rasterizer = render.NewGG()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option ranges. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := errors.ValidateNonNegative("max generations", o.MaxGenerations); err != nil {
		return err
	}
	if err := errors.ValidatePositive("candidates", o.Candidates); err != nil {
		return err
	}
	if err := errors.ValidatePositive("workers", o.Workers); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("population", o.PopulationSize); err != nil {
		return err
	}
	if o.Generator == nil && o.Kind.NumPoints() == 0 {
		return errors.New(errors.ErrCodeInvalidShape, "unknown shape kind %d", int(o.Kind))
	}
	return o.Mutation.Validate()
}
