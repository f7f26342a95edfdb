// Package pipeline provides the complete load → search → export run for
// geoshaper.
//
// The CLI and any other entry point go through [Runner] so that loading,
// caching and output writing behave the same everywhere.
//
// # Architecture
//
// A run consists of three stages:
//
//  1. Load: decode the target image and optionally downscale it
//  2. Search: grow the approximation with [search.Engine], or replay a
//     cached result for the same pixels and options
//  3. Export: write the result raster (PNG) and optionally the SVG
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Image = "photo.png"
//	opts.Shape = "triangle"
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.FinalFitness)
package pipeline

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geoshaper/pkg/cache"
	"github.com/matzehuels/geoshaper/pkg/canvas"
	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/render"
	"github.com/matzehuels/geoshaper/pkg/search"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and library use
// =============================================================================

const (
	// DefaultShape is the default shape kind.
	DefaultShape = shape.NameRectangle

	// DefaultOutput is where the result raster is written.
	DefaultOutput = "result.png"

	// DefaultMaxGenerations is the default generation budget.
	DefaultMaxGenerations = search.DefaultMaxGenerations

	// DefaultCandidates is the default number of candidates per generation.
	DefaultCandidates = search.DefaultCandidates

	// DefaultWorkers is the default evaluation pool width.
	DefaultWorkers = search.DefaultWorkers

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = search.DefaultSeed

	// DefaultDebugDir is the parent directory of per-run debug snapshots.
	DefaultDebugDir = search.DefaultDebugDir
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a run.
type Options struct {
	// Input
	Image   string `json:"image"`
	MaxSize int    `json:"max_size,omitempty"` // Downscale so the longer side is at most MaxSize (0 keeps the size)

	// Search options
	Shape          string                 `json:"shape,omitempty"`
	MaxGenerations int                    `json:"max_generations"`
	Candidates     int                    `json:"candidates,omitempty"`
	Workers        int                    `json:"workers,omitempty"`
	Seed           uint64                 `json:"seed"`
	Mutation       canvas.MutationOptions `json:"mutation"`
	Population     int                    `json:"population,omitempty"` // Reserved, unused by the search
	Debug          bool                   `json:"debug,omitempty"`
	DebugDir       string                 `json:"debug_dir,omitempty"`

	// Output options
	Output string `json:"output,omitempty"`
	SVG    string `json:"svg,omitempty"`

	// Cache control. Refresh and Debug both skip cache reads.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger            `json:"-"`
	Rasterizer render.Rasterizer      `json:"-"`
	Progress   func(search.Decision) `json:"-"`

	kind shape.Kind
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options with every default applied. Image must
// still be set.
func DefaultOptions() Options {
	return Options{
		Shape:          DefaultShape,
		MaxGenerations: DefaultMaxGenerations,
		Candidates:     DefaultCandidates,
		Workers:        DefaultWorkers,
		Seed:           DefaultSeed,
		Mutation:       canvas.DefaultMutationOptions(),
		DebugDir:       DefaultDebugDir,
		Output:         DefaultOutput,
	}
}

// Result contains the outputs of a run.
type Result struct {
	// RunID identifies the run in logs and debug output.
	RunID string

	// Image is the accepted approximation.
	Image *canvas.Image

	// TargetHash is the content hash of the (possibly downscaled) target.
	TargetHash string

	// Stats contains search and timing information.
	Stats Stats

	// CacheInfo reports whether the search was replayed from cache.
	CacheInfo CacheInfo

	// Files lists the written output paths.
	Files []string
}

// Stats contains run statistics.
type Stats struct {
	search.Stats
	Width      int
	Height     int
	LoadTime   time.Duration
	SearchTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	SearchHit bool // Whether the polygons came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// MaxGenerations and Seed are used as given since zero is valid for both.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateImagePath(o.Image); err != nil {
		return err
	}
	if o.Shape == "" {
		o.Shape = DefaultShape
	}
	kind, err := shape.ParseKind(o.Shape)
	if err != nil {
		return err
	}
	o.kind = kind

	if o.Candidates == 0 {
		o.Candidates = DefaultCandidates
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.DebugDir == "" {
		o.DebugDir = DefaultDebugDir
	}
	o.Mutation.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateNonNegative("max generations", o.MaxGenerations); err != nil {
		return err
	}
	if err := errors.ValidatePositive("candidates", o.Candidates); err != nil {
		return err
	}
	if err := errors.ValidatePositive("workers", o.Workers); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("max size", o.MaxSize); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("population", o.Population); err != nil {
		return err
	}
	if err := o.Mutation.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Kind returns the parsed shape kind. Valid after ValidateAndSetDefaults.
func (o *Options) Kind() shape.Kind {
	return o.kind
}

// SearchOptions converts o into options for the search engine.
func (o *Options) SearchOptions(debugDir string) search.Options {
	return search.Options{
		Kind:               o.kind,
		MaxGenerations:     o.MaxGenerations,
		Candidates:         o.Candidates,
		Workers:            o.Workers,
		Seed:               o.Seed,
		Mutation:           o.Mutation,
		RenderDebugRasters: o.Debug,
		DebugDir:           debugDir,
		PopulationSize:     o.Population,
		Rasterizer:         o.Rasterizer,
		Logger:             o.Logger,
		Progress:           o.Progress,
	}
}

// RunKeyOpts returns cache key options for the search result.
func (o *Options) RunKeyOpts() cache.RunKeyOpts {
	return cache.RunKeyOpts{
		Kind:           o.kind.String(),
		MaxGenerations: o.MaxGenerations,
		Candidates:     o.Candidates,
		Seed:           o.Seed,
		ScaleMin:       o.Mutation.ScaleMin,
		ScaleMax:       o.Mutation.ScaleMax,
		MaxAngle:       o.Mutation.MaxAngle,
		MaxSize:        o.MaxSize,
	}
}

// DebugRunDir returns the directory holding the debug snapshots of one run.
func DebugRunDir(parent, runID string) string {
	return filepath.Join(parent, runID)
}
