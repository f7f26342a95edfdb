package search

import (
	"context"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/matzehuels/geoshaper/pkg/canvas"
	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/fitness"
	imageio "github.com/matzehuels/geoshaper/pkg/io"
	"github.com/matzehuels/geoshaper/pkg/observability"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

// Decision reports the outcome of one generation.
type Decision struct {
	Generation int
	Winner     Evaluation
	// Current is the accepted image's fitness over the winner's window
	// before the decision. It is PenaltyFitness when every candidate failed.
	Current  float64
	Accepted bool
	Polygons int
	Failed   int
	Duration time.Duration
}

// Stats summarizes a run.
type Stats struct {
	Generations      int
	Accepted         int
	Rejected         int
	FailedCandidates int
	InitialFitness   float64
	FinalFitness     float64
	Duration         time.Duration
}

// Result is the outcome of a run.
type Result struct {
	Image *canvas.Image
	Stats Stats
}

// Engine runs the search for one target.
type Engine struct {
	target *image.RGBA
	opts   Options
	gen    shape.Generator
	rng    *rand.Rand
	logger *log.Logger
	state  atomic.Int32
}

// New validates opts and prepares an engine for target.
func New(target *image.RGBA, opts Options) (*Engine, error) {
	if target == nil {
		return nil, errors.New(errors.ErrCodeConfig, "target image is nil")
	}
	if b := target.Bounds(); b.Dx() < 1 || b.Dy() < 1 {
		return nil, errors.New(errors.ErrCodeConfig, "target image has no pixels")
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	gen := opts.Generator
	if gen == nil {
		var err error
		if gen, err = shape.NewGenerator(opts.Kind); err != nil {
			return nil, err
		}
	}

	e := &Engine{
		target: fitness.ToRGBA(target),
		opts:   opts,
		gen:    gen,
		rng:    rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef)),
		logger: opts.Logger,
	}
	e.setState(StateInitializing)
	return e, nil
}

// State returns the current phase. It is safe to call from any goroutine.
func (e *Engine) State() State { return State(e.state.Load()) }

func (e *Engine) setState(s State) { e.state.Store(int32(s)) }

// Run executes the configured number of generations and returns the
// accepted image. If ctx is cancelled between generations, Run returns the
// image accepted so far together with the context error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	e.setState(StateInitializing)

	b := e.target.Bounds()
	w, h := b.Dx(), b.Dy()
	current := canvas.New(0, e.target, fitness.AverageColor(e.target), e.opts.Rasterizer)

	initial, err := current.FitnessFull()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "score initial image")
	}
	stats := Stats{InitialFitness: initial}
	e.logger.Debug("search started", "kind", e.gen.Kind(), "width", w, "height", h,
		"generations", e.opts.MaxGenerations, "candidates", e.opts.Candidates, "fitness", initial)

	finish := func(err error) (*Result, error) {
		stats.Duration = time.Since(start)
		e.setState(StateFinished)
		return &Result{Image: current, Stats: stats}, err
	}

	for g := 0; g < e.opts.MaxGenerations; g++ {
		if err := ctx.Err(); err != nil {
			final, _ := current.FitnessFull()
			stats.FinalFitness = final
			return finish(err)
		}

		d, err := e.generation(ctx, g, current, float64(w), float64(h))
		if err != nil {
			e.setState(StateFinished)
			return nil, err
		}

		stats.Generations++
		stats.FailedCandidates += d.Failed
		if d.Accepted {
			stats.Accepted++
		} else {
			stats.Rejected++
		}
		if e.opts.Progress != nil {
			e.opts.Progress(d)
		}
	}

	final, err := current.FitnessFull()
	if err != nil {
		e.setState(StateFinished)
		return nil, errors.Wrap(errors.ErrCodeRender, err, "score final image")
	}
	stats.FinalFitness = final
	e.logger.Debug("search finished", "polygons", current.Len(), "fitness", final, "duration", time.Since(start))
	return finish(nil)
}

func (e *Engine) generation(ctx context.Context, g int, current *canvas.Image, w, h float64) (Decision, error) {
	start := time.Now()
	hooks := observability.Search()
	hooks.OnGenerationStart(ctx, g)

	e.setState(StateGenerating)
	base := e.gen.Generate(e.rng, w, h)
	n := e.opts.Candidates
	candidates := make([]*canvas.Image, n)
	mutateErrs := make([]error, n)
	for i := range candidates {
		candidates[i], mutateErrs[i] = current.Mutate(base, candidateID(g, n, i), e.rng, e.opts.Mutation)
	}

	e.setState(StateEvaluating)
	p := pool.NewWithResults[Evaluation]().WithMaxGoroutines(e.opts.Workers)
	for i, c := range candidates {
		id := candidateID(g, n, i)
		if mutateErrs[i] != nil {
			err := mutateErrs[i]
			p.Go(func() Evaluation { return Evaluation{ID: id, Fitness: PenaltyFitness, Err: err} })
			continue
		}
		p.Go(func() Evaluation {
			f, err := c.FitnessMutation()
			if err != nil {
				return Evaluation{ID: id, Fitness: PenaltyFitness, Err: err}
			}
			return Evaluation{ID: id, Fitness: f}
		})
	}
	evals := p.Wait()

	e.setState(StateDeciding)
	d := Decision{Generation: g, Current: PenaltyFitness}
	for _, ev := range evals {
		if ev.Err != nil {
			d.Failed++
			e.logger.Warn("candidate failed", "generation", g, "candidate", ev.ID, "err", ev.Err)
			hooks.OnCandidateFailed(ctx, g, ev.ID, ev.Err)
		}
	}

	best, ok := Reduce(evals)
	d.Winner = best
	if ok && !math.IsInf(best.Fitness, 1) {
		winner := candidates[best.ID-candidateID(g, n, 0)]
		window, err := winner.MutationWindow()
		if err != nil {
			return d, errors.Wrap(errors.ErrCodeRender, err, "generation %d winner window", g)
		}
		cur, err := current.FitnessIn(window)
		if err != nil {
			return d, errors.Wrap(errors.ErrCodeRender, err, "generation %d: score accepted image", g)
		}
		d.Current = cur
		if cur > best.Fitness {
			current.Accept(winner.LastPolygon())
			d.Accepted = true
			e.snapshot(g, current)
		}
	}

	d.Polygons = current.Len()
	d.Duration = time.Since(start)
	e.logger.Debug("generation", "generation", g, "candidate", best.ID, "fitness", best.Fitness,
		"current", d.Current, "accepted", d.Accepted, "polygons", d.Polygons, "duration", d.Duration)
	hooks.OnGenerationComplete(ctx, g, d.Accepted, best.Fitness, d.Duration)
	return d, nil
}

// candidateID numbers candidates uniquely across a run, starting at 1; id 0
// is the generation-0 image.
func candidateID(generation, perGeneration, index int) int {
	return 1 + generation*perGeneration + index
}

// snapshot writes the accepted image after generation g. Failures are
// logged and otherwise ignored.
func (e *Engine) snapshot(g int, img *canvas.Image) {
	if !e.opts.RenderDebugRasters {
		return
	}
	path := filepath.Join(e.opts.DebugDir, fmt.Sprintf("gen-%05d.png", g))
	if err := os.MkdirAll(e.opts.DebugDir, 0o755); err != nil {
		e.logger.Warn("debug snapshot skipped", "generation", g, "err", err)
		return
	}
	raster, err := img.Raster()
	if err != nil {
		e.logger.Warn("debug snapshot skipped", "generation", g, "err", err)
		return
	}
	if err := imageio.ExportPNG(raster, path); err != nil {
		e.logger.Warn("debug snapshot failed", "generation", g, "path", path, "err", err)
		return
	}
	e.logger.Debug("debug snapshot", "generation", g, "path", path)
}
