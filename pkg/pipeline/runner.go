package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/geoshaper/pkg/cache"
	"github.com/matzehuels/geoshaper/pkg/canvas"
	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/fitness"
	imageio "github.com/matzehuels/geoshaper/pkg/io"
	"github.com/matzehuels/geoshaper/pkg/observability"
	"github.com/matzehuels/geoshaper/pkg/render"
	"github.com/matzehuels/geoshaper/pkg/search"
)

// cacheScope versions the cached result format.
const cacheScope = "v1:"

// Runner encapsulates run execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a versioned DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cacheScope)
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedRun is the cache payload of a finished search.
type cachedRun struct {
	Stats    search.Stats    `json:"stats"`
	Polygons json.RawMessage `json:"polygons"`
}

// Execute runs the complete load → search → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := opts.Logger.With("run", runID[:8])
	opts.Logger = logger

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, runID, opts.Kind().String(), opts.MaxGenerations)
	defer func() {
		polygons := 0
		if res != nil && res.Image != nil {
			polygons = res.Image.Len()
		}
		hooks.OnRunComplete(ctx, runID, polygons, time.Since(start), err)
	}()

	result := &Result{RunID: runID}

	// Stage 1: Load
	loadStart := time.Now()
	target, err := r.Load(opts)
	if err != nil {
		return nil, err
	}
	b := target.Bounds()
	result.Stats.Width, result.Stats.Height = b.Dx(), b.Dy()
	result.Stats.LoadTime = time.Since(loadStart)
	result.TargetHash = cache.HashImage(b.Dx(), b.Dy(), target.Pix)
	logger.Info("loaded target", "width", b.Dx(), "height", b.Dy(), "duration", result.Stats.LoadTime)

	if opts.Rasterizer == nil {
		opts.Rasterizer = render.NewGG()
	}

	// Stage 2: Search
	searchStart := time.Now()
	img, stats, hit, err := r.searchWithCache(ctx, target, result.TargetHash, runID, opts)
	if err != nil {
		return nil, err
	}
	result.Image = img
	result.Stats.Stats = stats
	result.CacheInfo.SearchHit = hit
	result.Stats.SearchTime = time.Since(searchStart)
	logger.Info("search complete",
		"polygons", img.Len(),
		"fitness", stats.FinalFitness,
		"cached", hit,
		"duration", result.Stats.SearchTime)

	// Stage 3: Export
	exportStart := time.Now()
	files, err := r.Export(ctx, img, opts)
	if err != nil {
		return nil, err
	}
	result.Files = files
	result.Stats.ExportTime = time.Since(exportStart)
	logger.Debug("exported", "files", files, "duration", result.Stats.ExportTime)

	return result, nil
}

// Load decodes and optionally downscales the target image.
func (r *Runner) Load(opts Options) (*image.RGBA, error) {
	target, err := imageio.ImportImage(opts.Image)
	if err != nil {
		return nil, err
	}
	if opts.MaxSize > 0 {
		b := target.Bounds()
		target = fitness.Downscale(target, opts.MaxSize)
		if nb := target.Bounds(); nb != b {
			opts.Logger.Debug("downscaled target", "from", b.Size(), "to", nb.Size())
		}
	}
	return target, nil
}

// searchWithCache replays a cached search for the same target and options,
// or runs the search and caches its outcome. Debug runs always search so
// their snapshots get written; their result is still cached.
func (r *Runner) searchWithCache(ctx context.Context, target *image.RGBA, hash, runID string, opts Options) (*canvas.Image, search.Stats, bool, error) {
	key := r.Keyer.RunKey(hash, opts.RunKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh && !opts.Debug {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		if hit {
			img, stats, err := r.replay(data, target, opts)
			if err == nil {
				cacheHooks.OnCacheHit(ctx, "run")
				return img, stats, true, nil
			}
			opts.Logger.Warn("ignoring cached run", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "run")
	}

	engine, err := search.New(target, opts.SearchOptions(DebugRunDir(opts.DebugDir, runID)))
	if err != nil {
		return nil, search.Stats{}, false, err
	}
	res, err := engine.Run(ctx)
	if err != nil {
		return nil, search.Stats{}, false, err
	}

	if data, err := encodeRun(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "run", len(data))
		}
	}
	return res.Image, res.Stats, false, nil
}

// replay rebuilds the accepted image from a cache entry.
func (r *Runner) replay(data []byte, target *image.RGBA, opts Options) (*canvas.Image, search.Stats, error) {
	var entry cachedRun
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, search.Stats{}, errors.Wrap(errors.ErrCodeDecode, err, "decode cached run")
	}
	doc, err := imageio.ReadPolygons(bytes.NewReader(entry.Polygons))
	if err != nil {
		return nil, search.Stats{}, err
	}
	b := target.Bounds()
	if doc.Width != b.Dx() || doc.Height != b.Dy() {
		return nil, search.Stats{}, errors.New(errors.ErrCodeDecode, "cached canvas %dx%d does not match target %dx%d",
			doc.Width, doc.Height, b.Dx(), b.Dy())
	}

	img := canvas.New(0, target, doc.Background, opts.Rasterizer)
	for _, p := range doc.Polygons {
		img.Accept(p)
	}
	return img, entry.Stats, nil
}

func encodeRun(res *search.Result) ([]byte, error) {
	var buf bytes.Buffer
	doc := &imageio.Result{
		Width:      res.Image.Width(),
		Height:     res.Image.Height(),
		Background: res.Image.Background(),
		Polygons:   res.Image.Polygons(),
	}
	if err := imageio.WritePolygons(doc, &buf); err != nil {
		return nil, err
	}
	return json.Marshal(cachedRun{Stats: res.Stats, Polygons: buf.Bytes()})
}

// Export writes the result raster and, if requested, the SVG document.
// Failures are fatal IO_ERROR or RENDER_ERROR errors.
func (r *Runner) Export(ctx context.Context, img *canvas.Image, opts Options) ([]string, error) {
	hooks := observability.Pipeline()

	raster, err := img.Raster()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render result")
	}
	var png bytes.Buffer
	if err := imageio.WritePNG(raster, &png); err != nil {
		return nil, err
	}
	if err := writeOutput(opts.Output, png.Bytes()); err != nil {
		hooks.OnExport(ctx, "png", 0, err)
		return nil, err
	}
	hooks.OnExport(ctx, "png", png.Len(), nil)
	files := []string{opts.Output}

	if opts.SVG != "" {
		svg := imageio.RenderSVG(img.Polygons(), img.Background(), img.Width(), img.Height())
		if err := writeOutput(opts.SVG, svg); err != nil {
			hooks.OnExport(ctx, "svg", 0, err)
			return nil, err
		}
		hooks.OnExport(ctx, "svg", len(svg), nil)
		files = append(files, opts.SVG)
	}
	return files, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
