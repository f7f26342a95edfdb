package search

import (
	"context"
	stderrors "errors"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/shape"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// halves is white on the left and black on the right.
func halves(w, h int) *image.RGBA {
	img := solid(w, h, color.RGBA{A: 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w/2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return img
}

// boxRasterizer paints each polygon's window with its fill at full opacity.
type boxRasterizer struct{}

func (boxRasterizer) Rasterize(polys []*shape.Polygon, bg color.Color, w, h int) (*image.RGBA, error) {
	r, g, b, _ := bg.RGBA()
	img := solid(w, h, color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255})
	for _, p := range polys {
		win := p.Window()
		for y := win.Min.Y; y < win.Max.Y; y++ {
			for x := win.Min.X; x < win.Max.X; x++ {
				img.SetRGBA(x, y, color.RGBA{R: p.Fill.R, G: p.Fill.G, B: p.Fill.B, A: 255})
			}
		}
	}
	return img, nil
}

// candidateFailer fails every raster that contains polygons.
type candidateFailer struct{ boxRasterizer }

func (f candidateFailer) Rasterize(polys []*shape.Polygon, bg color.Color, w, h int) (*image.RGBA, error) {
	if len(polys) > 0 {
		return nil, stderrors.New("candidate raster failed")
	}
	return f.boxRasterizer.Rasterize(polys, bg, w, h)
}

// acceptedFailer succeeds for the first accepted-image raster only, then
// fails every raster of the accepted image.
type acceptedFailer struct {
	boxRasterizer
	calls atomic.Int32
}

func (f *acceptedFailer) Rasterize(polys []*shape.Polygon, bg color.Color, w, h int) (*image.RGBA, error) {
	if len(polys) == 0 && f.calls.Add(1) > 1 {
		return nil, stderrors.New("accepted raster failed")
	}
	return f.boxRasterizer.Rasterize(polys, bg, w, h)
}

func TestScenarioSolidRed(t *testing.T) {
	target := solid(2, 2, color.RGBA{R: 255, A: 255})
	e, err := New(target, Options{
		Kind:           shape.KindRectangle,
		MaxGenerations: 1,
		Candidates:     1,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.FinalFitness > res.Stats.InitialFitness {
		t.Errorf("final fitness %v worse than initial %v", res.Stats.FinalFitness, res.Stats.InitialFitness)
	}
	if res.Stats.Generations != 1 {
		t.Errorf("Generations = %d, want 1", res.Stats.Generations)
	}
	if e.State() != StateFinished {
		t.Errorf("State = %v, want finished", e.State())
	}
}

func TestRunImproves(t *testing.T) {
	for _, kind := range shape.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			e, err := New(halves(32, 32), Options{
				Kind:           kind,
				MaxGenerations: 20,
				Candidates:     20,
				Seed:           7,
			})
			if err != nil {
				t.Fatal(err)
			}
			res, err := e.Run(context.Background())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.Stats.Accepted == 0 {
				t.Fatal("no generation was accepted")
			}
			if res.Stats.Accepted+res.Stats.Rejected != 20 {
				t.Errorf("accepted %d + rejected %d != 20", res.Stats.Accepted, res.Stats.Rejected)
			}
			if res.Image.Len() != res.Stats.Accepted {
				t.Errorf("polygons = %d, accepted = %d", res.Image.Len(), res.Stats.Accepted)
			}
			if res.Stats.FinalFitness >= res.Stats.InitialFitness {
				t.Errorf("final fitness %v, initial %v", res.Stats.FinalFitness, res.Stats.InitialFitness)
			}
		})
	}
}

func TestPolygonCountMonotone(t *testing.T) {
	var counts []int
	e, err := New(halves(24, 16), Options{
		Kind:           shape.KindTriangle,
		MaxGenerations: 30,
		Candidates:     10,
		Workers:        3,
		Rasterizer:     boxRasterizer{},
		Progress: func(d Decision) {
			counts = append(counts, d.Polygons)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(counts) != 30 {
		t.Fatalf("progress calls = %d, want 30", len(counts))
	}
	prev := 0
	for g, c := range counts {
		if c < prev || c > prev+1 {
			t.Fatalf("generation %d: polygons %d after %d", g, c, prev)
		}
		prev = c
	}
}

func TestRunDeterministic(t *testing.T) {
	run := func(workers int) *Result {
		e, err := New(halves(20, 20), Options{
			Kind:           shape.KindRectangle,
			MaxGenerations: 10,
			Candidates:     16,
			Workers:        workers,
			Seed:           123,
		})
		if err != nil {
			t.Fatal(err)
		}
		res, err := e.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(1), run(8)
	pa, pb := a.Image.Polygons(), b.Image.Polygons()
	if len(pa) != len(pb) {
		t.Fatalf("polygon counts differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i].Fill != pb[i].Fill {
			t.Errorf("polygon %d fill %v vs %v", i, pa[i].Fill, pb[i].Fill)
		}
		for j, pt := range pa[i].Points() {
			if pb[i].Points()[j] != pt {
				t.Errorf("polygon %d point %d: %v vs %v", i, j, pt, pb[i].Points()[j])
			}
		}
	}
	if a.Stats.FinalFitness != b.Stats.FinalFitness {
		t.Errorf("final fitness %v vs %v", a.Stats.FinalFitness, b.Stats.FinalFitness)
	}
}

func TestCandidateFailuresArePenalized(t *testing.T) {
	var decisions []Decision
	e, err := New(halves(16, 16), Options{
		Kind:           shape.KindRectangle,
		MaxGenerations: 3,
		Candidates:     5,
		Rasterizer:     candidateFailer{},
		Progress:       func(d Decision) { decisions = append(decisions, d) },
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.FailedCandidates != 15 {
		t.Errorf("FailedCandidates = %d, want 15", res.Stats.FailedCandidates)
	}
	if res.Stats.Accepted != 0 || res.Image.Len() != 0 {
		t.Errorf("accepted %d polygons from failed candidates", res.Image.Len())
	}
	for _, d := range decisions {
		if !math.IsInf(d.Winner.Fitness, 1) {
			t.Errorf("generation %d winner fitness = %v, want penalty", d.Generation, d.Winner.Fitness)
		}
		if !errors.Is(d.Winner.Err, errors.ErrCodeRender) {
			t.Errorf("generation %d winner error = %v, want RENDER_ERROR", d.Generation, d.Winner.Err)
		}
	}
}

func TestAcceptedImageFailureIsFatal(t *testing.T) {
	e, err := New(halves(16, 16), Options{
		Kind:           shape.KindRectangle,
		MaxGenerations: 5,
		Candidates:     4,
		Rasterizer:     &acceptedFailer{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Run(context.Background()); !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("Run error = %v, want RENDER_ERROR", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	generations := 0
	e, err := New(halves(16, 16), Options{
		Kind:           shape.KindRectangle,
		MaxGenerations: 100,
		Candidates:     2,
		Rasterizer:     boxRasterizer{},
		Progress: func(Decision) {
			generations++
			if generations == 3 {
				cancel()
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.Run(ctx)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if res == nil || res.Stats.Generations != 3 {
		t.Errorf("partial result = %+v, want 3 generations", res)
	}
}

func TestZeroGenerations(t *testing.T) {
	e, err := New(halves(8, 8), Options{Kind: shape.KindTriangle, Rasterizer: boxRasterizer{}})
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Image.Len() != 0 || res.Stats.FinalFitness != res.Stats.InitialFitness {
		t.Errorf("zero generations changed the image: %+v", res.Stats)
	}
}

func TestDebugSnapshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "debug")
	e, err := New(halves(16, 16), Options{
		Kind:               shape.KindRectangle,
		MaxGenerations:     10,
		Candidates:         10,
		Rasterizer:         boxRasterizer{},
		RenderDebugRasters: true,
		DebugDir:           dir,
	})
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read debug dir: %v", err)
	}
	if len(entries) != res.Stats.Accepted {
		t.Errorf("snapshots = %d, accepted = %d", len(entries), res.Stats.Accepted)
	}
}

func TestDebugSnapshotFailureContinues(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := New(halves(16, 16), Options{
		Kind:               shape.KindRectangle,
		MaxGenerations:     5,
		Candidates:         10,
		Rasterizer:         boxRasterizer{},
		RenderDebugRasters: true,
		DebugDir:           filepath.Join(blocker, "debug"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Run(context.Background()); err != nil {
		t.Errorf("Run error = %v, want snapshot failures ignored", err)
	}
}

func TestNewValidation(t *testing.T) {
	target := solid(4, 4, color.RGBA{A: 255})
	tests := []struct {
		name   string
		target *image.RGBA
		opts   Options
		code   errors.Code
	}{
		{"nil target", nil, Options{}, errors.ErrCodeConfig},
		{"empty target", image.NewRGBA(image.Rect(0, 0, 0, 3)), Options{}, errors.ErrCodeConfig},
		{"negative generations", target, Options{MaxGenerations: -1}, errors.ErrCodeConfig},
		{"negative candidates", target, Options{Candidates: -2}, errors.ErrCodeConfig},
		{"unknown kind", target, Options{Kind: shape.Kind(7)}, errors.ErrCodeInvalidShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.target, tt.opts); !errors.Is(err, tt.code) {
				t.Errorf("New error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.MaxGenerations != DefaultMaxGenerations || o.Candidates != DefaultCandidates ||
		o.Workers != DefaultWorkers || o.Seed != DefaultSeed {
		t.Errorf("DefaultOptions = %+v", o)
	}
	if o.Rasterizer == nil || o.Logger == nil {
		t.Error("DefaultOptions should set rasterizer and logger")
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
