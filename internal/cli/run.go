package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geoshaper/pkg/pipeline"
	"github.com/matzehuels/geoshaper/pkg/search"
)

// runCommand creates the run command that approximates an image.
func (c *CLI) runCommand() *cobra.Command {
	var (
		configPath string
		refresh    bool
		useTUI     bool
	)
	flags := defaultRunConfig()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Approximate an image with rectangles or triangles",
		Long: `Approximate an image with rectangles or triangles.

Each generation proposes a batch of randomly placed, scaled and rotated
shapes filled with the target's average color under them. The best
candidate is kept only if it brings its region closer to the target.

Settings can be read from a TOML file with --config; flags given on the
command line take precedence. Finished runs are cached by image content
and settings, so repeating a run replays the result.`,
		Example: `  geoshaper run -i photo.jpg
  geoshaper run -i photo.jpg -s triangle -m 1000 -o out.png --svg out.svg
  geoshaper run -c geoshaper.toml --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaultRunConfig()
			if configPath != "" {
				if err := loadConfig(configPath, &cfg); err != nil {
					return err
				}
			}
			cfg.override(&flags, cmd.Flags().Changed)

			opts := cfg.options()
			opts.Refresh = refresh
			return c.runApproximation(cmd.Context(), opts, cfg.Cache, useTUI)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "read settings from a TOML file")

	// Input
	f.StringVarP(&flags.Image, "image", "i", "", "target image (png, jpeg, gif, bmp, tiff, webp)")
	f.IntVar(&flags.MaxSize, "max-size", 0, "downscale the target so its longer side is at most this many pixels")

	// Search
	f.StringVarP(&flags.Shape, "shape", "s", flags.Shape, "shape kind: rectangle, triangle")
	f.IntVarP(&flags.MaxGenerations, "max-iter", "m", flags.MaxGenerations, "number of generations")
	f.IntVarP(&flags.Candidates, "candidates", "n", flags.Candidates, "candidates per generation")
	f.IntVarP(&flags.Workers, "workers", "w", flags.Workers, "parallel candidate evaluations")
	f.Uint64Var(&flags.Seed, "seed", flags.Seed, "random seed")
	f.Float64Var(&flags.Mutation.MaxAngle, "max-angle", flags.Mutation.MaxAngle, "rotate candidates by up to this many degrees")
	f.IntVar(&flags.Population, "population", 0, "reserved, has no effect")
	f.BoolVarP(&flags.Debug, "debug", "d", false, "write a snapshot after every accepted generation")
	f.StringVar(&flags.DebugDir, "debug-dir", flags.DebugDir, "parent directory for debug snapshots")

	// Output
	f.StringVarP(&flags.Output, "output", "o", flags.Output, "result image (PNG)")
	f.StringVar(&flags.SVG, "svg", "", "also write the shapes as SVG")

	// Cache
	f.BoolVar(&flags.Cache.Disabled, "no-cache", false, "disable the result cache")
	f.StringVar(&flags.Cache.Redis.Addr, "redis", "", "share results through the Redis server at this address")
	f.BoolVar(&refresh, "refresh", false, "ignore cached results and search again")

	f.BoolVar(&useTUI, "tui", false, "show live progress")

	return cmd
}

// runApproximation executes one run and prints its summary.
func (c *CLI) runApproximation(ctx context.Context, opts pipeline.Options, cacheCfg cacheConfig, useTUI bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cacheCfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	var result *pipeline.Result
	summary := func(r *pipeline.Result) string {
		return fmt.Sprintf("Approximated %s with %d %ss (%s)", opts.Image, r.Image.Len(), opts.Shape,
			r.Stats.SearchTime.Round(time.Millisecond))
	}
	if useTUI {
		// Log lines would tear the live view; hold them until it closes.
		var logs bytes.Buffer
		opts.Logger = newLogger(&logs, c.Logger.GetLevel())
		result, err = runWithTUI(ctx, runner, opts)
		os.Stderr.Write(logs.Bytes())
		if err != nil {
			return err
		}
		printSuccess("%s", summary(result))
	} else {
		opts.Logger = c.Logger
		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Running %d generations with %ss...", opts.MaxGenerations, opts.Shape))
		spinner.Start()
		opts.Progress = func(d search.Decision) {
			spinner.SetMessage(fmt.Sprintf("Generation %d/%d · %d polygons", d.Generation+1, opts.MaxGenerations, d.Polygons))
		}
		result, err = runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Run failed")
			return err
		}
		spinner.StopWithSuccess(summary(result))
	}

	printStats(result.Stats, result.CacheInfo.SearchHit)
	if n := result.Stats.FailedCandidates; n > 0 {
		printWarning("%d candidates failed to render and were skipped", n)
	}
	if c.Logger.GetLevel() <= LogDebug {
		printKeyValue("run", result.RunID)
		printKeyValue("load", result.Stats.LoadTime.String())
		printKeyValue("search", result.Stats.SearchTime.String())
		printKeyValue("export", result.Stats.ExportTime.String())
	}
	for _, f := range result.Files {
		printFile(f)
	}
	if opts.Debug {
		printDetail("Snapshots: %s", pipeline.DebugRunDir(opts.DebugDir, result.RunID))
	}
	if result.CacheInfo.SearchHit {
		printNextStep("Search again", "geoshaper run --refresh -i "+opts.Image)
	}
	return nil
}
