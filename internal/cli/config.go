package cli

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/geoshaper/pkg/cache"
	"github.com/matzehuels/geoshaper/pkg/canvas"
	"github.com/matzehuels/geoshaper/pkg/errors"
	"github.com/matzehuels/geoshaper/pkg/pipeline"
)

// runConfig is the TOML form of the run command's settings. Every key is
// optional; flags given on the command line win over the file.
//
//	image = "photo.jpg"
//	shape = "triangle"
//	max_generations = 500
//
//	[mutation]
//	max_angle = 90
//
//	[cache.redis]
//	addr = "localhost:6379"
type runConfig struct {
	Image          string                 `toml:"image"`
	MaxSize        int                    `toml:"max_size"`
	Shape          string                 `toml:"shape"`
	MaxGenerations int                    `toml:"max_generations"`
	Candidates     int                    `toml:"candidates"`
	Workers        int                    `toml:"workers"`
	Seed           uint64                 `toml:"seed"`
	Population     int                    `toml:"population"`
	Debug          bool                   `toml:"debug"`
	DebugDir       string                 `toml:"debug_dir"`
	Output         string                 `toml:"output"`
	SVG            string                 `toml:"svg"`
	Mutation       canvas.MutationOptions `toml:"mutation"`
	Cache          cacheConfig            `toml:"cache"`
}

// cacheConfig selects the result cache backend.
type cacheConfig struct {
	Disabled bool              `toml:"disabled"`
	Redis    cache.RedisConfig `toml:"redis"`
}

func defaultRunConfig() runConfig {
	d := pipeline.DefaultOptions()
	return runConfig{
		Shape:          d.Shape,
		MaxGenerations: d.MaxGenerations,
		Candidates:     d.Candidates,
		Workers:        d.Workers,
		Seed:           d.Seed,
		DebugDir:       d.DebugDir,
		Output:         d.Output,
		Mutation:       d.Mutation,
	}
}

// loadConfig decodes the TOML file at path over cfg. Keys missing from the
// file keep their current values; unknown keys are a CONFIG_ERROR.
func loadConfig(path string, cfg *runConfig) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// override copies the values of every flag reported as changed from flags
// onto cfg.
func (cfg *runConfig) override(flags *runConfig, changed func(name string) bool) {
	set := func(name string, apply func()) {
		if changed(name) {
			apply()
		}
	}
	set("image", func() { cfg.Image = flags.Image })
	set("max-size", func() { cfg.MaxSize = flags.MaxSize })
	set("shape", func() { cfg.Shape = flags.Shape })
	set("max-iter", func() { cfg.MaxGenerations = flags.MaxGenerations })
	set("candidates", func() { cfg.Candidates = flags.Candidates })
	set("workers", func() { cfg.Workers = flags.Workers })
	set("seed", func() { cfg.Seed = flags.Seed })
	set("population", func() { cfg.Population = flags.Population })
	set("debug", func() { cfg.Debug = flags.Debug })
	set("debug-dir", func() { cfg.DebugDir = flags.DebugDir })
	set("output", func() { cfg.Output = flags.Output })
	set("svg", func() { cfg.SVG = flags.SVG })
	set("max-angle", func() { cfg.Mutation.MaxAngle = flags.Mutation.MaxAngle })
	set("no-cache", func() { cfg.Cache.Disabled = flags.Cache.Disabled })
	set("redis", func() { cfg.Cache.Redis.Addr = flags.Cache.Redis.Addr })
}

// options converts cfg into pipeline options.
func (cfg *runConfig) options() pipeline.Options {
	return pipeline.Options{
		Image:          cfg.Image,
		MaxSize:        cfg.MaxSize,
		Shape:          cfg.Shape,
		MaxGenerations: cfg.MaxGenerations,
		Candidates:     cfg.Candidates,
		Workers:        cfg.Workers,
		Seed:           cfg.Seed,
		Mutation:       cfg.Mutation,
		Population:     cfg.Population,
		Debug:          cfg.Debug,
		DebugDir:       cfg.DebugDir,
		Output:         cfg.Output,
		SVG:            cfg.SVG,
	}
}
