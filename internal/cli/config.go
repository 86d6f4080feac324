package cli

import (
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/pipeline"
)

// defaultConfigFile is read from the working directory when --config is
// not given.
const defaultConfigFile = "figforge.toml"

// Config is the optional figforge.toml file.
//
//	output_dir = "paper/figures"
//	scale = 2
//	jobs = 4
//	figures = ["architecture", "tag:chart"]
//	sheet = true
//	manifest = true
//
//	[serve]
//	addr = "127.0.0.1:8420"
type Config struct {
	OutputDir    string   `toml:"output_dir"`
	Scale        float64  `toml:"scale"`
	Jobs         int      `toml:"jobs"`
	Figures      []string `toml:"figures"`
	Sheet        bool     `toml:"sheet"`
	SheetColumns int      `toml:"sheet_columns"`
	Manifest     bool     `toml:"manifest"`
	NoCache      bool     `toml:"no_cache"`

	Serve ServeConfig `toml:"serve"`
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads the config file. A missing default file yields an empty
// config; a missing explicit file is an error. Unknown keys are rejected so
// typos do not silently fall back to defaults. FIGFORGE_OUTPUT_DIR
// overrides output_dir.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			applyEnv(&cfg)
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if dir := os.Getenv(envOutputDir); dir != "" {
		cfg.OutputDir = dir
	}
}

// pipelineOptions merges config values under explicitly set flags.
func (cfg Config) pipelineOptions(cmd *cobra.Command, flags renderFlags) pipeline.Options {
	opts := pipeline.Options{
		OutputDir:    cfg.OutputDir,
		Scale:        cfg.Scale,
		Jobs:         cfg.Jobs,
		Figures:      cfg.Figures,
		Sheet:        cfg.Sheet,
		SheetColumns: cfg.SheetColumns,
		Manifest:     cfg.Manifest,
		Force:        flags.force,
	}
	changed := cmd.Flags().Changed
	if changed("output") {
		opts.OutputDir = flags.output
	}
	if changed("scale") {
		opts.Scale = flags.scale
	}
	if changed("jobs") {
		opts.Jobs = flags.jobs
	}
	if changed("sheet") {
		opts.Sheet = flags.sheet
	}
	if changed("manifest") {
		opts.Manifest = flags.manifest
	}
	if len(flags.figures) > 0 {
		opts.Figures = flags.figures
	}
	return opts
}
