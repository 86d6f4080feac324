// Package pipeline renders sets of figures to disk.
//
// The pipeline selects figures from a registry, renders up to Jobs of them
// concurrently, writes one PNG per figure into the output directory and
// optionally a contact sheet and a JSON manifest. Rendered PNGs are cached
// by figure fingerprint, so a figure whose name, size, scale and build are
// unchanged is restored from cache instead of drawn.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Run(ctx, figures.Default(), pipeline.Options{
//	    OutputDir: "out",
//	    Scale:     2,
//	    Manifest:  true,
//	})
//
// The first figure that fails cancels the rest of the run; the returned
// error names it.
package pipeline

import (
	"runtime"
	"time"

	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultOutputDir is where figures are written when no directory is given.
	DefaultOutputDir = "figures"

	// DefaultScale renders at the figures' logical size.
	DefaultScale = 1.0

	// MaxScale bounds the rasterization scale.
	MaxScale = 8.0

	// DefaultSheetColumns is the contact sheet's grid width.
	DefaultSheetColumns = 3
)

// DefaultJobs is the default render concurrency.
func DefaultJobs() int { return runtime.NumCPU() }

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	// OutputDir receives <name>.png for each figure.
	OutputDir string `json:"output_dir"`
	// Scale multiplies pixel dimensions (2 for high-DPI output).
	Scale float64 `json:"scale"`
	// Jobs is the number of figures rendered at once.
	Jobs int `json:"jobs"`
	// Figures selects figures by name or "tag:<tag>"; empty renders all.
	Figures []string `json:"figures,omitempty"`
	// Sheet also writes a contact sheet of every rendered figure.
	Sheet bool `json:"sheet,omitempty"`
	// SheetColumns is the contact sheet grid width.
	SheetColumns int `json:"sheet_columns,omitempty"`
	// Manifest also writes manifest.json.
	Manifest bool `json:"manifest,omitempty"`
	// Force ignores cached renders. Fresh renders still refresh the cache.
	Force bool `json:"force,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if err := errors.ValidateOutputDir(o.OutputDir); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "jobs must not be negative, got %d", o.Jobs)
	}
	if o.Jobs == 0 {
		o.Jobs = DefaultJobs()
	}
	if o.SheetColumns < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sheet columns must not be negative, got %d", o.SheetColumns)
	}
	if o.SheetColumns == 0 {
		o.SheetColumns = DefaultSheetColumns
	}
	o.validated = true
	return nil
}

// ValidateScale checks that a render scale is usable.
func ValidateScale(s float64) error {
	if !(s > 0) || s > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %v", MaxScale, s)
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result describes a completed run.
type Result struct {
	// OutputDir is the directory figures were written to.
	OutputDir string

	// Entries has one entry per figure, in selection order.
	Entries []sink.Entry

	// SheetPath and ManifestPath are set when those outputs were written.
	SheetPath    string
	ManifestPath string

	// RunID identifies the run in the manifest.
	RunID string

	// Stats contains counts and timing.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	Figures  int
	Rendered int
	Cached   int
	Bytes    int
	Duration time.Duration
}
