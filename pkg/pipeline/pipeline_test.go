package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/figforge/pkg/cache"
	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/observability"
	"github.com/matzehuels/figforge/pkg/sink"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// countingFigure records how often it is drawn.
func countingFigure(name string, w, h int, draws *atomic.Int32) *figure.Func {
	return &figure.Func{
		ID:      name,
		Caption: name,
		Width:   w,
		Height:  h,
		Tags:    []string{"test"},
		Body: func(_ context.Context, c *canvas.Canvas) error {
			draws.Add(1)
			c.Box(canvas.R(2, 2, float64(w)-4, float64(h)-4), "", canvas.BoxStyle{Fill: "#3b6fb6"})
			return nil
		},
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.OutputDir != DefaultOutputDir || o.Scale != DefaultScale || o.Jobs != DefaultJobs() || o.SheetColumns != DefaultSheetColumns {
		t.Errorf("defaults not applied: %+v", o)
	}

	tests := []struct {
		name string
		opts Options
	}{
		{"negative scale", Options{Scale: -1}},
		{"huge scale", Options{Scale: MaxScale + 1}},
		{"negative jobs", Options{Jobs: -2}},
		{"negative columns", Options{SheetColumns: -1}},
		{"root output", Options{OutputDir: "/"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRun(t *testing.T) {
	var draws atomic.Int32
	reg := figure.NewRegistry().MustRegister(
		countingFigure("one", 40, 30, &draws),
		countingFigure("two", 50, 20, &draws),
		countingFigure("three", 20, 20, &draws),
	)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	defer r.Close()

	out := t.TempDir()
	opts := Options{OutputDir: out, Scale: 2, Jobs: 2, Sheet: true, Manifest: true}

	res, err := r.Run(context.Background(), reg, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.Figures != 3 || res.Stats.Rendered != 3 || res.Stats.Cached != 0 {
		t.Errorf("first run stats = %+v", res.Stats)
	}
	if draws.Load() != 3 {
		t.Errorf("draws = %d, want 3", draws.Load())
	}

	// Entries follow selection order (sorted names) and are scaled.
	wantNames := []string{"one", "three", "two"}
	for i, e := range res.Entries {
		if e.Name != wantNames[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Name, wantNames[i])
		}
		f, _ := reg.Lookup(e.Name)
		w, h := f.Size()
		if e.Width != 2*w || e.Height != 2*h {
			t.Errorf("%s is %dx%d, want %dx%d", e.Name, e.Width, e.Height, 2*w, 2*h)
		}
		if _, err := os.Stat(filepath.Join(out, e.Name+".png")); err != nil {
			t.Errorf("missing output: %v", err)
		}
	}

	if res.SheetPath == "" || res.ManifestPath == "" {
		t.Fatalf("sheet/manifest not written: %+v", res)
	}
	m, err := sink.ReadManifest(res.ManifestPath)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.RunID != res.RunID || len(m.Figures) != 3 || m.Sheet != sink.SheetFile || m.Scale != 2 {
		t.Errorf("manifest = %+v", m)
	}

	// Second run restores everything from cache.
	res, err = r.Run(context.Background(), reg, Options{OutputDir: out, Scale: 2})
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res.Stats.Cached != 3 || draws.Load() != 3 {
		t.Errorf("second run stats = %+v, draws = %d", res.Stats, draws.Load())
	}

	// Force redraws.
	res, err = r.Run(context.Background(), reg, Options{OutputDir: out, Scale: 2, Figures: []string{"two"}, Force: true})
	if err != nil {
		t.Fatalf("forced Run: %v", err)
	}
	if res.Stats.Rendered != 1 || draws.Load() != 4 {
		t.Errorf("forced run stats = %+v, draws = %d", res.Stats, draws.Load())
	}

	// A different scale is a different cache entry.
	if _, err := r.Run(context.Background(), reg, Options{OutputDir: out, Scale: 1, Figures: []string{"one"}}); err != nil {
		t.Fatalf("scale-1 Run: %v", err)
	}
	if draws.Load() != 5 {
		t.Errorf("draws = %d, want 5", draws.Load())
	}
}

func TestRunRedrawsEditedFigure(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	defer r.Close()
	out := t.TempDir()

	run := func(body figure.DrawFunc) sink.Entry {
		t.Helper()
		reg := figure.NewRegistry().MustRegister(&figure.Func{ID: "swatch", Width: 20, Height: 20, Body: body})
		res, err := r.Run(context.Background(), reg, Options{OutputDir: out})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return res.Entries[0]
	}
	redAt := func(path string) uint32 {
		t.Helper()
		img, err := imaging.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		r, _, _, _ := img.At(10, 10).RGBA()
		return r >> 8
	}

	first := run(func(_ context.Context, c *canvas.Canvas) error {
		c.FillRect(canvas.R(0, 0, 20, 20), "#ff0000", 1)
		return nil
	})
	if first.Cached || redAt(first.Path) != 255 {
		t.Fatalf("first render cached=%v red=%d, want fresh red", first.Cached, redAt(first.Path))
	}

	edited := run(func(_ context.Context, c *canvas.Canvas) error {
		c.FillRect(canvas.R(0, 0, 20, 20), "#0000ff", 1)
		return nil
	})
	if edited.Cached {
		t.Error("edited figure was restored from cache")
	}
	if red := redAt(edited.Path); red != 0 {
		t.Errorf("edited figure red = %d, want 0 (blue body)", red)
	}
}

func TestRunUnknownFigure(t *testing.T) {
	var draws atomic.Int32
	reg := figure.NewRegistry().MustRegister(countingFigure("one", 10, 10, &draws))
	r := NewRunner(nil, nil, quietLogger())

	_, err := r.Run(context.Background(), reg, Options{OutputDir: t.TempDir(), Figures: []string{"nope"}})
	if !errors.Is(err, errors.ErrCodeFigureNotFound) {
		t.Errorf("Run() error = %v, want FIGURE_NOT_FOUND", err)
	}
}

func TestRunFailureNamesFigure(t *testing.T) {
	var draws atomic.Int32
	bad := &figure.Func{
		ID: "broken", Width: 10, Height: 10,
		Body: func(context.Context, *canvas.Canvas) error {
			return errors.New(errors.ErrCodeInvalidInput, "bad data")
		},
	}
	reg := figure.NewRegistry().MustRegister(bad, countingFigure("fine", 10, 10, &draws))
	r := NewRunner(nil, nil, quietLogger())

	out := t.TempDir()
	_, err := r.Run(context.Background(), reg, Options{OutputDir: out, Jobs: 1, Manifest: true})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "figure broken") {
		t.Errorf("error %q does not name the figure", err)
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %s, want INVALID_INPUT", errors.GetCode(err))
	}
	if _, err := os.Stat(filepath.Join(out, sink.ManifestFile)); !os.IsNotExist(err) {
		t.Error("manifest written for failed run")
	}
}

func TestRunCanceled(t *testing.T) {
	var draws atomic.Int32
	reg := figure.NewRegistry().MustRegister(countingFigure("one", 10, 10, &draws))
	r := NewRunner(nil, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Run(ctx, reg, Options{OutputDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if draws.Load() != 0 {
		t.Errorf("draws = %d, want 0", draws.Load())
	}
}

func TestRunEmitsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	counters := &observability.Counters{}
	observability.SetRenderHooks(counters)
	observability.SetCacheHooks(counters)

	var draws atomic.Int32
	reg := figure.NewRegistry().MustRegister(
		countingFigure("a", 10, 10, &draws),
		countingFigure("b", 10, 10, &draws),
	)
	fc, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(fc, nil, quietLogger())
	out := t.TempDir()

	for range 2 {
		if _, err := r.Run(context.Background(), reg, Options{OutputDir: out}); err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	if got := counters.Started.Load(); got != 4 {
		t.Errorf("Started = %d, want 4", got)
	}
	if got := counters.Rendered.Load(); got != 2 {
		t.Errorf("Rendered = %d, want 2", got)
	}
	if got := counters.Restored.Load(); got != 2 {
		t.Errorf("Restored = %d, want 2", got)
	}
	if counters.Misses.Load() != 2 || counters.Hits.Load() != 2 || counters.Sets.Load() != 2 {
		t.Errorf("cache events: misses=%d hits=%d sets=%d", counters.Misses.Load(), counters.Hits.Load(), counters.Sets.Load())
	}
}

func TestRenderOne(t *testing.T) {
	var draws atomic.Int32
	f := countingFigure("solo", 16, 8, &draws)
	fc, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(fc, nil, quietLogger())

	first, err := r.RenderOne(context.Background(), f, 1.5)
	if err != nil {
		t.Fatalf("RenderOne: %v", err)
	}
	second, err := r.RenderOne(context.Background(), f, 1.5)
	if err != nil {
		t.Fatalf("RenderOne: %v", err)
	}
	if string(first) != string(second) || draws.Load() != 1 {
		t.Errorf("second render not served from cache (draws = %d)", draws.Load())
	}
	e, err := sink.Describe("solo", "", first, false)
	if err != nil {
		t.Fatal(err)
	}
	if e.Width != 24 || e.Height != 12 {
		t.Errorf("size = %dx%d, want 24x12", e.Width, e.Height)
	}

	if _, err := r.RenderOne(context.Background(), f, 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderOne(scale 0) error = %v", err)
	}
}
