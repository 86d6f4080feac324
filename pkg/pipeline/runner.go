package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/figforge/pkg/cache"
	"github.com/matzehuels/figforge/pkg/errors"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/observability"
	"github.com/matzehuels/figforge/pkg/sink"
)

// cacheKeyType labels cache events for observability hooks.
const cacheKeyType = "figure"

// Runner renders figures with caching.
// Both the render command and the preview server use it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
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

// Run renders the selected figures from reg into opts.OutputDir.
func (r *Runner) Run(ctx context.Context, reg *figure.Registry, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	figs, err := reg.Select(opts.Figures)
	if err != nil {
		return nil, err
	}
	if len(figs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no figures to render")
	}

	start := time.Now()
	hooks := observability.Render()
	hooks.OnRunStart(ctx, len(figs))

	result := &Result{
		OutputDir: opts.OutputDir,
		Entries:   make([]sink.Entry, len(figs)),
	}
	var thumbs []sink.Thumb
	if opts.Sheet {
		thumbs = make([]sink.Thumb, len(figs))
	}

	r.Logger.Debug("rendering figures", "count", len(figs), "jobs", opts.Jobs, "scale", opts.Scale, "dir", opts.OutputDir)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, f := range figs {
		g.Go(func() error {
			entry, data, err := r.writeFigure(gctx, f, opts)
			if err != nil {
				return err
			}
			result.Entries[i] = entry
			if thumbs != nil {
				img, err := imaging.Decode(bytes.NewReader(data))
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "figure %s: decode for contact sheet", f.Name())
				}
				thumbs[i] = sink.Thumb{Name: f.Name(), Image: img}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		hooks.OnRunComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}

	for _, e := range result.Entries {
		result.Stats.Figures++
		result.Stats.Bytes += e.Bytes
		if e.Cached {
			result.Stats.Cached++
		} else {
			result.Stats.Rendered++
		}
	}

	if opts.Sheet {
		path := filepath.Join(opts.OutputDir, sink.SheetFile)
		if err := r.writeSheet(path, thumbs, opts); err != nil {
			hooks.OnRunComplete(ctx, result.Stats.Rendered, result.Stats.Cached, time.Since(start), err)
			return nil, err
		}
		result.SheetPath = path
	}

	if opts.Manifest {
		m := sink.NewManifest(opts.Scale)
		for _, e := range result.Entries {
			m.Add(e)
		}
		m.Sort()
		if result.SheetPath != "" {
			m.Sheet = sink.SheetFile
		}
		path := filepath.Join(opts.OutputDir, sink.ManifestFile)
		if err := m.Save(path); err != nil {
			hooks.OnRunComplete(ctx, result.Stats.Rendered, result.Stats.Cached, time.Since(start), err)
			return nil, err
		}
		result.ManifestPath = path
		result.RunID = m.RunID
	}

	result.Stats.Duration = time.Since(start)
	hooks.OnRunComplete(ctx, result.Stats.Rendered, result.Stats.Cached, result.Stats.Duration, nil)
	r.Logger.Info("rendered figures",
		"figures", result.Stats.Figures,
		"drawn", result.Stats.Rendered,
		"cached", result.Stats.Cached,
		"duration", result.Stats.Duration)
	return result, nil
}

// writeFigure renders (or restores) one figure and writes it to disk.
func (r *Runner) writeFigure(ctx context.Context, f figure.Figure, opts Options) (sink.Entry, []byte, error) {
	name := f.Name()
	hooks := observability.Render()
	hooks.OnFigureStart(ctx, name)
	start := time.Now()

	data, cached, err := r.RenderWithCacheInfo(ctx, f, opts.Scale, opts.Force)
	var entry sink.Entry
	if err == nil {
		path := filepath.Join(opts.OutputDir, name+".png")
		if err = sink.WritePNG(path, data); err == nil {
			entry, err = sink.Describe(name, path, data, cached)
		}
	}
	hooks.OnFigureComplete(ctx, name, cached, time.Since(start), err)
	if err != nil {
		return sink.Entry{}, nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeRenderFailed), err, "figure %s", name)
	}

	r.Logger.Debug("wrote figure", "name", name, "cached", cached, "bytes", len(data), "duration", time.Since(start))
	return entry, data, nil
}

func (r *Runner) writeSheet(path string, thumbs []sink.Thumb, opts Options) error {
	img, err := sink.ContactSheet(thumbs,
		sink.WithColumns(opts.SheetColumns),
		sink.WithTitle("Figures"),
	)
	if err != nil {
		return err
	}
	if err := sink.SaveImage(path, img); err != nil {
		return err
	}
	r.Logger.Debug("wrote contact sheet", "path", path, "figures", len(thumbs))
	return nil
}

// RenderOne renders f at scale and returns the PNG bytes, consulting the
// cache first. The preview server uses it.
func (r *Runner) RenderOne(ctx context.Context, f figure.Figure, scale float64) ([]byte, error) {
	if err := ValidateScale(scale); err != nil {
		return nil, err
	}
	data, _, err := r.RenderWithCacheInfo(ctx, f, scale, false)
	return data, err
}

// RenderWithCacheInfo renders f to PNG bytes and reports whether they came
// from the cache. With force set the cache is not read but is still
// refreshed with the new render.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f figure.Figure, scale float64, force bool) ([]byte, bool, error) {
	key := r.Keyer.FigureKey(figure.Fingerprint(f, scale), cache.FigureKeyOpts{Format: "png"})
	hooks := observability.Cache()

	if !force {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, cacheKeyType)
			return data, true, nil
		} else if err != nil {
			r.Logger.Warn("cache read failed", "figure", f.Name(), "error", err)
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	c, err := figure.Render(ctx, f, scale)
	if err != nil {
		return nil, false, err
	}
	var buf bytes.Buffer
	if err := c.WritePNG(&buf); err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode PNG")
	}
	data := buf.Bytes()

	if err := r.Cache.Set(ctx, key, data, cache.TTLFigure); err != nil {
		r.Logger.Warn("cache write failed", "figure", f.Name(), "error", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
