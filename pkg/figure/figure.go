// Package figure defines what a figure is and keeps a registry of them.
//
// A figure is a named, fixed-size drawing routine. It knows nothing about
// files, caching or concurrency; the pipeline package supplies those.
package figure

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"runtime"

	"github.com/matzehuels/figforge/pkg/buildinfo"
	"github.com/matzehuels/figforge/pkg/cache"
	"github.com/matzehuels/figforge/pkg/canvas"
)

// Figure draws one picture.
type Figure interface {
	// Name is the registry key and the output file's base name.
	Name() string
	// Description is a one-line caption shown by the list command.
	Description() string
	// Size is the logical canvas size in pixels.
	Size() (width, height int)
	// Draw paints the figure. The canvas is sized by Size and already
	// cleared to the background color.
	Draw(ctx context.Context, c *canvas.Canvas) error
}

// DrawFunc is the body of a figure.
type DrawFunc func(ctx context.Context, c *canvas.Canvas) error

// Func adapts a plain function into a Figure.
type Func struct {
	ID      string
	Caption string
	Width   int
	Height  int
	Tags    []string
	Body    DrawFunc

	// Revision distinguishes bodies built by one constructor from
	// different data. It is part of the fingerprint.
	Revision string
}

func (f *Func) Name() string              { return f.ID }
func (f *Func) Description() string       { return f.Caption }
func (f *Func) Size() (width, height int) { return f.Width, f.Height }

// Labels returns the figure's tags.
func (f *Func) Labels() []string { return f.Tags }

// Draw calls the body.
func (f *Func) Draw(ctx context.Context, c *canvas.Canvas) error {
	return f.Body(ctx, c)
}

// Tagged is implemented by figures that carry tags such as "diagram" or
// "chart".
type Tagged interface {
	Labels() []string
}

// TagsOf returns f's tags, or nil when it has none.
func TagsOf(f Figure) []string {
	if t, ok := f.(Tagged); ok {
		return t.Labels()
	}
	return nil
}

// Render creates a canvas at the given scale and draws f onto it.
func Render(ctx context.Context, f Figure, scale float64) (*canvas.Canvas, error) {
	w, h := f.Size()
	c, err := canvas.New(w, h, canvas.WithScale(scale))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.Draw(ctx, c); err != nil {
		return nil, err
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// fingerprint is everything that changes a figure's pixels.
type fingerprint struct {
	Name    string  `json:"name"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Scale   float64 `json:"scale"`
	Code    string  `json:"code"`
	Version string  `json:"version"`
}

// codeIdentity names the code that draws f, so two figures registered
// under one name with different bodies never share a fingerprint.
func codeIdentity(f Figure) string {
	fn, ok := f.(*Func)
	if !ok {
		return fmt.Sprintf("%T", f)
	}
	name := ""
	if fn.Body != nil {
		if rf := runtime.FuncForPC(reflect.ValueOf(fn.Body).Pointer()); rf != nil {
			name = rf.Name()
		}
	}
	if fn.Revision != "" {
		name += "@" + fn.Revision
	}
	return name
}

// Fingerprint returns a content hash identifying a render of f at scale by
// the current build. Figures are code, so the build identity stands in for
// their source.
func Fingerprint(f Figure, scale float64) string {
	w, h := f.Size()
	data, _ := json.Marshal(fingerprint{
		Name:    f.Name(),
		Width:   w,
		Height:  h,
		Scale:   scale,
		Code:    codeIdentity(f),
		Version: buildinfo.Fingerprint(),
	})
	return cache.Hash(data)
}
