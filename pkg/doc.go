// Package pkg provides the libraries behind figforge, a renderer for paper
// figures.
//
// # Overview
//
// A figure is a fixed-size drawing routine with hard-coded coordinates and
// a local palette that writes one PNG. The pkg directory is organized into
// four areas:
//
//  1. Drawing - [canvas], [fonts], [palette], [chart], [numeric] and
//     [render/dot] (Graphviz layouts composited onto a canvas)
//  2. Figures - [figure] (interface, registry, fingerprints) and [figures]
//     (the built-in set)
//  3. Output - [sink] (PNG files, manifest, contact sheet) and [pipeline]
//     (concurrent, cached rendering of a selection)
//  4. Infrastructure - [cache], [observability], [errors], [buildinfo] and
//     the [server] preview
//
// # Architecture
//
//	figure.Registry
//	      ↓ Select
//	pipeline.Runner ── cache.Cache (fingerprint → PNG bytes)
//	      ↓ figure.Render
//	canvas.Canvas (gg + freetype)
//	      ↓
//	sink: <name>.png, manifest.json, contact-sheet.png
//
// # Quick Start
//
// Render every built-in figure at twice the logical size:
//
//	import (
//	    "github.com/matzehuels/figforge/pkg/cache"
//	    "github.com/matzehuels/figforge/pkg/figures"
//	    "github.com/matzehuels/figforge/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Run(ctx, figures.Default(), pipeline.Options{
//	    OutputDir: "figures",
//	    Scale:     2,
//	    Manifest:  true,
//	})
//
// Write a new figure:
//
//	fig := &figure.Func{
//	    ID: "hello", Width: 400, Height: 200,
//	    Body: func(ctx context.Context, c *canvas.Canvas) error {
//	        c.Box(canvas.R(40, 60, 140, 60), "Input", canvas.BoxStyle{Border: palette.Blue})
//	        c.Box(canvas.R(220, 60, 140, 60), "Output", canvas.BoxStyle{Border: palette.Orange})
//	        c.Connect(canvas.R(40, 60, 140, 60), canvas.R(220, 60, 140, 60), canvas.ArrowStyle{})
//	        return c.Err()
//	    },
//	}
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/figures/...    # Render every figure once
//	go test -run Example ./...   # Examples only
//
// [canvas]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/canvas
// [fonts]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/fonts
// [palette]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/palette
// [chart]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/chart
// [numeric]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/numeric
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/render/dot
// [figure]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/figure
// [figures]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/figures
// [sink]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/buildinfo
// [server]: https://pkg.go.dev/github.com/matzehuels/figforge/pkg/server
package pkg
