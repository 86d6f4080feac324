package dot

import (
	"bytes"
	"context"
	"image"

	"github.com/disintegration/imaging"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/figforge/pkg/errors"
)

// RenderPNG lays out a DOT graph with Graphviz and returns the raster
// image. Malformed DOT is reported as INVALID_INPUT.
func RenderPNG(ctx context.Context, dot string) (image.Image, error) {
	data, err := RenderPNGBytes(ctx, dot)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "decode graphviz output")
	}
	return img, nil
}

// RenderPNGBytes is like RenderPNG but returns the encoded PNG.
func RenderPNGBytes(ctx context.Context, dot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render DOT")
	}
	if buf.Len() == 0 {
		return nil, errors.New(errors.ErrCodeRenderFailed, "graphviz produced no output")
	}
	return buf.Bytes(), nil
}
