// Package figures holds the built-in paper figures.
//
// Every figure is a plain drawing routine with hand-placed coordinates in
// logical pixels. Figures never depend on each other; shared look and feel
// comes from the palette, canvas and chart packages.
package figures

import (
	"github.com/matzehuels/figforge/pkg/canvas"
	"github.com/matzehuels/figforge/pkg/figure"
	"github.com/matzehuels/figforge/pkg/fonts"
	"github.com/matzehuels/figforge/pkg/palette"
)

// Tags used by the built-in figures.
const (
	TagDiagram = "diagram"
	TagChart   = "chart"
)

// Default returns a registry with every built-in figure.
func Default() *figure.Registry {
	return figure.NewRegistry().MustRegister(
		Architecture(),
		AttentionHeatmap(),
		ScalingTrend(),
		GaussianOverlap(),
		AblationBars(),
		TrainingPipeline(),
	)
}

var (
	titleStyle    = canvas.TextStyle{Size: 18, Weight: fonts.Bold}
	subtitleStyle = canvas.TextStyle{Size: 12, Color: palette.Muted}
	captionStyle  = canvas.TextStyle{Size: 11, Color: palette.Muted, Weight: fonts.Italic}
	noteStyle     = canvas.TextStyle{Size: 12, Weight: fonts.Mono}
)

// header draws a centered title and an optional subtitle below it.
func header(c *canvas.Canvas, title, subtitle string) {
	w, _ := c.Size()
	c.Text(title, canvas.P(float64(w)/2, 22), 0.5, 0, titleStyle)
	if subtitle != "" {
		c.Text(subtitle, canvas.P(float64(w)/2, 48), 0.5, 0, subtitleStyle)
	}
}

// footer draws a caption centered along the bottom edge.
func footer(c *canvas.Canvas, caption string) {
	w, h := c.Size()
	c.Text(caption, canvas.P(float64(w)/2, float64(h)-14), 0.5, 1, captionStyle)
}

// callout draws a light note box containing monospaced text.
func callout(c *canvas.Canvas, at canvas.Point, text string) canvas.Rect {
	tw, th := c.MeasureText(text, noteStyle)
	r := canvas.R(at.X, at.Y, tw+20, th+16)
	c.Box(r, text, canvas.BoxStyle{
		Fill:        palette.LightBox,
		Border:      palette.Slate,
		BorderWidth: 1,
		Radius:      4,
		Padding:     4,
		Text:        noteStyle,
	})
	return r
}
